package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/config"
	"github.com/brandon/mail-dialog/pkg/types"
)

// ErrNotFound is returned when a cached row does not exist
var ErrNotFound = errors.New("not found")

// Store provides methods for storing and retrieving data from the cache
type Store struct {
	cache  *Cache
	logger *logrus.Logger
	now    func() time.Time
}

// NewStore creates a new store instance
func NewStore(cache *Cache, logger *logrus.Logger) *Store {
	return &Store{
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// UpsertAccount upserts an account and returns its ID
func (s *Store) UpsertAccount(acc *config.AccountConfig) (int, error) {
	query := `
		INSERT INTO accounts (name, address, smtp_host, smtp_port, imap_host, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			address = excluded.address,
			smtp_host = excluded.smtp_host,
			smtp_port = excluded.smtp_port,
			imap_host = excluded.imap_host,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.cache.DB().Exec(query, acc.Name, acc.Address, acc.SMTPHost, acc.SMTPPort, acc.IMAPHost); err != nil {
		return 0, fmt.Errorf("failed to upsert account: %w", err)
	}

	// LastInsertId is unreliable for the update branch of an upsert
	return s.GetAccountID(acc.Name)
}

// GetAccountID returns the account ID by name
func (s *Store) GetAccountID(name string) (int, error) {
	var id int
	err := s.cache.DB().QueryRow("SELECT id FROM accounts WHERE name = ?", name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("account %s: %w", name, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to get account ID: %w", err)
	}
	return id, nil
}

// UpsertFolder records a synced folder and returns its ID
func (s *Store) UpsertFolder(accountID int, path string, messageCount int) (int, error) {
	query := `
		INSERT INTO folders (account_id, path, message_count, last_synced)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id, path) DO UPDATE SET
			message_count = excluded.message_count,
			last_synced = excluded.last_synced
	`
	if _, err := s.cache.DB().Exec(query, accountID, path, messageCount, formatTime(s.now())); err != nil {
		return 0, fmt.Errorf("failed to upsert folder: %w", err)
	}

	var folderID int
	err := s.cache.DB().QueryRow("SELECT id FROM folders WHERE account_id = ? AND path = ?", accountID, path).Scan(&folderID)
	if err != nil {
		return 0, fmt.Errorf("failed to get folder ID: %w", err)
	}
	return folderID, nil
}

// UpsertEmail upserts a message in the cache
func (s *Store) UpsertEmail(email *types.Email) error {
	recipientsJSON, err := json.Marshal(email.Recipients)
	if err != nil {
		return fmt.Errorf("failed to marshal recipients: %w", err)
	}

	query := `
		INSERT INTO emails (account_id, folder_id, uid, message_id, subject, sender_name, sender_email, recipients, date, body_text, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_id, folder_id, uid) DO UPDATE SET
			message_id = excluded.message_id,
			subject = excluded.subject,
			sender_name = excluded.sender_name,
			sender_email = excluded.sender_email,
			recipients = excluded.recipients,
			date = excluded.date,
			body_text = excluded.body_text,
			cached_at = excluded.cached_at
	`
	_, err = s.cache.DB().Exec(query,
		email.AccountID,
		email.FolderID,
		email.UID,
		email.MessageID,
		email.Subject,
		email.SenderName,
		email.SenderEmail,
		string(recipientsJSON),
		formatTime(email.Date),
		email.BodyText,
		formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert email: %w", err)
	}

	return nil
}

// GetEmail retrieves a cached message by ID
func (s *Store) GetEmail(emailID int64) (*types.Email, error) {
	query := `
		SELECT e.id, e.account_id, a.name, e.folder_id, f.path, e.uid, e.message_id, e.subject, e.sender_name, e.sender_email, e.recipients, e.date, e.body_text, e.cached_at
		FROM emails e
		JOIN accounts a ON e.account_id = a.id
		JOIN folders f ON e.folder_id = f.id
		WHERE e.id = ?
	`
	var email types.Email
	var subject, senderName, senderEmail, recipientsJSON, bodyText sql.NullString
	var dateStr, cachedStr string

	err := s.cache.DB().QueryRow(query, emailID).Scan(
		&email.ID,
		&email.AccountID,
		&email.AccountName,
		&email.FolderID,
		&email.FolderPath,
		&email.UID,
		&email.MessageID,
		&subject,
		&senderName,
		&senderEmail,
		&recipientsJSON,
		&dateStr,
		&bodyText,
		&cachedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("email %d: %w", emailID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get email: %w", err)
	}

	email.Subject = subject.String
	email.SenderName = senderName.String
	email.SenderEmail = senderEmail.String
	email.BodyText = bodyText.String
	email.Date = parseTime(dateStr)
	email.CachedAt = parseTime(cachedStr)

	if recipientsJSON.Valid && recipientsJSON.String != "" {
		if err := json.Unmarshal([]byte(recipientsJSON.String), &email.Recipients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipients: %w", err)
		}
	}

	return &email, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}
