package email

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/cache"
	"github.com/brandon/mail-dialog/internal/config"
	"github.com/brandon/mail-dialog/internal/recipient"
	"github.com/brandon/mail-dialog/pkg/types"
)

// SyncResult summarizes a contact sync
type SyncResult struct {
	Account  string `json:"account"`
	Folder   string `json:"folder"`
	Messages int    `json:"messages"`
	Contacts int    `json:"contacts"`
}

// Manager delivers committed dialogs and harvests contacts into the cache
type Manager struct {
	accountManager *AccountManager
	store          *cache.Store
	config         *config.Config
	logger         *logrus.Logger
}

// NewManager creates a new email manager
func NewManager(cfg *config.Config, cacheStore *cache.Store, logger *logrus.Logger) *Manager {
	accountManager := NewAccountManager(cfg)

	for _, account := range accountManager.accounts {
		account.SMTP.SetLogger(logger)
		if account.IMAP != nil {
			account.IMAP.SetLogger(logger)
		}
	}

	return &Manager{
		accountManager: accountManager,
		store:          cacheStore,
		config:         cfg,
		logger:         logger,
	}
}

// SyncContacts reads recent mail from folder and records every valid
// address it names as a contact. Messages are cached for previous-message
// lookups.
func (m *Manager) SyncContacts(accountName, folder string, limit uint32) (*SyncResult, error) {
	account := m.accountManager.GetAccount(accountName)
	if account == nil {
		return nil, fmt.Errorf("account not found: %s", accountName)
	}
	if account.IMAP == nil {
		return nil, fmt.Errorf("account %s has no IMAP settings", accountName)
	}
	if folder == "" {
		folder = "INBOX"
	}

	accountID, err := m.store.UpsertAccount(account.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to cache account: %w", err)
	}

	emails, total, err := account.IMAP.FetchRecent(folder, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", folder, err)
	}

	folderID, err := m.store.UpsertFolder(accountID, folder, int(total))
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Account: accountName, Folder: folder, Messages: len(emails)}
	for _, e := range emails {
		e.AccountID = accountID
		e.FolderID = folderID
		if err := m.store.UpsertEmail(e); err != nil {
			m.logger.WithError(err).WithField("uid", e.UID).Warn("Failed to cache email")
		}

		var valid []types.Address
		for _, a := range envelopeAddresses(e) {
			if recipient.IsValidAddress(a.Email) {
				valid = append(valid, a)
			}
		}
		n, err := m.store.HarvestContacts(valid)
		if err != nil {
			m.logger.WithError(err).WithField("uid", e.UID).Warn("Failed to harvest contacts")
		}
		result.Contacts += n
	}

	m.logger.WithFields(logrus.Fields{
		"account":  accountName,
		"folder":   folder,
		"messages": result.Messages,
		"contacts": result.Contacts,
	}).Info("Synced contacts")

	return result, nil
}

// SendEmail delivers msg from the named account and counts its recipients
// as used contacts
func (m *Manager) SendEmail(accountName string, msg *EmailMessage) error {
	account := m.accountManager.GetAccount(accountName)
	if account == nil {
		return fmt.Errorf("account not found: %s", accountName)
	}

	if err := account.SMTP.Send(msg); err != nil {
		return err
	}

	recipients := append(append([]string{}, msg.To...), msg.Cc...)
	if err := m.store.RecordSent(recipients); err != nil {
		m.logger.WithError(err).Warn("Failed to record sent contacts")
	}
	return nil
}

// Close closes all connections
func (m *Manager) Close() error {
	return m.accountManager.Close()
}

// GetAccount returns an account by name, or nil
func (m *Manager) GetAccount(name string) *Account {
	return m.accountManager.GetAccount(name)
}
