package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/brandon/mail-dialog/internal/suggest"
	"github.com/brandon/mail-dialog/pkg/types"
)

// ContactsEntity is the collection name contacts are exposed under
const ContactsEntity = "contacts"

// contactColumns maps suggestion property names to columns
var contactColumns = map[string]string{
	"email": "email",
	"name":  "name",
}

// HarvestContacts records addresses seen in synced mail and returns how many
// were new. Existing contacts keep their counters; a missing display name is
// filled in.
func (s *Store) HarvestContacts(addrs []types.Address) (int, error) {
	insert := `
		INSERT INTO contacts (email, name, source, use_count, last_used)
		VALUES (?, ?, ?, 0, ?)
		ON CONFLICT(email) DO NOTHING
	`
	fillName := `UPDATE contacts SET name = ? WHERE email = ? AND name = ''`

	now := formatTime(s.now())
	added := 0
	for _, a := range addrs {
		if a.Email == "" {
			continue
		}
		res, err := s.cache.DB().Exec(insert, a.Email, a.Name, string(types.ContactFromMailbox), now)
		if err != nil {
			return added, fmt.Errorf("failed to harvest contact %s: %w", a.Email, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			added++
			continue
		}
		if a.Name == "" {
			continue
		}
		if _, err := s.cache.DB().Exec(fillName, a.Name, a.Email); err != nil {
			return added, fmt.Errorf("failed to update contact %s: %w", a.Email, err)
		}
	}
	return added, nil
}

// RecordSent bumps the use count of every address a dialog delivered to
func (s *Store) RecordSent(emails []string) error {
	query := `
		INSERT INTO contacts (email, name, source, use_count, last_used)
		VALUES (?, '', ?, 1, ?)
		ON CONFLICT(email) DO UPDATE SET
			use_count = contacts.use_count + 1,
			last_used = excluded.last_used
	`
	now := formatTime(s.now())
	for _, e := range emails {
		if _, err := s.cache.DB().Exec(query, e, string(types.ContactFromSent), now); err != nil {
			return fmt.Errorf("failed to record contact %s: %w", e, err)
		}
	}
	return nil
}

// GetContact returns a contact by address
func (s *Store) GetContact(email string) (*types.Contact, error) {
	var c types.Contact
	var source, lastUsed string
	err := s.cache.DB().QueryRow(
		"SELECT email, name, source, use_count, last_used FROM contacts WHERE email = ?", email,
	).Scan(&c.Email, &c.Name, &source, &c.UseCount, &lastUsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	c.Source = types.ContactSource(source)
	c.LastUsed = parseTime(lastUsed)
	return &c, nil
}

// CountContacts returns the number of known contacts
func (s *Store) CountContacts() (int, error) {
	var count int
	if err := s.cache.DB().QueryRow("SELECT COUNT(*) FROM contacts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

// ContactSource serves recipient suggestions from the contacts table
type ContactSource struct {
	store *Store
}

// NewContactSource wraps a store as a suggestion source
func NewContactSource(store *Store) *ContactSource {
	return &ContactSource{store: store}
}

// Filter returns values of property containing the given text, most used first.
// Matching follows SQLite LIKE, so ASCII letters compare case-insensitively.
func (c *ContactSource) Filter(ctx context.Context, entity, property, contains string, limit int) ([]string, error) {
	if entity != ContactsEntity {
		return nil, fmt.Errorf("unknown entity: %s", entity)
	}
	column, ok := contactColumns[property]
	if !ok {
		return nil, fmt.Errorf("unknown property %s for entity %s", property, entity)
	}
	if limit <= 0 {
		limit = suggest.DefaultLimit
	}

	query := fmt.Sprintf(`
		SELECT %[1]s
		FROM contacts
		WHERE %[1]s != '' AND %[1]s LIKE ? ESCAPE '\'
		GROUP BY %[1]s
		ORDER BY MAX(use_count) DESC, MAX(last_used) DESC, %[1]s
		LIMIT ?
	`, column)

	rows, err := c.store.cache.DB().QueryContext(ctx, query, "%"+escapeLike(contains)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to filter contacts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}
	return out, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
