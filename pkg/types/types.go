package types

import "time"

// Email is a cached message, kept for previous-message lookups
type Email struct {
	ID          int64     `json:"id"`
	AccountID   int       `json:"account_id"`
	AccountName string    `json:"account_name"`
	FolderID    int       `json:"folder_id"`
	FolderPath  string    `json:"folder_path"`
	UID         uint32    `json:"uid"`
	MessageID   string    `json:"message_id"`
	Subject     string    `json:"subject"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Recipients  []string  `json:"recipients"`
	Date        time.Time `json:"date"`
	BodyText    string    `json:"body_text,omitempty"`
	CachedAt    time.Time `json:"cached_at"`
}

// Address is a mailbox seen in an envelope
type Address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// ContactSource records where a contact was learned
type ContactSource string

const (
	ContactFromMailbox ContactSource = "imap"
	ContactFromSent    ContactSource = "sent"
)

// Contact is a known correspondent offered as a recipient suggestion
type Contact struct {
	Email    string        `json:"email"`
	Name     string        `json:"name,omitempty"`
	Source   ContactSource `json:"source"`
	UseCount int           `json:"use_count"`
	LastUsed time.Time     `json:"last_used"`
}
