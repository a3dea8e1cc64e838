// Package recipient keeps the validated To and Cc address lists of a mail dialog.
package recipient

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/brandon/mail-dialog/internal/notify"
)

// Role identifies a recipient field
type Role int

const (
	To Role = iota
	Cc
)

func (r Role) String() string {
	switch r {
	case To:
		return "To"
	case Cc:
		return "Cc"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ParseRole parses "to" or "cc" in any case
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "to":
		return To, nil
	case "cc":
		return Cc, nil
	}
	return 0, fmt.Errorf("unknown recipient role: %q", s)
}

// Notification texts shown to the user
const (
	MsgNoRecipients = "Please enter atleast one recipient mail address"
	MsgNoMessage    = "Please enter the message"
)

var (
	// ErrCommitBlocked is wrapped by every reason a commit can be refused.
	ErrCommitBlocked = errors.New("commit blocked")

	// ErrNoRecipients means the To field is empty.
	ErrNoRecipients = fmt.Errorf("%w: no recipients", ErrCommitBlocked)

	// ErrNoMessage means the message text is empty.
	ErrNoMessage = fmt.Errorf("%w: empty message", ErrCommitBlocked)
)

var addressPattern = regexp.MustCompile(`^[A-Za-z0-9]+([._+-][A-Za-z0-9]+)*@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)

// Token is a validated address. Key and Text both hold the literal input.
type Token struct {
	Key  string
	Text string
}

// Payload is what a successful commit hands to the caller
type Payload struct {
	To      []string `json:"to"`
	Cc      []string `json:"cc"`
	Message string   `json:"message"`
}

// Editor holds the recipient tokens and message text of one dialog.
// It is not safe for concurrent use.
type Editor struct {
	sink    notify.Sink
	to      []Token
	cc      []Token
	message string
}

// NewEditor creates an empty editor reporting failures to sink
func NewEditor(sink notify.Sink) *Editor {
	if sink == nil {
		sink = notify.Discard
	}
	return &Editor{sink: sink}
}

// IsValidAddress reports whether s matches the accepted address form
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// Validate returns a token for candidate, or reports it to the sink and
// returns false.
func (e *Editor) Validate(candidate string) (Token, bool) {
	if !IsValidAddress(candidate) {
		e.sink.Show(fmt.Sprintf("%s is not a valid mail address", candidate))
		return Token{}, false
	}
	return Token{Key: candidate, Text: candidate}, true
}

// AddMany appends a token for every valid candidate in input order.
// Invalid candidates are reported and skipped; duplicates are kept.
func (e *Editor) AddMany(role Role, candidates []string) {
	for _, c := range candidates {
		tok, ok := e.Validate(c)
		if !ok {
			continue
		}
		switch role {
		case To:
			e.to = append(e.to, tok)
		case Cc:
			e.cc = append(e.cc, tok)
		}
	}
}

// TokensOf returns the keys of the role's tokens in insertion order
func (e *Editor) TokensOf(role Role) []string {
	var toks []Token
	switch role {
	case To:
		toks = e.to
	case Cc:
		toks = e.cc
	}
	keys := make([]string, len(toks))
	for i, t := range toks {
		keys[i] = t.Key
	}
	return keys
}

// SetMessage replaces the message text
func (e *Editor) SetMessage(text string) {
	e.message = text
}

// Message returns the current message text
func (e *Editor) Message() string {
	return e.message
}

// Clear empties both recipient fields and the message
func (e *Editor) Clear() {
	e.to = nil
	e.cc = nil
	e.message = ""
}

// Commit returns the current recipients and message. It never mutates the
// editor; when a required value is missing it notifies the sink and returns
// an error wrapping ErrCommitBlocked.
func (e *Editor) Commit() (Payload, error) {
	to := e.TokensOf(To)
	if len(to) == 0 {
		e.sink.Show(MsgNoRecipients)
		return Payload{}, ErrNoRecipients
	}
	if e.message == "" {
		e.sink.Show(MsgNoMessage)
		return Payload{}, ErrNoMessage
	}
	return Payload{
		To:      to,
		Cc:      e.TokensOf(Cc),
		Message: e.message,
	}, nil
}
