package dialog

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/notify"
)

// Session is an open dialog plus the delivery context around it
type Session struct {
	ID          string
	AccountName string
	Subject     string
	InReplyTo   string
	CreatedAt   time.Time

	Dialog        *Dialog
	Notifications *notify.Buffer
}

// Manager tracks dialog sessions by ID
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *logrus.Logger
}

// NewManager creates an empty session manager
func NewManager(logger *logrus.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create builds a dialog whose notifications are both logged and buffered
// for the caller.
func (m *Manager) Create(props Properties) *Session {
	buf := notify.NewBuffer()
	s := &Session{
		ID:            uuid.NewString(),
		CreatedAt:     time.Now(),
		Notifications: buf,
		Dialog:        New(props, notify.Multi{buf, notify.NewLogSink(m.logger)}),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"dialog_id": s.ID,
		"mode":      props.Mode.String(),
	}).Debug("Created dialog")
	return s
}

// Get returns a session by ID
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("dialog not found: %s", id)
	}
	return s, nil
}

// Remove forgets a session
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// IDs returns the open session IDs, oldest first
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of tracked sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
