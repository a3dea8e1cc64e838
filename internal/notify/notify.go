package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Sink receives short user-facing messages. Delivery is fire-and-forget.
type Sink interface {
	Show(msg string)
}

// LogSink writes notifications to the application log
type LogSink struct {
	logger *logrus.Logger
}

// NewLogSink creates a sink that logs every notification at warn level
func NewLogSink(logger *logrus.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Show logs the notification
func (s *LogSink) Show(msg string) {
	s.logger.WithField("notification", msg).Warn("User notification")
}

// Buffer collects notifications until they are drained
type Buffer struct {
	mu       sync.Mutex
	messages []string
}

// NewBuffer creates an empty notification buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Show appends the notification
func (b *Buffer) Show(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, msg)
}

// Drain returns the collected notifications in arrival order and empties the buffer
func (b *Buffer) Drain() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.messages
	b.messages = nil
	if out == nil {
		return []string{}
	}
	return out
}

// Len returns the number of pending notifications
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages)
}

// Multi fans a notification out to several sinks
type Multi []Sink

// Show forwards msg to every non-nil sink
func (m Multi) Show(msg string) {
	for _, s := range m {
		if s != nil {
			s.Show(msg)
		}
	}
}

// Discard drops every notification
var Discard Sink = discard{}

type discard struct{}

func (discard) Show(string) {}
