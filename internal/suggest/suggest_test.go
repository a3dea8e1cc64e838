package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContacts() *StaticSource {
	s := NewStaticSource()
	s.Add("contacts",
		Record{"email": "jack@gmail.com", "name": "Jack Smith"},
		Record{"email": "ben@yahoo.com", "name": "Ben Jones"},
		Record{"email": "JACKIE@corp.io", "name": "Jackie Chan"},
		Record{"name": "No Mail"},
	)
	return s
}

func TestStaticSourceFilter(t *testing.T) {
	ctx := context.Background()
	s := newContacts()

	cases := []struct {
		name     string
		property string
		text     string
		limit    int
		expected []string
	}{
		{"substring any case", "email", "jack", 0, []string{"jack@gmail.com", "JACKIE@corp.io"}},
		{"domain", "email", "yahoo", 0, []string{"ben@yahoo.com"}},
		{"by name", "name", "jones", 0, []string{"Ben Jones"}},
		{"empty text matches all with property", "email", "", 0, []string{"jack@gmail.com", "ben@yahoo.com", "JACKIE@corp.io"}},
		{"limit", "email", "", 1, []string{"jack@gmail.com"}},
		{"no match", "email", "zzz", 0, nil},
		{"unknown property", "phone", "", 0, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Filter(ctx, "contacts", tc.property, tc.text, tc.limit)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestStaticSourceUnknownEntity(t *testing.T) {
	_, err := newContacts().Filter(context.Background(), "users", "email", "", 0)
	assert.Error(t, err)
}

func TestStaticSourceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newContacts().Filter(ctx, "contacts", "email", "", 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry("cache")
	_, ok := r.Lookup("")
	assert.False(t, ok)

	src := NewStaticSource()
	r.Register("cache", src)
	r.Register("directory", NewStaticSource())

	got, ok := r.Lookup("")
	require.True(t, ok)
	assert.Same(t, src, got)

	_, ok = r.Lookup("directory")
	assert.True(t, ok)
	_, ok = r.Lookup("ldap")
	assert.False(t, ok)

	assert.Equal(t, []string{"cache", "directory"}, r.Names())
}
