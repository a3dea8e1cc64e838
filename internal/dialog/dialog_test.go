package dialog

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon/mail-dialog/internal/notify"
	"github.com/brandon/mail-dialog/internal/recipient"
	"github.com/brandon/mail-dialog/internal/suggest"
)

func TestOpenSeedsOnce(t *testing.T) {
	sink := notify.NewBuffer()
	d := New(Properties{
		Mode:      Reply,
		DefaultTo: []string{"jack@gmail.com", "not-an-email", "ben@yahoo.com"},
		DefaultCc: []string{"amy@example.org"},
	}, sink)
	assert.False(t, d.IsOpen())

	v := d.Open()
	assert.True(t, d.IsOpen())
	assert.Equal(t, "Reply to Query", v.Title)
	assert.Equal(t, []string{"jack@gmail.com", "ben@yahoo.com"}, d.Tokens(recipient.To))
	assert.Equal(t, []string{"amy@example.org"}, d.Tokens(recipient.Cc))
	assert.Equal(t, []string{"not-an-email is not a valid mail address"}, sink.Drain())

	d.Close()
	d.Open()
	assert.Equal(t, []string{"jack@gmail.com", "ben@yahoo.com"}, d.Tokens(recipient.To))
	assert.Empty(t, sink.Drain())
}

func TestOpenKeepsTokensBetweenOpens(t *testing.T) {
	d := New(Properties{}, nil)
	d.Open()
	d.AddTo([]string{"jack@gmail.com"})
	d.SetMessage("draft")
	d.PressEnd()

	d.Open()
	assert.Equal(t, []string{"jack@gmail.com"}, d.Tokens(recipient.To))
	assert.Equal(t, "draft", d.Message())
}

func TestPressBegin(t *testing.T) {
	t.Run("blocked fires nothing", func(t *testing.T) {
		sink := notify.NewBuffer()
		d := New(Properties{}, sink)
		d.Open()
		fired := false
		d.OnSend = func(recipient.Payload) error {
			fired = true
			return nil
		}

		_, err := d.PressBegin()
		assert.ErrorIs(t, err, recipient.ErrNoRecipients)
		assert.False(t, fired)
		assert.True(t, d.IsOpen())
		assert.Equal(t, []string{recipient.MsgNoRecipients}, sink.Drain())

		d.AddTo([]string{"jack@gmail.com"})
		_, err = d.PressBegin()
		assert.ErrorIs(t, err, recipient.ErrNoMessage)
		assert.False(t, fired)
		assert.Equal(t, []string{recipient.MsgNoMessage}, sink.Drain())
	})

	t.Run("success fires send", func(t *testing.T) {
		d := New(Properties{}, nil)
		d.Open()
		d.AddTo([]string{"jack@gmail.com"})
		d.AddCc([]string{"ben@yahoo.com"})
		d.SetMessage("hello")

		var got recipient.Payload
		d.OnSend = func(p recipient.Payload) error {
			got = p
			return nil
		}

		p, err := d.PressBegin()
		require.NoError(t, err)
		assert.Equal(t, p, got)
		assert.Equal(t, []string{"jack@gmail.com"}, got.To)
		assert.Equal(t, []string{"ben@yahoo.com"}, got.Cc)
		assert.Equal(t, "hello", got.Message)
	})

	t.Run("send handler error", func(t *testing.T) {
		d := New(Properties{}, nil)
		d.AddTo([]string{"jack@gmail.com"})
		d.SetMessage("hello")
		boom := errors.New("smtp down")
		d.OnSend = func(recipient.Payload) error { return boom }

		_, err := d.PressBegin()
		assert.ErrorIs(t, err, boom)
		assert.False(t, errors.Is(err, recipient.ErrCommitBlocked))
	})
}

func TestPressEndFiresCancel(t *testing.T) {
	d := New(Properties{}, nil)
	d.Open()
	cancelled := 0
	d.OnCancel = func() { cancelled++ }

	d.PressEnd()
	assert.Equal(t, 1, cancelled)
	assert.False(t, d.IsOpen())
}

func TestBindSuggestions(t *testing.T) {
	src := suggest.NewStaticSource()
	src.Add("contacts",
		suggest.Record{"email": "jack@gmail.com"},
		suggest.Record{"email": "ben@yahoo.com"},
	)
	reg := suggest.NewRegistry("cache")
	reg.Register("cache", src)
	ctx := context.Background()

	t.Run("unbound returns nothing", func(t *testing.T) {
		d := New(Properties{}, nil)
		got, err := d.Suggest(ctx, recipient.To, "jack", 0)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("missing parts", func(t *testing.T) {
		cases := []Binding{
			{Entity: "contacts"},
			{Property: "email"},
			{},
		}
		for _, b := range cases {
			sink := notify.NewBuffer()
			d := New(Properties{}, sink)
			assert.False(t, d.BindSuggestions(b, reg))
			assert.Equal(t, []string{MsgIncompleteBinding}, sink.Drain())
			_, ok := d.Binding()
			assert.False(t, ok)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		sink := notify.NewBuffer()
		d := New(Properties{}, sink)
		assert.False(t, d.BindSuggestions(Binding{DataSource: "ldap", Entity: "contacts", Property: "email"}, reg))
		assert.Equal(t, []string{"Unknown suggestion source ldap"}, sink.Drain())
	})

	t.Run("bound filters by substring", func(t *testing.T) {
		sink := notify.NewBuffer()
		d := New(Properties{}, sink)
		require.True(t, d.BindSuggestions(Binding{Entity: "contacts", Property: "email"}, reg))
		assert.Empty(t, sink.Drain())

		got, err := d.Suggest(ctx, recipient.Cc, "yahoo", 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"ben@yahoo.com"}, got)
	})

	t.Run("source error is wrapped", func(t *testing.T) {
		d := New(Properties{}, nil)
		require.True(t, d.BindSuggestions(Binding{Entity: "groups", Property: "email"}, reg))

		_, err := d.Suggest(ctx, recipient.To, "x", 0)
		assert.ErrorContains(t, err, "failed to filter To suggestions")
	})
}

func TestManager(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	m := NewManager(logger)

	s1 := m.Create(Properties{Mode: Query})
	s2 := m.Create(Properties{})
	assert.NotEqual(t, s1.ID, s2.ID)
	assert.Equal(t, 2, m.Len())
	assert.Len(t, m.IDs(), 2)

	got, err := m.Get(s1.ID)
	require.NoError(t, err)
	assert.Same(t, s1, got)

	s1.Dialog.AddTo([]string{"bad"})
	assert.Equal(t, []string{"bad is not a valid mail address"}, s1.Notifications.Drain())

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["notification"] == "bad is not a valid mail address" {
			warned = true
		}
	}
	assert.True(t, warned)

	m.Remove(s1.ID)
	_, err = m.Get(s1.ID)
	assert.Error(t, err)
	assert.Equal(t, 1, m.Len())
}
