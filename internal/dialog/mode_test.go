package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestDerivationTable(t *testing.T) {
	cases := []struct {
		mode  Mode
		title string
		label string
		show  bool
	}{
		{Compose, "Send Mail", "Send", false},
		{Query, "Raise Query", "Raise", false},
		{Reply, "Reply to Query", "Reply", true},
		{Approve, "Approve Request", "Approve", true},
		{Reject, "Reject Request", "Reject", false},
	}

	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			assert.Equal(t, tc.title, DeriveTitle("", tc.mode))
			assert.Equal(t, tc.label, DeriveBeginButtonText("", tc.mode))
			assert.Equal(t, tc.show, DeriveShowPreviousMessage(nil, tc.mode))

			assert.Equal(t, "Custom", DeriveTitle("Custom", tc.mode))
			assert.Equal(t, "Go", DeriveBeginButtonText("Go", tc.mode))
			assert.True(t, DeriveShowPreviousMessage(boolPtr(true), tc.mode))
			assert.False(t, DeriveShowPreviousMessage(boolPtr(false), tc.mode))
		})
	}
}

func TestDerivationOverrides(t *testing.T) {
	assert.Equal(t, "Reply to Query", DeriveTitle("", Reply))
	assert.Equal(t, "Custom", DeriveTitle("Custom", Reply))
	assert.True(t, DeriveShowPreviousMessage(nil, Approve))
	assert.False(t, DeriveShowPreviousMessage(boolPtr(false), Approve))
}

func TestDerivationUnknownMode(t *testing.T) {
	m := Mode(42)
	assert.Equal(t, "", DeriveTitle("", m))
	assert.Equal(t, "Send", DeriveBeginButtonText("", m))
	assert.False(t, DeriveShowPreviousMessage(nil, m))
	assert.Equal(t, "Mode(42)", m.String())
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"Compose", "Query", "Reply", "Approve", "Reject"} {
		m, err := ParseMode(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	_, err := ParseMode("reply")
	assert.Error(t, err)
	_, err = ParseMode("")
	assert.Error(t, err)
}

func TestPropertiesResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		v := Properties{Mode: Compose, PreviousMessage: "hidden"}.Resolve()
		assert.Equal(t, View{
			Mode:            "Compose",
			Title:           "Send Mail",
			ToLabel:         "To",
			CcLabel:         "Cc",
			MessageLabel:    "Comments",
			BeginButtonText: "Send",
			EndButtonText:   "Close",
		}, v)
	})

	t.Run("reply shows previous message", func(t *testing.T) {
		v := Properties{Mode: Reply, PreviousMessage: "Can you check?"}.Resolve()
		assert.True(t, v.ShowPreviousMessage)
		assert.Equal(t, "Message", v.PreviousMessageLabel)
		assert.Equal(t, "Can you check?", v.PreviousMessage)
		assert.Equal(t, "Reply", v.BeginButtonText)
	})

	t.Run("explicit values win", func(t *testing.T) {
		v := Properties{
			Mode:                 Approve,
			Title:                "Sign off",
			ShowPreviousMessage:  boolPtr(false),
			PreviousMessageLabel: "Original",
			MessageLabel:         "Notes",
			BeginButtonText:      "OK",
			EndButtonText:        "Dismiss",
		}.Resolve()
		assert.Equal(t, "Sign off", v.Title)
		assert.False(t, v.ShowPreviousMessage)
		assert.Empty(t, v.PreviousMessageLabel)
		assert.Equal(t, "Notes", v.MessageLabel)
		assert.Equal(t, "OK", v.BeginButtonText)
		assert.Equal(t, "Dismiss", v.EndButtonText)
	})
}
