package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandon/mail-dialog/internal/dialog"
)

var accountVars = []string{
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "ACCOUNT_NAME", "FROM_ADDRESS",
	"IMAP_HOST", "IMAP_PORT", "IMAP_USERNAME", "IMAP_PASSWORD",
	"ACCOUNT_1_NAME", "ACCOUNT_1_SMTP_HOST", "ACCOUNT_1_SMTP_USERNAME", "ACCOUNT_1_SMTP_PASSWORD",
	"ACCOUNT_2_NAME", "ACCOUNT_2_SMTP_HOST", "ACCOUNT_2_SMTP_USERNAME", "ACCOUNT_2_SMTP_PASSWORD",
	"ACCOUNT_2_IMAP_HOST", "ACCOUNT_2_FROM_ADDRESS",
	"CACHE_PATH", "LOG_LEVEL", "SUGGESTION_LIMIT", "DIALOG_PRESETS_FILE",
}

// clearEnv blanks every variable the loader reads; t.Setenv restores them afterwards
func clearEnv(t *testing.T) {
	for _, k := range accountVars {
		t.Setenv(k, "")
	}
}

func TestLoadConfigSingleAccount(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "me@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Len(t, cfg.Accounts, 1)
	acc := cfg.Accounts[0]
	assert.Equal(t, "default", acc.Name)
	assert.Equal(t, "me@example.com", acc.Address)
	assert.Equal(t, 587, acc.SMTPPort)
	assert.False(t, acc.HasIMAP())
	assert.Equal(t, 20, cfg.SuggestionLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Same(t, &cfg.Accounts[0], cfg.GetDefaultAccount())
}

func TestLoadConfigIMAPFallsBackToSMTPCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "me@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("IMAP_HOST", "imap.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	acc := cfg.Accounts[0]
	assert.True(t, acc.HasIMAP())
	assert.Equal(t, 993, acc.IMAPPort)
	assert.Equal(t, "me@example.com", acc.IMAPUsername)
	assert.Equal(t, "secret", acc.IMAPPassword)
}

func TestLoadConfigNumberedAccounts(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCOUNT_1_NAME", "work")
	t.Setenv("ACCOUNT_1_SMTP_HOST", "smtp.work.com")
	t.Setenv("ACCOUNT_1_SMTP_USERNAME", "me@work.com")
	t.Setenv("ACCOUNT_1_SMTP_PASSWORD", "pw1")
	t.Setenv("ACCOUNT_2_NAME", "home")
	t.Setenv("ACCOUNT_2_SMTP_HOST", "smtp.home.com")
	t.Setenv("ACCOUNT_2_SMTP_USERNAME", "login")
	t.Setenv("ACCOUNT_2_SMTP_PASSWORD", "pw2")
	t.Setenv("ACCOUNT_2_FROM_ADDRESS", "me@home.com")
	t.Setenv("ACCOUNT_2_IMAP_HOST", "imap.home.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"work", "home"}, cfg.AccountNames())
	home, err := cfg.GetAccountByName("home")
	require.NoError(t, err)
	assert.Equal(t, "me@home.com", home.Address)
	assert.True(t, home.HasIMAP())

	_, err = cfg.GetAccountByName("missing")
	assert.Error(t, err)
	assert.Equal(t, "work", cfg.GetDefaultAccount().Name)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("no accounts", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "no accounts")
	})

	t.Run("missing password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SMTP_HOST", "smtp.example.com")
		t.Setenv("SMTP_USERNAME", "me@example.com")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "SMTP_PASSWORD")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			CachePath:       "/tmp/x.db",
			SuggestionLimit: 20,
			Accounts: []AccountConfig{{
				Name: "default", Address: "me@example.com", SMTPHost: "smtp.example.com", SMTPPort: 587,
			}},
		}
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"no cache path", func(c *Config) { c.CachePath = "" }, "CACHE_PATH"},
		{"limit too low", func(c *Config) { c.SuggestionLimit = 0 }, "SUGGESTION_LIMIT"},
		{"no accounts", func(c *Config) { c.Accounts = nil }, "at least one account"},
		{"bad smtp port", func(c *Config) { c.Accounts[0].SMTPPort = 70000 }, "SMTP_PORT"},
		{"bad imap port", func(c *Config) {
			c.Accounts[0].IMAPHost = "imap.example.com"
			c.Accounts[0].IMAPPort = 0
		}, "IMAP_PORT"},
		{"duplicate account", func(c *Config) { c.Accounts = append(c.Accounts, c.Accounts[0]) }, "duplicate"},
		{"bad preset", func(c *Config) { c.Presets = map[string]Preset{"x": {Mode: "Forward"}} }, "preset x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			if tc.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.errMsg)
			}
		})
	}
}

func TestLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
presets:
  approval:
    mode: Approve
    show_previous_message: false
    begin_button_text: Sign off
    to: [manager@example.com]
    cc: [audit@example.com, nope]
  query:
    mode: Query
    subject: Question about invoice
`), 0644))

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	require.Len(t, presets, 2)

	props, err := presets["approval"].Properties()
	require.NoError(t, err)
	assert.Equal(t, dialog.Approve, props.Mode)
	require.NotNil(t, props.ShowPreviousMessage)
	assert.False(t, *props.ShowPreviousMessage)
	assert.Equal(t, "Sign off", props.BeginButtonText)
	assert.Equal(t, []string{"manager@example.com"}, props.DefaultTo)
	assert.Equal(t, []string{"audit@example.com", "nope"}, props.DefaultCc)

	assert.Equal(t, "Question about invoice", presets["query"].Subject)
}

func TestLoadPresetsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadPresets(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("presets:\n  x:\n    mode: Forward\n"), 0644))
	_, err = LoadPresets(bad)
	assert.ErrorContains(t, err, "unknown dialog mode")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("presets: [\n"), 0644))
	_, err = LoadPresets(broken)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestPresetEmptyModeIsCompose(t *testing.T) {
	props, err := Preset{}.Properties()
	require.NoError(t, err)
	assert.Equal(t, dialog.Compose, props.Mode)
}
