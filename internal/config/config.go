package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	CachePath       string
	LogLevel        string
	SuggestionLimit int

	// PresetsFile optionally points at a YAML file of named dialog presets
	PresetsFile string
	Presets     map[string]Preset

	Accounts []AccountConfig
}

// AccountConfig holds configuration for a single sending account.
// IMAP settings are optional and only used to harvest contacts.
type AccountConfig struct {
	Name    string
	Address string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	IMAPHost     string
	IMAPPort     int
	IMAPUsername string
	IMAPPassword string
}

// HasIMAP reports whether the account can be synced
func (a *AccountConfig) HasIMAP() bool {
	return a.IMAPHost != ""
}

// LoadConfig loads configuration from environment variables and the
// optional presets file
func LoadConfig() (*Config, error) {
	cfg := &Config{
		CachePath:       getEnv("CACHE_PATH", "/data/mail_dialog.db"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SuggestionLimit: getEnvInt("SUGGESTION_LIMIT", 20),
		PresetsFile:     getEnv("DIALOG_PRESETS_FILE", ""),
		Presets:         map[string]Preset{},
	}

	accounts, err := loadAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	cfg.Accounts = accounts

	if cfg.PresetsFile != "" {
		presets, err := LoadPresets(cfg.PresetsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets: %w", err)
		}
		cfg.Presets = presets
	}

	return cfg, nil
}

func loadAccounts() ([]AccountConfig, error) {
	if getEnv("SMTP_HOST", "") != "" {
		account, err := loadAccount("", "account")
		if err != nil {
			return nil, err
		}
		if account.Name == "" {
			account.Name = "default"
		}
		return []AccountConfig{*account}, nil
	}

	var accounts []AccountConfig
	for num := 1; ; num++ {
		prefix := fmt.Sprintf("ACCOUNT_%d_", num)
		if getEnv(prefix+"NAME", "") == "" {
			break
		}
		account, err := loadAccount(prefix, fmt.Sprintf("account %d", num))
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts found in environment variables")
	}
	return accounts, nil
}

// loadAccount reads one account from variables sharing prefix. The single
// account form uses ACCOUNT_NAME for its name.
func loadAccount(prefix, label string) (*AccountConfig, error) {
	nameKey := prefix + "NAME"
	if prefix == "" {
		nameKey = "ACCOUNT_NAME"
	}

	acc := &AccountConfig{
		Name:         getEnv(nameKey, ""),
		SMTPHost:     getEnv(prefix+"SMTP_HOST", ""),
		SMTPPort:     getEnvInt(prefix+"SMTP_PORT", 587),
		SMTPUsername: getEnv(prefix+"SMTP_USERNAME", ""),
		SMTPPassword: getEnv(prefix+"SMTP_PASSWORD", ""),
		IMAPHost:     getEnv(prefix+"IMAP_HOST", ""),
		IMAPPort:     getEnvInt(prefix+"IMAP_PORT", 993),
		IMAPUsername: getEnv(prefix+"IMAP_USERNAME", ""),
		IMAPPassword: getEnv(prefix+"IMAP_PASSWORD", ""),
	}
	acc.Address = getEnv(prefix+"FROM_ADDRESS", acc.SMTPUsername)

	if acc.SMTPHost == "" {
		return nil, fmt.Errorf("%s: SMTP_HOST is required", label)
	}
	if acc.SMTPUsername == "" || acc.SMTPPassword == "" {
		return nil, fmt.Errorf("%s: SMTP_USERNAME and SMTP_PASSWORD are required", label)
	}
	if acc.IMAPHost != "" {
		if acc.IMAPUsername == "" {
			acc.IMAPUsername = acc.SMTPUsername
		}
		if acc.IMAPPassword == "" {
			acc.IMAPPassword = acc.SMTPPassword
		}
	}
	return acc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetAccountByName finds an account by name
func (c *Config) GetAccountByName(name string) (*AccountConfig, error) {
	for i := range c.Accounts {
		if c.Accounts[i].Name == name {
			return &c.Accounts[i], nil
		}
	}
	return nil, fmt.Errorf("account not found: %s", name)
}

// GetDefaultAccount returns the account named "default", or the first one
func (c *Config) GetDefaultAccount() *AccountConfig {
	if len(c.Accounts) == 0 {
		return nil
	}
	for i := range c.Accounts {
		if c.Accounts[i].Name == "default" {
			return &c.Accounts[i]
		}
	}
	return &c.Accounts[0]
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.CachePath == "" {
		return fmt.Errorf("CACHE_PATH is required")
	}

	if c.SuggestionLimit < 1 || c.SuggestionLimit > 500 {
		return fmt.Errorf("SUGGESTION_LIMIT must be between 1 and 500")
	}

	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account must be configured")
	}

	seen := make(map[string]bool)
	for i := range c.Accounts {
		acc := &c.Accounts[i]
		if seen[acc.Name] {
			return fmt.Errorf("account %s: duplicate name", acc.Name)
		}
		seen[acc.Name] = true

		if acc.SMTPHost == "" {
			return fmt.Errorf("account %s: SMTP_HOST is required", acc.Name)
		}
		if acc.SMTPPort < 1 || acc.SMTPPort > 65535 {
			return fmt.Errorf("account %s: invalid SMTP_PORT", acc.Name)
		}
		if acc.Address == "" {
			return fmt.Errorf("account %s: FROM_ADDRESS is required", acc.Name)
		}
		if acc.HasIMAP() && (acc.IMAPPort < 1 || acc.IMAPPort > 65535) {
			return fmt.Errorf("account %s: invalid IMAP_PORT", acc.Name)
		}
	}

	for name, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
	}

	return nil
}

// AccountNames returns a list of all account names
func (c *Config) AccountNames() []string {
	names := make([]string, len(c.Accounts))
	for i := range c.Accounts {
		names[i] = c.Accounts[i].Name
	}
	return names
}
