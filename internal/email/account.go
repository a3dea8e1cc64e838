package email

import (
	"github.com/brandon/mail-dialog/internal/config"
)

// AccountManager manages multiple email accounts
type AccountManager struct {
	accounts map[string]*Account
}

// Account bundles an account's configuration with its clients. IMAP is nil
// when the account has no IMAP settings.
type Account struct {
	Config *config.AccountConfig
	IMAP   *IMAPClient
	SMTP   *SMTPClient
}

// NewAccountManager creates clients for every configured account
func NewAccountManager(cfg *config.Config) *AccountManager {
	manager := &AccountManager{
		accounts: make(map[string]*Account),
	}

	for i := range cfg.Accounts {
		accCfg := &cfg.Accounts[i]
		account := &Account{
			Config: accCfg,
			SMTP:   NewSMTPClient(accCfg),
		}
		if accCfg.HasIMAP() {
			account.IMAP = NewIMAPClient(accCfg)
		}
		manager.accounts[accCfg.Name] = account
	}

	return manager
}

// GetAccount returns an account by name, or nil
func (m *AccountManager) GetAccount(name string) *Account {
	return m.accounts[name]
}

// Close closes all account connections
func (m *AccountManager) Close() error {
	for _, account := range m.accounts {
		if account.IMAP != nil {
			account.IMAP.Close() //nolint:errcheck
		}
	}
	return nil
}
