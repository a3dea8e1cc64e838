package tools

import (
	"context"
	"fmt"
)

// SyncContactsTool harvests correspondents from an IMAP folder
type SyncContactsTool struct {
	deps *Deps
}

// NewSyncContactsTool creates a new sync contacts tool
func NewSyncContactsTool(deps *Deps) *SyncContactsTool {
	return &SyncContactsTool{deps: deps}
}

// Name returns the tool name
func (t *SyncContactsTool) Name() string {
	return "sync_contacts"
}

// Description returns the tool description
func (t *SyncContactsTool) Description() string {
	return "Read recent mail over IMAP and learn its senders and recipients as suggestion contacts"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SyncContactsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"account_name": stringSchema("Optional: Account to sync (default account if omitted)"),
			"folder":       stringSchema("Optional: Folder to read (default: INBOX)"),
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Optional: Number of recent messages to read (default: 100)",
				"minimum":     1,
				"maximum":     1000,
			},
		},
	}
}

// Execute executes the tool
func (t *SyncContactsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	accountName := stringParam(params, "account_name")
	if accountName == "" {
		acc := t.deps.Config.GetDefaultAccount()
		if acc == nil {
			return nil, fmt.Errorf("no account configured")
		}
		accountName = acc.Name
	}

	var limit uint32
	if n, ok := intParam(params, "limit"); ok {
		if n < 1 || n > 1000 {
			return nil, fmt.Errorf("limit must be between 1 and 1000")
		}
		limit = uint32(n)
	}

	result, err := t.deps.Mailer.SyncContacts(accountName, stringParam(params, "folder"), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to sync contacts: %w", err)
	}
	return result, nil
}
