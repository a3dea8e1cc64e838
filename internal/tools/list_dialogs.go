package tools

import (
	"context"
)

// dialogSummary is one row of the list_dialogs result
type dialogSummary struct {
	DialogID string `json:"dialog_id"`
	Mode     string `json:"mode"`
	Title    string `json:"title"`
	Account  string `json:"account"`
	Subject  string `json:"subject"`
	Open     bool   `json:"open"`
}

// ListDialogsTool reports the dialogs that are still pending
type ListDialogsTool struct {
	deps *Deps
}

// NewListDialogsTool creates a new list dialogs tool
func NewListDialogsTool(deps *Deps) *ListDialogsTool {
	return &ListDialogsTool{deps: deps}
}

// Name returns the tool name
func (t *ListDialogsTool) Name() string {
	return "list_dialogs"
}

// Description returns the tool description
func (t *ListDialogsTool) Description() string {
	return "List dialogs that have been opened but not yet committed or cancelled, oldest first"
}

// InputSchema returns the JSON schema for tool inputs
func (t *ListDialogsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// Execute executes the tool
func (t *ListDialogsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	ids := t.deps.Dialogs.IDs()
	dialogs := make([]dialogSummary, 0, len(ids))
	for _, id := range ids {
		// a dialog may be committed between IDs and Get
		session, err := t.deps.Dialogs.Get(id)
		if err != nil {
			continue
		}
		view := session.Dialog.View()
		dialogs = append(dialogs, dialogSummary{
			DialogID: session.ID,
			Mode:     view.Mode,
			Title:    view.Title,
			Account:  session.AccountName,
			Subject:  session.Subject,
			Open:     session.Dialog.IsOpen(),
		})
	}

	return map[string]interface{}{
		"count":   t.deps.Dialogs.Len(),
		"dialogs": dialogs,
	}, nil
}
