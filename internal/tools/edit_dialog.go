package tools

import (
	"context"

	"github.com/brandon/mail-dialog/internal/recipient"
)

// AddRecipientsTool validates and appends addresses to a recipient field
type AddRecipientsTool struct {
	deps *Deps
}

// NewAddRecipientsTool creates a new add recipients tool
func NewAddRecipientsTool(deps *Deps) *AddRecipientsTool {
	return &AddRecipientsTool{deps: deps}
}

// Name returns the tool name
func (t *AddRecipientsTool) Name() string {
	return "add_recipients"
}

// Description returns the tool description
func (t *AddRecipientsTool) Description() string {
	return "Add To or Cc recipients to an open dialog; invalid addresses are reported and skipped"
}

// InputSchema returns the JSON schema for tool inputs
func (t *AddRecipientsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dialog_id": dialogIDSchema,
			"role":      roleSchema,
			"addresses": stringListSchema("Addresses to add, in order"),
		},
		"required": []string{"dialog_id", "role", "addresses"},
	}
}

// Execute executes the tool
func (t *AddRecipientsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	session, err := sessionParam(t.deps, params)
	if err != nil {
		return nil, err
	}
	role, err := recipient.ParseRole(stringParam(params, "role"))
	if err != nil {
		return nil, err
	}

	session.Dialog.Add(role, stringListParam(params, "addresses"))
	return snapshot(session), nil
}

// SuggestRecipientsTool offers addresses matching typed text
type SuggestRecipientsTool struct {
	deps *Deps
}

// NewSuggestRecipientsTool creates a new suggest recipients tool
func NewSuggestRecipientsTool(deps *Deps) *SuggestRecipientsTool {
	return &SuggestRecipientsTool{deps: deps}
}

// Name returns the tool name
func (t *SuggestRecipientsTool) Name() string {
	return "suggest_recipients"
}

// Description returns the tool description
func (t *SuggestRecipientsTool) Description() string {
	return "Suggest recipients whose bound property contains the typed text"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SuggestRecipientsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dialog_id": dialogIDSchema,
			"role":      roleSchema,
			"text":      stringSchema("Text typed into the field"),
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Optional: Maximum suggestions",
				"minimum":     1,
			},
		},
		"required": []string{"dialog_id", "role"},
	}
}

// Execute executes the tool
func (t *SuggestRecipientsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	session, err := sessionParam(t.deps, params)
	if err != nil {
		return nil, err
	}
	role, err := recipient.ParseRole(stringParam(params, "role"))
	if err != nil {
		return nil, err
	}
	limit, ok := intParam(params, "limit")
	if !ok || limit <= 0 {
		limit = t.deps.Config.SuggestionLimit
	}

	matches, err := session.Dialog.Suggest(ctx, role, stringParam(params, "text"), limit)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []string{}
	}

	return map[string]interface{}{
		"dialog_id":     session.ID,
		"role":          role.String(),
		"suggestions":   matches,
		"notifications": session.Notifications.Drain(),
	}, nil
}

// SetMessageTool replaces the dialog's message text
type SetMessageTool struct {
	deps *Deps
}

// NewSetMessageTool creates a new set message tool
func NewSetMessageTool(deps *Deps) *SetMessageTool {
	return &SetMessageTool{deps: deps}
}

// Name returns the tool name
func (t *SetMessageTool) Name() string {
	return "set_message"
}

// Description returns the tool description
func (t *SetMessageTool) Description() string {
	return "Set the message text of an open dialog"
}

// InputSchema returns the JSON schema for tool inputs
func (t *SetMessageTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dialog_id": dialogIDSchema,
			"message":   stringSchema("Message text"),
		},
		"required": []string{"dialog_id", "message"},
	}
}

// Execute executes the tool
func (t *SetMessageTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	session, err := sessionParam(t.deps, params)
	if err != nil {
		return nil, err
	}
	session.Dialog.SetMessage(stringParam(params, "message"))
	return snapshot(session), nil
}

// ClearDialogTool empties recipients and message
type ClearDialogTool struct {
	deps *Deps
}

// NewClearDialogTool creates a new clear dialog tool
func NewClearDialogTool(deps *Deps) *ClearDialogTool {
	return &ClearDialogTool{deps: deps}
}

// Name returns the tool name
func (t *ClearDialogTool) Name() string {
	return "clear_dialog"
}

// Description returns the tool description
func (t *ClearDialogTool) Description() string {
	return "Remove all To and Cc recipients and the message from a dialog"
}

// InputSchema returns the JSON schema for tool inputs
func (t *ClearDialogTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dialog_id": dialogIDSchema,
		},
		"required": []string{"dialog_id"},
	}
}

// Execute executes the tool
func (t *ClearDialogTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	session, err := sessionParam(t.deps, params)
	if err != nil {
		return nil, err
	}
	session.Dialog.Clear()
	return snapshot(session), nil
}

// GetDialogTool reports a dialog's current state
type GetDialogTool struct {
	deps *Deps
}

// NewGetDialogTool creates a new get dialog tool
func NewGetDialogTool(deps *Deps) *GetDialogTool {
	return &GetDialogTool{deps: deps}
}

// Name returns the tool name
func (t *GetDialogTool) Name() string {
	return "get_dialog"
}

// Description returns the tool description
func (t *GetDialogTool) Description() string {
	return "Get the title, labels, recipients and message of a dialog"
}

// InputSchema returns the JSON schema for tool inputs
func (t *GetDialogTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dialog_id": dialogIDSchema,
		},
		"required": []string{"dialog_id"},
	}
}

// Execute executes the tool
func (t *GetDialogTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	session, err := sessionParam(t.deps, params)
	if err != nil {
		return nil, err
	}
	return snapshot(session), nil
}
