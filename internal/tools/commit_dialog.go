package tools

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/recipient"
)

// CommitDialogTool presses the dialog's primary button
type CommitDialogTool struct {
	deps *Deps
}

// NewCommitDialogTool creates a new commit dialog tool
func NewCommitDialogTool(deps *Deps) *CommitDialogTool {
	return &CommitDialogTool{deps: deps}
}

// Name returns the tool name
func (t *CommitDialogTool) Name() string {
	return "commit_dialog"
}

// Description returns the tool description
func (t *CommitDialogTool) Description() string {
	return "Press the primary button: send the mail if To and message are filled, otherwise report what is missing"
}

// InputSchema returns the JSON schema for tool inputs
func (t *CommitDialogTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dialog_id": dialogIDSchema,
		},
		"required": []string{"dialog_id"},
	}
}

// Execute executes the tool. A blocked commit is a normal result that
// leaves the dialog open; only delivery failures are errors.
func (t *CommitDialogTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	session, err := sessionParam(t.deps, params)
	if err != nil {
		return nil, err
	}

	payload, err := session.Dialog.PressBegin()
	if errors.Is(err, recipient.ErrCommitBlocked) {
		return map[string]interface{}{
			"blocked": true,
			"dialog":  snapshot(session),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	session.Dialog.Close()
	t.deps.Dialogs.Remove(session.ID)

	t.deps.Logger.WithFields(logrus.Fields{
		"dialog_id": session.ID,
		"account":   session.AccountName,
		"to":        len(payload.To),
		"cc":        len(payload.Cc),
	}).Info("Dialog committed")

	return map[string]interface{}{
		"sent":    true,
		"subject": session.Subject,
		"payload": payload,
	}, nil
}

// CancelDialogTool presses the dialog's secondary button
type CancelDialogTool struct {
	deps *Deps
}

// NewCancelDialogTool creates a new cancel dialog tool
func NewCancelDialogTool(deps *Deps) *CancelDialogTool {
	return &CancelDialogTool{deps: deps}
}

// Name returns the tool name
func (t *CancelDialogTool) Name() string {
	return "cancel_dialog"
}

// Description returns the tool description
func (t *CancelDialogTool) Description() string {
	return "Press the secondary button and discard the dialog"
}

// InputSchema returns the JSON schema for tool inputs
func (t *CancelDialogTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dialog_id": dialogIDSchema,
		},
		"required": []string{"dialog_id"},
	}
}

// Execute executes the tool
func (t *CancelDialogTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	session, err := sessionParam(t.deps, params)
	if err != nil {
		return nil, err
	}
	session.Dialog.PressEnd()
	t.deps.Dialogs.Remove(session.ID)

	return map[string]interface{}{
		"cancelled": true,
		"dialog_id": session.ID,
	}, nil
}
