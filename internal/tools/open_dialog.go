package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/cache"
	"github.com/brandon/mail-dialog/internal/dialog"
	"github.com/brandon/mail-dialog/internal/email"
	"github.com/brandon/mail-dialog/internal/recipient"
)

// OpenDialogTool creates and opens a mail dialog
type OpenDialogTool struct {
	deps *Deps
}

// NewOpenDialogTool creates a new open dialog tool
func NewOpenDialogTool(deps *Deps) *OpenDialogTool {
	return &OpenDialogTool{deps: deps}
}

// Name returns the tool name
func (t *OpenDialogTool) Name() string {
	return "open_dialog"
}

// Description returns the tool description
func (t *OpenDialogTool) Description() string {
	return "Open a compose, query, reply, approve or reject mail dialog with optional seeded recipients"
}

// InputSchema returns the JSON schema for tool inputs
func (t *OpenDialogTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"preset": stringSchema("Optional: Named preset from the presets file"),
			"mode": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"Compose", "Query", "Reply", "Approve", "Reject"},
				"description": "Optional: Dialog purpose (default: Compose)",
			},
			"title":             stringSchema("Optional: Title, overrides the mode default"),
			"begin_button_text": stringSchema("Optional: Primary button label, overrides the mode default"),
			"end_button_text":   stringSchema("Optional: Secondary button label (default: Close)"),
			"show_previous_message": map[string]interface{}{
				"type":        "boolean",
				"description": "Optional: Show the previous message panel, overrides the mode default",
			},
			"previous_message":       stringSchema("Optional: Previous message text"),
			"previous_email_id":      map[string]interface{}{"type": "integer", "description": "Optional: Cached email to reply to; fills previous message, subject and threading"},
			"previous_message_label": stringSchema("Optional: Label of the previous message panel (default: Message)"),
			"message_label":          stringSchema("Optional: Label of the message field (default: Comments)"),
			"to":                     stringListSchema("Optional: To recipients to seed"),
			"cc":                     stringListSchema("Optional: Cc recipients to seed"),
			"account_name":           stringSchema("Optional: Account to send from (default account if omitted)"),
			"subject":                stringSchema("Optional: Subject of the outgoing mail (default: dialog title)"),
			"suggestion_source":      stringSchema("Optional: Suggestion data source name"),
			"suggestion_entity":      stringSchema("Optional: Suggestion collection (default: contacts)"),
			"suggestion_property":    stringSchema("Optional: Property filtered by typed text (default: email)"),
		},
	}
}

// Execute executes the tool
func (t *OpenDialogTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	props, subject, err := t.properties(params)
	if err != nil {
		return nil, err
	}

	accountName := stringParam(params, "account_name")
	if accountName == "" {
		acc := t.deps.Config.GetDefaultAccount()
		if acc == nil {
			return nil, fmt.Errorf("no account configured")
		}
		accountName = acc.Name
	} else if _, err := t.deps.Config.GetAccountByName(accountName); err != nil {
		return nil, err
	}

	var inReplyTo string
	if id, ok := intParam(params, "previous_email_id"); ok {
		prev, err := t.deps.Emails.GetEmail(int64(id))
		if err != nil {
			return nil, fmt.Errorf("failed to load previous email: %w", err)
		}
		if props.PreviousMessage == "" {
			props.PreviousMessage = prev.BodyText
		}
		if subject == "" && prev.Subject != "" {
			subject = replySubject(prev.Subject)
		}
		inReplyTo = prev.MessageID
		if len(props.DefaultTo) == 0 && props.Mode != dialog.Compose && prev.SenderEmail != "" {
			props.DefaultTo = []string{prev.SenderEmail}
		}
	}

	session := t.deps.Dialogs.Create(props)
	session.AccountName = accountName
	session.InReplyTo = inReplyTo

	view := session.Dialog.Open()
	if subject == "" {
		subject = view.Title
	}
	session.Subject = subject

	session.Dialog.OnSend = func(p recipient.Payload) error {
		return t.deps.Mailer.SendEmail(session.AccountName, &email.EmailMessage{
			To:        p.To,
			Cc:        p.Cc,
			Subject:   session.Subject,
			BodyText:  p.Message,
			InReplyTo: session.InReplyTo,
		})
	}
	session.Dialog.OnCancel = func() {
		t.deps.Logger.WithField("dialog_id", session.ID).Info("Dialog cancelled")
	}

	session.Dialog.BindSuggestions(t.binding(params), t.deps.Sources)

	t.deps.Logger.WithFields(logrus.Fields{
		"dialog_id": session.ID,
		"mode":      view.Mode,
		"account":   accountName,
	}).Info("Opened dialog")

	return snapshot(session), nil
}

// properties merges the optional preset with explicit parameters
func (t *OpenDialogTool) properties(params map[string]interface{}) (dialog.Properties, string, error) {
	var props dialog.Properties
	var subject string

	if name := stringParam(params, "preset"); name != "" {
		preset, ok := t.deps.Config.Presets[name]
		if !ok {
			return props, "", fmt.Errorf("preset not found: %s", name)
		}
		p, err := preset.Properties()
		if err != nil {
			return props, "", fmt.Errorf("preset %s: %w", name, err)
		}
		props = p
		subject = preset.Subject
	}

	if m := stringParam(params, "mode"); m != "" {
		mode, err := dialog.ParseMode(m)
		if err != nil {
			return props, "", err
		}
		props.Mode = mode
	}

	overrideString(&props.Title, params, "title")
	overrideString(&props.BeginButtonText, params, "begin_button_text")
	overrideString(&props.EndButtonText, params, "end_button_text")
	overrideString(&props.PreviousMessage, params, "previous_message")
	overrideString(&props.PreviousMessageLabel, params, "previous_message_label")
	overrideString(&props.MessageLabel, params, "message_label")
	overrideString(&subject, params, "subject")

	if b := boolParam(params, "show_previous_message"); b != nil {
		props.ShowPreviousMessage = b
	}
	if to := stringListParam(params, "to"); len(to) > 0 {
		props.DefaultTo = to
	}
	if cc := stringListParam(params, "cc"); len(cc) > 0 {
		props.DefaultCc = cc
	}

	return props, subject, nil
}

// binding builds the suggestion binding. With no suggestion parameters at
// all the dialog binds to the contacts cache by email.
func (t *OpenDialogTool) binding(params map[string]interface{}) dialog.Binding {
	b := dialog.Binding{
		DataSource: stringParam(params, "suggestion_source"),
		Entity:     stringParam(params, "suggestion_entity"),
		Property:   stringParam(params, "suggestion_property"),
	}
	if b == (dialog.Binding{}) {
		b.Entity = cache.ContactsEntity
		b.Property = "email"
	}
	return b
}

func overrideString(dst *string, params map[string]interface{}, key string) {
	if s := stringParam(params, key); s != "" {
		*dst = s
	}
}

func replySubject(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "re:") {
		return s
	}
	return "Re: " + s
}
