// Package dialog hosts mail dialogs: a recipient editor, mode-derived
// presentation defaults, send/cancel signals and suggestion binding.
package dialog

import (
	"context"
	"fmt"

	"github.com/brandon/mail-dialog/internal/notify"
	"github.com/brandon/mail-dialog/internal/recipient"
	"github.com/brandon/mail-dialog/internal/suggest"
)

// Notification text for a rejected suggestion binding
const MsgIncompleteBinding = "Suggestion binding requires an entity and a property"

// Binding names the collection and property suggestions are drawn from.
// An empty DataSource selects the registry's default source.
type Binding struct {
	DataSource string `json:"data_source,omitempty"`
	Entity     string `json:"entity"`
	Property   string `json:"property"`
}

// Dialog is a single mail dialog. It is driven by one caller at a time.
type Dialog struct {
	props  Properties
	editor *recipient.Editor
	sink   notify.Sink

	view   View
	opened bool
	open   bool

	binding *Binding
	source  suggest.Source

	// OnSend receives the payload of a successful commit. An error keeps
	// the dialog open.
	OnSend func(recipient.Payload) error
	// OnCancel fires when the secondary button is pressed
	OnCancel func()
}

// New creates a closed dialog
func New(props Properties, sink notify.Sink) *Dialog {
	if sink == nil {
		sink = notify.Discard
	}
	return &Dialog{
		props:  props,
		editor: recipient.NewEditor(sink),
		sink:   sink,
		view:   props.Resolve(),
	}
}

// Open resolves the view and shows the dialog. The first open seeds the
// default recipients; later opens keep whatever tokens are present.
func (d *Dialog) Open() View {
	d.view = d.props.Resolve()
	if !d.opened {
		d.editor.AddMany(recipient.To, d.props.DefaultTo)
		d.editor.AddMany(recipient.Cc, d.props.DefaultCc)
		d.opened = true
	}
	d.open = true
	return d.view
}

// IsOpen reports whether the dialog is showing
func (d *Dialog) IsOpen() bool {
	return d.open
}

// View returns the last resolved view
func (d *Dialog) View() View {
	return d.view
}

// AddTo validates and appends To recipients
func (d *Dialog) AddTo(addrs []string) {
	d.editor.AddMany(recipient.To, addrs)
}

// AddCc validates and appends Cc recipients
func (d *Dialog) AddCc(addrs []string) {
	d.editor.AddMany(recipient.Cc, addrs)
}

// Add validates and appends recipients to the given role
func (d *Dialog) Add(role recipient.Role, addrs []string) {
	d.editor.AddMany(role, addrs)
}

// Tokens returns the addresses of a role in insertion order
func (d *Dialog) Tokens(role recipient.Role) []string {
	return d.editor.TokensOf(role)
}

// SetMessage replaces the message text
func (d *Dialog) SetMessage(msg string) {
	d.editor.SetMessage(msg)
}

// Message returns the message text
func (d *Dialog) Message() string {
	return d.editor.Message()
}

// Clear empties recipients and message
func (d *Dialog) Clear() {
	d.editor.Clear()
}

// PressBegin commits the editor and fires OnSend. A blocked commit returns
// an error wrapping recipient.ErrCommitBlocked and fires nothing.
func (d *Dialog) PressBegin() (recipient.Payload, error) {
	payload, err := d.editor.Commit()
	if err != nil {
		return recipient.Payload{}, err
	}
	if d.OnSend != nil {
		if err := d.OnSend(payload); err != nil {
			return recipient.Payload{}, fmt.Errorf("send handler failed: %w", err)
		}
	}
	return payload, nil
}

// PressEnd closes the dialog and fires OnCancel
func (d *Dialog) PressEnd() {
	d.Close()
	if d.OnCancel != nil {
		d.OnCancel()
	}
}

// Close hides the dialog without clearing its state
func (d *Dialog) Close() {
	d.open = false
}

// BindSuggestions connects the recipient fields to a suggestion source.
// An incomplete binding or unknown source is reported to the sink and
// leaves any previous binding untouched.
func (d *Dialog) BindSuggestions(b Binding, sources *suggest.Registry) bool {
	if b.Entity == "" || b.Property == "" {
		d.sink.Show(MsgIncompleteBinding)
		return false
	}
	if sources == nil {
		d.sink.Show(fmt.Sprintf("Unknown suggestion source %s", b.DataSource))
		return false
	}
	src, ok := sources.Lookup(b.DataSource)
	if !ok {
		d.sink.Show(fmt.Sprintf("Unknown suggestion source %s", b.DataSource))
		return false
	}
	d.binding = &b
	d.source = src
	return true
}

// Binding returns the active suggestion binding, if any
func (d *Dialog) Binding() (Binding, bool) {
	if d.binding == nil {
		return Binding{}, false
	}
	return *d.binding, true
}

// Suggest returns candidates whose bound property contains typed. The role
// is accepted for symmetry with the input fields; both fields share one
// binding. Without a binding it returns nil.
func (d *Dialog) Suggest(ctx context.Context, role recipient.Role, typed string, limit int) ([]string, error) {
	if d.source == nil {
		return nil, nil
	}
	matches, err := d.source.Filter(ctx, d.binding.Entity, d.binding.Property, typed, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to filter %s suggestions: %w", role, err)
	}
	return matches, nil
}
