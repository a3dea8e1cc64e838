package tools

import (
	"github.com/brandon/mail-dialog/internal/dialog"
	"github.com/brandon/mail-dialog/internal/recipient"
)

// dialogState is the JSON shape every dialog tool answers with
type dialogState struct {
	DialogID      string       `json:"dialog_id"`
	Open          bool         `json:"open"`
	Account       string       `json:"account"`
	Subject       string       `json:"subject"`
	View          dialog.View  `json:"view"`
	To            []string     `json:"to"`
	Cc            []string     `json:"cc"`
	Message       string       `json:"message"`
	Suggestions   *bindingInfo `json:"suggestions,omitempty"`
	Notifications []string     `json:"notifications"`
}

type bindingInfo struct {
	DataSource string `json:"data_source,omitempty"`
	Entity     string `json:"entity"`
	Property   string `json:"property"`
}

// snapshot describes a session and drains its pending notifications
func snapshot(s *dialog.Session) dialogState {
	st := dialogState{
		DialogID:      s.ID,
		Open:          s.Dialog.IsOpen(),
		Account:       s.AccountName,
		Subject:       s.Subject,
		View:          s.Dialog.View(),
		To:            s.Dialog.Tokens(recipient.To),
		Cc:            s.Dialog.Tokens(recipient.Cc),
		Message:       s.Dialog.Message(),
		Notifications: s.Notifications.Drain(),
	}
	if b, ok := s.Dialog.Binding(); ok {
		st.Suggestions = &bindingInfo{DataSource: b.DataSource, Entity: b.Entity, Property: b.Property}
	}
	return st
}
