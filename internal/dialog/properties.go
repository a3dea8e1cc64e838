package dialog

// Default property values
const (
	DefaultPreviousMessageLabel = "Message"
	DefaultMessageLabel         = "Comments"
	DefaultEndButtonText        = "Close"
)

// Properties configure a dialog. Empty strings and a nil
// ShowPreviousMessage fall back to defaults when resolved.
type Properties struct {
	Mode                 Mode
	Title                string
	ShowPreviousMessage  *bool
	PreviousMessage      string
	PreviousMessageLabel string
	MessageLabel         string
	BeginButtonText      string
	EndButtonText        string

	// DefaultTo and DefaultCc seed the recipient fields on the first open
	DefaultTo []string
	DefaultCc []string
}

// View is the resolved presentation state of a dialog
type View struct {
	Mode                 string `json:"mode"`
	Title                string `json:"title"`
	ToLabel              string `json:"to_label"`
	CcLabel              string `json:"cc_label"`
	ShowPreviousMessage  bool   `json:"show_previous_message"`
	PreviousMessageLabel string `json:"previous_message_label,omitempty"`
	PreviousMessage      string `json:"previous_message,omitempty"`
	MessageLabel         string `json:"message_label"`
	BeginButtonText      string `json:"begin_button_text"`
	EndButtonText        string `json:"end_button_text"`
}

// Resolve applies mode-derived and static defaults
func (p Properties) Resolve() View {
	v := View{
		Mode:                p.Mode.String(),
		Title:               DeriveTitle(p.Title, p.Mode),
		ToLabel:             "To",
		CcLabel:             "Cc",
		ShowPreviousMessage: DeriveShowPreviousMessage(p.ShowPreviousMessage, p.Mode),
		MessageLabel:        orDefault(p.MessageLabel, DefaultMessageLabel),
		BeginButtonText:     DeriveBeginButtonText(p.BeginButtonText, p.Mode),
		EndButtonText:       orDefault(p.EndButtonText, DefaultEndButtonText),
	}
	if v.ShowPreviousMessage {
		v.PreviousMessageLabel = orDefault(p.PreviousMessageLabel, DefaultPreviousMessageLabel)
		v.PreviousMessage = p.PreviousMessage
	}
	return v
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
