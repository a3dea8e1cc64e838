package dialog

import "fmt"

// Mode is the purpose of a dialog. It selects the default title, primary
// button label and previous-message visibility.
type Mode int

const (
	Compose Mode = iota
	Query
	Reply
	Approve
	Reject
)

var modeNames = map[Mode]string{
	Compose: "Compose",
	Query:   "Query",
	Reply:   "Reply",
	Approve: "Approve",
	Reject:  "Reject",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode by its exact name
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown dialog mode: %q", s)
}

// DeriveTitle returns title when set, otherwise the mode's default title
func DeriveTitle(title string, mode Mode) string {
	if title != "" {
		return title
	}
	switch mode {
	case Compose:
		return "Send Mail"
	case Query:
		return "Raise Query"
	case Reply:
		return "Reply to Query"
	case Approve:
		return "Approve Request"
	case Reject:
		return "Reject Request"
	default:
		return ""
	}
}

// DeriveBeginButtonText returns text when set, otherwise the mode's primary button label
func DeriveBeginButtonText(text string, mode Mode) string {
	if text != "" {
		return text
	}
	switch mode {
	case Query:
		return "Raise"
	case Reply:
		return "Reply"
	case Approve:
		return "Approve"
	case Reject:
		return "Reject"
	default:
		return "Send"
	}
}

// DeriveShowPreviousMessage returns *show when it is set, otherwise true
// for Reply and Approve.
func DeriveShowPreviousMessage(show *bool, mode Mode) bool {
	if show != nil {
		return *show
	}
	switch mode {
	case Reply, Approve:
		return true
	default:
		return false
	}
}
