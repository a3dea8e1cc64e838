package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brandon/mail-dialog/internal/dialog"
)

func stringParam(params map[string]interface{}, key string) string {
	s, _ := params[key].(string)
	return s
}

func requiredString(params map[string]interface{}, key string) (string, error) {
	s := stringParam(params, key)
	if s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

// stringListParam accepts a JSON array or a comma-separated string. Entries
// reach the validator exactly as given in either form; array items that are
// not strings are rendered with fmt.Sprint so the validator reports them.
func stringListParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case []string:
		return v
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ",")
	}
	return nil
}

// boolParam returns nil when key is absent or not a boolean
func boolParam(params map[string]interface{}, key string) *bool {
	if b, ok := params[key].(bool); ok {
		return &b
	}
	return nil
}

func intParam(params map[string]interface{}, key string) (int, bool) {
	switch v := params[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}

func sessionParam(d *Deps, params map[string]interface{}) (*dialog.Session, error) {
	id, err := requiredString(params, "dialog_id")
	if err != nil {
		return nil, err
	}
	return d.Dialogs.Get(id)
}

func stringSchema(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func stringListSchema(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": desc,
	}
}

var dialogIDSchema = stringSchema("Dialog ID returned by open_dialog")

var roleSchema = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"To", "Cc"},
	"description": "Recipient field",
}
