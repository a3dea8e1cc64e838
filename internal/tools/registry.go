package tools

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mail-dialog/internal/config"
	"github.com/brandon/mail-dialog/internal/dialog"
	"github.com/brandon/mail-dialog/internal/email"
	"github.com/brandon/mail-dialog/internal/suggest"
	"github.com/brandon/mail-dialog/pkg/types"
)

// Mailer delivers committed dialogs and harvests contacts
type Mailer interface {
	SendEmail(accountName string, msg *email.EmailMessage) error
	SyncContacts(accountName, folder string, limit uint32) (*email.SyncResult, error)
}

// EmailLookup finds cached messages for previous-message panels
type EmailLookup interface {
	GetEmail(id int64) (*types.Email, error)
}

// Deps are the collaborators shared by every tool
type Deps struct {
	Config  *config.Config
	Dialogs *dialog.Manager
	Mailer  Mailer
	Emails  EmailLookup
	Sources *suggest.Registry
	Logger  *logrus.Logger
}

// Registry manages MCP tools
type Registry struct {
	deps  *Deps
	tools map[string]Tool
}

// Tool represents an MCP tool
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(ctx context.Context, params map[string]interface{}) (interface{}, error)
}

// NewRegistry creates a new tool registry
func NewRegistry(deps *Deps) *Registry {
	reg := &Registry{
		deps:  deps,
		tools: make(map[string]Tool),
	}
	reg.registerTools()
	return reg
}

func (r *Registry) registerTools() {
	toolList := []Tool{
		NewOpenDialogTool(r.deps),
		NewAddRecipientsTool(r.deps),
		NewSuggestRecipientsTool(r.deps),
		NewSetMessageTool(r.deps),
		NewClearDialogTool(r.deps),
		NewGetDialogTool(r.deps),
		NewListDialogsTool(r.deps),
		NewCommitDialogTool(r.deps),
		NewCancelDialogTool(r.deps),
		NewSyncContactsTool(r.deps),
	}

	for _, tool := range toolList {
		r.tools[tool.Name()] = tool
		r.deps.Logger.WithField("tool", tool.Name()).Debug("Registered tool")
	}

	r.deps.Logger.WithField("count", len(r.tools)).Info("Registered tools")
}

// GetTool returns a tool by name
func (r *Registry) GetTool(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns all registered tools sorted by name
func (r *Registry) ListTools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetToolDefinitions returns tool definitions for MCP
func (r *Registry) GetToolDefinitions() []map[string]interface{} {
	tools := r.ListTools()
	definitions := make([]map[string]interface{}, 0, len(tools))
	for _, tool := range tools {
		definitions = append(definitions, map[string]interface{}{
			"name":        tool.Name(),
			"description": tool.Description(),
			"inputSchema": tool.InputSchema(),
		})
	}
	return definitions
}
