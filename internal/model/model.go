// Package model defines the persisted trigger data types.
package model

// QuickJumpEntry is a named URL shortcut invoked by keyword plus query.
type QuickJumpEntry struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Trigger string `json:"trigger" yaml:"trigger"`
	URL     string `json:"url" yaml:"url"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Role is a persona whose prompt is prefixed to task instructions.
type Role struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Prompt  string `json:"prompt" yaml:"prompt"`
	Trigger string `json:"trigger" yaml:"trigger"`
}

// PatternSetting is the serialized form of one trigger pattern.
type PatternSetting struct {
	Kind    string `json:"kind" yaml:"kind"`
	Regex   string `json:"regex" yaml:"regex"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

// Bundle is a full export of the trigger settings.
type Bundle struct {
	Patterns   []PatternSetting `json:"patterns" yaml:"patterns"`
	QuickJumps []QuickJumpEntry `json:"quick_jumps" yaml:"quick_jumps"`
	Roles      []Role           `json:"roles" yaml:"roles"`
	ActiveRole string           `json:"active_role,omitempty" yaml:"active_role,omitempty"`
}

// Settings keys used by the engine.
const (
	KeyPatterns   = "trigger.patterns"
	KeyQuickJumps = "quickjump.items"
	KeyRoles      = "roles.custom"
	KeyActiveRole = "roles.active"
)

// ValidFormats are the accepted output formats.
var ValidFormats = map[string]bool{
	"json": true,
	"yaml": true,
	"text": true,
}
