package pattern

import (
	"strings"

	"github.com/rcliao/textrigger/internal/model"
	"github.com/rcliao/textrigger/internal/quickjump"
)

// Result is a decoded trigger. The set of implementations is closed.
type Result interface {
	Raw() Match
	isResult()
}

// AssistantPrompt asks the assistant to act on Prompt. RoleOverride is the
// optional command token typed between the trigger symbols.
type AssistantPrompt struct {
	Match
	Prompt        string
	RoleOverride  string
	TriggerSymbol string
}

// QuickJumpRequest opens a bookmarked URL. URL holds the entry's template;
// quickjump.BuildURL turns it into the final address.
type QuickJumpRequest struct {
	Match
	Name    string
	Trigger string
	Query   string
	URL     string
}

// ModelSwitch asks to switch the backing model.
type ModelSwitch struct{ Match }

// RoleSwitch asks to switch the active persona.
type RoleSwitch struct{ Match }

// SettingsMenu asks to open the settings menu.
type SettingsMenu struct{ Match }

// ClipboardRecall asks for the clipboard history.
type ClipboardRecall struct{ Match }

func (m Match) Raw() Match { return m }

func (AssistantPrompt) isResult()  {}
func (QuickJumpRequest) isResult() {}
func (ModelSwitch) isResult()      {}
func (RoleSwitch) isResult()       {}
func (SettingsMenu) isResult()     {}
func (ClipboardRecall) isResult()  {}

// Env carries the configuration decoders may consult beyond the match.
type Env struct {
	QuickJumps []model.QuickJumpEntry
}

type decoder func(m Match, env Env) Result

var decoders = [numKinds]decoder{
	KindSettings:  func(m Match, _ Env) Result { return SettingsMenu{m} },
	KindModel:     func(m Match, _ Env) Result { return ModelSwitch{m} },
	KindRole:      func(m Match, _ Env) Result { return RoleSwitch{m} },
	KindClipboard: func(m Match, _ Env) Result { return ClipboardRecall{m} },
	KindQuickJump: decodeQuickJump,
	KindCommand:   decodePrompt,
	KindAssistant: decodePrompt,
}

// DecodeResult builds the typed result for a match. It only looks at the
// captured groups and span.
func DecodeResult(m Match, env Env) Result {
	if !m.Kind.Valid() {
		return nil
	}
	return decoders[m.Kind](m, env)
}

func decodePrompt(m Match, _ Env) Result {
	body, _ := m.Group(1)
	r := AssistantPrompt{
		Match:         m,
		Prompt:        strings.TrimSpace(body),
		TriggerSymbol: m.Symbol,
	}
	if cmd, ok := m.Group(2); ok {
		r.RoleOverride = strings.TrimSpace(cmd)
	}
	return r
}

func decodeQuickJump(m Match, env Env) Result {
	query, _ := m.Group(1)
	keyword, _ := m.Group(2)
	r := QuickJumpRequest{
		Match:   m,
		Trigger: strings.TrimSpace(keyword),
		Query:   strings.TrimSpace(query),
	}
	if e, ok := quickjump.FindByTrigger(env.QuickJumps, r.Trigger); ok {
		r.Name = e.Name
		r.URL = e.URL
	}
	return r
}
