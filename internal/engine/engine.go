// Package engine ties the trigger packages to a settings store: it loads the
// active patterns, quick-jump entries and personas, and turns a text buffer
// into an Action.
package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/rcliao/textrigger/internal/model"
	"github.com/rcliao/textrigger/internal/pattern"
	"github.com/rcliao/textrigger/internal/quickjump"
	"github.com/rcliao/textrigger/internal/role"
	"github.com/rcliao/textrigger/internal/store"
)

// Action is a decoded trigger with its downstream values resolved.
type Action struct {
	Kind          string         `json:"kind"`
	Start         int            `json:"start"`
	End           int            `json:"end"`
	Symbol        string         `json:"symbol,omitempty"`
	Prompt        string         `json:"prompt,omitempty"`
	Command       string         `json:"command,omitempty"`
	RoleID        string         `json:"role_id,omitempty"`
	SystemMessage string         `json:"system_message,omitempty"`
	Name          string         `json:"name,omitempty"`
	Trigger       string         `json:"trigger,omitempty"`
	Query         string         `json:"query,omitempty"`
	URL           string         `json:"url,omitempty"`
	Result        pattern.Result `json:"-"`
}

// Engine holds the trigger configuration loaded from a settings store. It
// reloads itself whenever one of its keys changes.
type Engine struct {
	settings store.Settings
	log      *zap.Logger

	mu         sync.RWMutex
	patterns   pattern.List
	jumps      []model.QuickJumpEntry
	rolesJSON  string
	roles      []model.Role
	activeRole string

	unsubscribe func()
}

var watchedKeys = []string{
	model.KeyPatterns,
	model.KeyQuickJumps,
	model.KeyRoles,
	model.KeyActiveRole,
}

// New loads the configuration from settings and subscribes to changes.
func New(ctx context.Context, settings store.Settings, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{settings: settings, log: log}
	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	e.unsubscribe = settings.Subscribe(e.onChange)
	return e, nil
}

// Close stops listening for settings changes.
func (e *Engine) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
	}
}

func (e *Engine) onChange(key string) {
	if !slices.Contains(watchedKeys, key) {
		return
	}
	if err := e.Reload(context.Background()); err != nil {
		e.log.Warn("reload after settings change failed", zap.String("key", key), zap.Error(err))
	}
}

// Reload rebuilds patterns, quick-jumps and roles from the settings store.
// Unparseable values degrade to defaults; only store errors are returned.
func (e *Engine) Reload(ctx context.Context) error {
	get := func(key string) (string, error) {
		v, err := store.GetOr(ctx, e.settings, key, "")
		if err != nil {
			return "", fmt.Errorf("load %s: %w", key, err)
		}
		return v, nil
	}

	patternsBlob, err := get(model.KeyPatterns)
	if err != nil {
		return err
	}
	jumpsBlob, err := get(model.KeyQuickJumps)
	if err != nil {
		return err
	}
	rolesJSON, err := get(model.KeyRoles)
	if err != nil {
		return err
	}
	active, err := get(model.KeyActiveRole)
	if err != nil {
		return err
	}

	patterns := pattern.Load(patternsBlob)
	jumps := quickjump.Load(jumpsBlob)
	roles := role.Load(rolesJSON)

	e.mu.Lock()
	e.patterns = patterns
	e.jumps = jumps
	e.rolesJSON = rolesJSON
	e.roles = roles
	e.activeRole = strings.TrimSpace(active)
	e.mu.Unlock()

	e.log.Debug("trigger settings loaded",
		zap.Int("patterns", len(patterns)),
		zap.Int("quick_jumps", len(jumps)),
		zap.Int("roles", len(roles)),
		zap.String("active_role", active))
	return nil
}

// Process matches buffer against the active patterns. ok is false when no
// trigger is present, which is the common case.
func (e *Engine) Process(buffer string) (Action, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	m, ok := pattern.Find(buffer, e.patterns)
	if !ok {
		return Action{}, false
	}
	res := pattern.DecodeResult(m, pattern.Env{QuickJumps: e.jumps})

	a := Action{
		Kind:   m.Kind.String(),
		Start:  m.Start,
		End:    m.End,
		Symbol: m.Symbol,
		Result: res,
	}
	switch r := res.(type) {
	case pattern.AssistantPrompt:
		a.Prompt = r.Prompt
		a.Command = r.RoleOverride
		a.RoleID = e.roleFor(r.RoleOverride)
		a.SystemMessage, _ = role.ResolveSystemMessage(a.RoleID, e.rolesJSON, "")
	case pattern.QuickJumpRequest:
		a.Name = r.Name
		a.Trigger = r.Trigger
		a.Query = r.Query
		a.URL = quickjump.BuildURL(r.URL, r.Query)
	}

	e.log.Debug("trigger matched",
		zap.String("kind", a.Kind),
		zap.Int("start", a.Start),
		zap.Int("end", a.End))
	return a, true
}

// roleFor picks the persona for a prompt: the one named by the command token
// when it resolves, else the active persona. Caller holds e.mu.
func (e *Engine) roleFor(command string) string {
	if r, ok := role.ByTrigger(e.roles, command); ok {
		return r.ID
	}
	if _, ok := role.Find(e.roles, e.activeRole); ok {
		return e.activeRole
	}
	return role.DefaultID
}
