package engine

import (
	"context"
	"fmt"
	"slices"

	"github.com/rcliao/textrigger/internal/model"
	"github.com/rcliao/textrigger/internal/pattern"
	"github.com/rcliao/textrigger/internal/quickjump"
	"github.com/rcliao/textrigger/internal/role"
)

// Patterns returns a copy of the pattern list that callers may edit and pass
// to SavePatterns.
func (e *Engine) Patterns() pattern.List {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(pattern.List, len(e.patterns))
	for i, p := range e.patterns {
		cp := *p
		out[i] = &cp
	}
	return out
}

// QuickJumps returns a copy of the quick-jump entries.
func (e *Engine) QuickJumps() []model.QuickJumpEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.jumps)
}

// Roles returns every persona, the default first.
func (e *Engine) Roles() []model.Role {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.roles)
}

// ActiveRole returns the active persona id, or the default id.
func (e *Engine) ActiveRole() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.activeRole == "" {
		return role.DefaultID
	}
	return e.activeRole
}

// SystemMessage resolves the instruction for task under the active persona.
func (e *Engine) SystemMessage(task string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return role.ResolveSystemMessage(e.activeRole, e.rolesJSON, task)
}

// SavePatterns persists l.
func (e *Engine) SavePatterns(ctx context.Context, l pattern.List) error {
	return e.put(ctx, model.KeyPatterns, l.Save())
}

// SaveQuickJumps persists the whole entry list.
func (e *Engine) SaveQuickJumps(ctx context.Context, entries []model.QuickJumpEntry) error {
	return e.put(ctx, model.KeyQuickJumps, quickjump.Save(entries))
}

// SaveRoles persists the custom personas. The default persona is never
// written.
func (e *Engine) SaveRoles(ctx context.Context, roles []model.Role) error {
	return e.put(ctx, model.KeyRoles, role.SerializeCustom(roles))
}

// SetActiveRole selects the persona used for prompts without a command.
func (e *Engine) SetActiveRole(ctx context.Context, id string) error {
	if _, ok := role.Find(e.Roles(), id); !ok {
		return fmt.Errorf("%w: %s", role.ErrNotFound, id)
	}
	return e.put(ctx, model.KeyActiveRole, id)
}

// Export returns the full configuration.
func (e *Engine) Export() model.Bundle {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var custom []model.Role
	for _, r := range e.roles {
		if r.ID != role.DefaultID {
			custom = append(custom, r)
		}
	}
	return model.Bundle{
		Patterns:   e.patterns.Settings(),
		QuickJumps: slices.Clone(e.jumps),
		Roles:      custom,
		ActiveRole: e.activeRole,
	}
}

// Import overwrites the configuration with b. Values are normalized through
// the same loaders used at startup.
func (e *Engine) Import(ctx context.Context, b model.Bundle) error {
	l := pattern.Defaults()
	l.Apply(b.Patterns)
	if err := e.SavePatterns(ctx, l); err != nil {
		return err
	}
	if err := e.SaveQuickJumps(ctx, quickjump.Load(quickjump.Save(b.QuickJumps))); err != nil {
		return err
	}
	roles := role.Load(role.SerializeCustom(b.Roles))
	if err := e.SaveRoles(ctx, roles); err != nil {
		return err
	}
	active := b.ActiveRole
	if _, ok := role.Find(roles, active); !ok {
		active = ""
	}
	return e.put(ctx, model.KeyActiveRole, active)
}

func (e *Engine) put(ctx context.Context, key, value string) error {
	if err := e.settings.Put(ctx, key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
