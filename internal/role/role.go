// Package role resolves personas into the system instruction for a request.
package role

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/rcliao/textrigger/internal/model"
)

// DefaultID is reserved for the built-in persona.
const DefaultID = "default"

// taskHeader separates a persona prompt from the task instruction.
const taskHeader = "\n\n### Task\n"

var (
	ErrReserved = errors.New("role id is reserved")
	ErrInvalid  = errors.New("role needs id, name and prompt")
	ErrNotFound = errors.New("role not found")
)

// Default returns the built-in persona. It is synthesized on every load and
// never persisted.
func Default() model.Role {
	return model.Role{
		ID:     DefaultID,
		Name:   "Default",
		Prompt: "You are a helpful assistant.",
	}
}

// Load parses the custom role list. The result always starts with the default
// role. Entries missing id, name or prompt, and entries claiming the default
// id, are dropped, as are entries that fail to decode. A blob that is not a
// JSON array yields only the default role.
func Load(rolesJSON string) []model.Role {
	roles := []model.Role{Default()}
	if strings.TrimSpace(rolesJSON) == "" {
		return roles
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(rolesJSON), &raw); err != nil {
		return roles
	}
	for _, elem := range raw {
		var r model.Role
		if err := json.Unmarshal(elem, &r); err != nil {
			continue
		}
		if !valid(r) || strings.TrimSpace(r.ID) == DefaultID {
			continue
		}
		roles = append(roles, r)
	}
	return roles
}

// SerializeCustom writes every role except the default as a JSON array. The
// trigger key is always present.
func SerializeCustom(roles []model.Role) string {
	custom := make([]model.Role, 0, len(roles))
	for _, r := range roles {
		if r.ID != DefaultID {
			custom = append(custom, r)
		}
	}
	b, err := json.Marshal(custom)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// ResolveSystemMessage computes the system instruction for a request. The
// persona prompt of activeID is prefixed to provided; the default persona
// leaves provided untouched. ok is false when there is nothing to send.
func ResolveSystemMessage(activeID, rolesJSON, provided string) (string, bool) {
	task := strings.TrimSpace(provided)
	persona := personaPrompt(activeID, rolesJSON)
	switch {
	case persona == "" && task == "":
		return "", false
	case persona == "":
		return provided, true
	case task == "":
		return persona, true
	}
	return persona + taskHeader + provided, true
}

func personaPrompt(activeID, rolesJSON string) string {
	activeID = strings.TrimSpace(activeID)
	if activeID == "" || activeID == DefaultID {
		return ""
	}
	r, ok := Find(Load(rolesJSON), activeID)
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.Prompt)
}

// Find returns the role with the given id.
func Find(roles []model.Role, id string) (model.Role, bool) {
	i := slices.IndexFunc(roles, func(r model.Role) bool { return r.ID == id })
	if i < 0 {
		return model.Role{}, false
	}
	return roles[i], true
}

// ByTrigger resolves a typed command token to a role, matching the role's
// trigger first and its id second, both case-insensitively.
func ByTrigger(roles []model.Role, token string) (model.Role, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.Role{}, false
	}
	for _, r := range roles {
		if t := strings.TrimSpace(r.Trigger); t != "" && strings.EqualFold(t, token) {
			return r, true
		}
	}
	for _, r := range roles {
		if strings.EqualFold(r.ID, token) {
			return r, true
		}
	}
	return model.Role{}, false
}

// Upsert inserts r or replaces the role with the same id.
func Upsert(roles []model.Role, r model.Role) ([]model.Role, error) {
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == DefaultID {
		return roles, ErrReserved
	}
	if !valid(r) {
		return roles, ErrInvalid
	}
	out := slices.Clone(roles)
	if i := slices.IndexFunc(out, func(x model.Role) bool { return x.ID == r.ID }); i >= 0 {
		out[i] = r
		return out, nil
	}
	return append(out, r), nil
}

// Remove deletes the role with the given id. The default role cannot be
// removed.
func Remove(roles []model.Role, id string) ([]model.Role, error) {
	if id == DefaultID {
		return roles, ErrReserved
	}
	i := slices.IndexFunc(roles, func(r model.Role) bool { return r.ID == id })
	if i < 0 {
		return roles, ErrNotFound
	}
	return slices.Delete(slices.Clone(roles), i, i+1), nil
}

func valid(r model.Role) bool {
	return strings.TrimSpace(r.ID) != "" &&
		strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Prompt) != ""
}
