package quickjump

import (
	"errors"
	"slices"
	"strings"

	"github.com/rcliao/textrigger/internal/model"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("quick-jump entry not found")

// Add appends a new enabled entry with a fresh id. The input slice is not
// modified.
func Add(entries []model.QuickJumpEntry, name, trigger, url string) ([]model.QuickJumpEntry, model.QuickJumpEntry) {
	e := model.QuickJumpEntry{
		ID:      newID(),
		Name:    strings.TrimSpace(name),
		Trigger: strings.TrimSpace(trigger),
		URL:     strings.TrimSpace(url),
		Enabled: true,
	}
	out := append(slices.Clone(entries), e)
	return out, e
}

// Update replaces the entry with the same id.
func Update(entries []model.QuickJumpEntry, e model.QuickJumpEntry) ([]model.QuickJumpEntry, error) {
	i := index(entries, e.ID)
	if i < 0 {
		return entries, ErrNotFound
	}
	out := slices.Clone(entries)
	out[i] = e
	return out, nil
}

// Remove deletes the entry with the given id.
func Remove(entries []model.QuickJumpEntry, id string) ([]model.QuickJumpEntry, error) {
	i := index(entries, id)
	if i < 0 {
		return entries, ErrNotFound
	}
	return slices.Delete(slices.Clone(entries), i, i+1), nil
}

// Toggle flips the enabled flag of the entry with the given id.
func Toggle(entries []model.QuickJumpEntry, id string) ([]model.QuickJumpEntry, error) {
	i := index(entries, id)
	if i < 0 {
		return entries, ErrNotFound
	}
	out := slices.Clone(entries)
	out[i].Enabled = !out[i].Enabled
	return out, nil
}

// Find returns the entry with the given id.
func Find(entries []model.QuickJumpEntry, id string) (model.QuickJumpEntry, bool) {
	if i := index(entries, id); i >= 0 {
		return entries[i], true
	}
	return model.QuickJumpEntry{}, false
}

// FindByTrigger picks the enabled entry for a typed keyword. Keywords compare
// case-insensitively. An empty keyword selects the first enabled entry without
// a trigger, else the first enabled entry.
func FindByTrigger(entries []model.QuickJumpEntry, keyword string) (model.QuickJumpEntry, bool) {
	keyword = strings.TrimSpace(keyword)
	var fallback *model.QuickJumpEntry
	for i := range entries {
		e := &entries[i]
		if !e.Enabled {
			continue
		}
		trigger := strings.TrimSpace(e.Trigger)
		if keyword != "" {
			if strings.EqualFold(trigger, keyword) {
				return *e, true
			}
			continue
		}
		if trigger == "" {
			return *e, true
		}
		if fallback == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return model.QuickJumpEntry{}, false
}

func index(entries []model.QuickJumpEntry, id string) int {
	return slices.IndexFunc(entries, func(e model.QuickJumpEntry) bool {
		return e.ID == id
	})
}
