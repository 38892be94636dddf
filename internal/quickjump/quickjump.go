// Package quickjump loads, saves and resolves named URL shortcuts.
//
// Configs written by older releases come in several shapes. Load accepts all of
// them; Save always writes the canonical JSON array.
package quickjump

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/rcliao/textrigger/internal/model"
)

// newID returns a fresh entry id.
var newID = func() string {
	return ulid.Make().String()
}

// parser is one attempt at reading a config. ok is false when the input is
// not in the parser's format.
type parser func(config string) (entries []model.QuickJumpEntry, ok bool)

// parsers are tried in order; the first structurally valid parse wins.
var parsers = []parser{
	parseArray,
	parseObject,
	parseLegacy,
}

// Load parses a quick-jump config. It never fails: unreadable input degrades
// to the legacy text reading or an empty list.
func Load(config string) []model.QuickJumpEntry {
	config = strings.TrimSpace(config)
	if config == "" {
		return []model.QuickJumpEntry{}
	}
	for _, p := range parsers {
		if entries, ok := p(config); ok {
			return dedupeIDs(entries)
		}
	}
	return []model.QuickJumpEntry{}
}

// Save serializes entries as a JSON array regardless of the loaded format.
func Save(entries []model.QuickJumpEntry) string {
	if entries == nil {
		entries = []model.QuickJumpEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return "[]"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func parseArray(config string) ([]model.QuickJumpEntry, bool) {
	if !strings.HasPrefix(config, "[") {
		return nil, false
	}
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(config), &raws); err != nil {
		return nil, false
	}
	return decodeEntries(raws), true
}

func parseObject(config string) ([]model.QuickJumpEntry, bool) {
	if !strings.HasPrefix(config, "{") {
		return nil, false
	}
	var wrapper struct {
		Items *[]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(config), &wrapper); err != nil || wrapper.Items == nil {
		return nil, false
	}
	return decodeEntries(*wrapper.Items), true
}

const (
	nameOpen  = "【"
	nameClose = "】"
)

func parseLegacy(config string) ([]model.QuickJumpEntry, bool) {
	sep := "\n"
	if strings.Contains(config, "##") {
		sep = "##"
	}

	entries := []model.QuickJumpEntry{}
	for _, seg := range strings.Split(config, sep) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		e := model.QuickJumpEntry{ID: newID(), URL: seg, Enabled: true}
		if rest, ok := strings.CutPrefix(seg, nameOpen); ok {
			if name, url, found := strings.Cut(rest, nameClose); found {
				e.Name = strings.TrimSpace(name)
				e.URL = strings.TrimSpace(url)
			}
		}
		entries = append(entries, e)
	}
	return entries, true
}

type rawEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Trigger     string `json:"trigger"`
	URL         string `json:"url"`
	URLTemplate string `json:"urlTemplate"`
	Enabled     *bool  `json:"enabled"`
}

// decodeEntries skips elements that are not entry objects.
func decodeEntries(raws []json.RawMessage) []model.QuickJumpEntry {
	entries := make([]model.QuickJumpEntry, 0, len(raws))
	for _, raw := range raws {
		var r rawEntry
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		if strings.TrimSpace(string(raw)) == "null" {
			continue
		}
		e := model.QuickJumpEntry{
			ID:      strings.TrimSpace(r.ID),
			Name:    r.Name,
			Trigger: r.Trigger,
			URL:     r.URL,
			Enabled: true,
		}
		if e.ID == "" {
			e.ID = newID()
		}
		if strings.TrimSpace(e.URL) == "" {
			e.URL = r.URLTemplate
		}
		if r.Enabled != nil {
			e.Enabled = *r.Enabled
		}
		entries = append(entries, e)
	}
	return entries
}

// dedupeIDs gives a fresh id to any entry repeating an earlier id.
func dedupeIDs(entries []model.QuickJumpEntry) []model.QuickJumpEntry {
	seen := make(map[string]bool, len(entries))
	for i := range entries {
		if seen[entries[i].ID] {
			entries[i].ID = newID()
		}
		seen[entries[i].ID] = true
	}
	return entries
}
