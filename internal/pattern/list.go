package pattern

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/textrigger/internal/model"
)

// List holds one pattern per kind, in registry order.
type List []*Pattern

// Defaults returns the default pattern for every kind.
func Defaults() List {
	l := make(List, numKinds)
	for _, k := range Kinds() {
		l[k] = Default(k)
	}
	return l
}

// Load rebuilds the pattern list from its serialized form. Unknown kinds are
// ignored, missing kinds and uncompilable regexes get the kind default, and
// malformed input yields the defaults.
func Load(blob string) List {
	l := Defaults()
	if strings.TrimSpace(blob) == "" {
		return l
	}
	var settings []model.PatternSetting
	if err := json.Unmarshal([]byte(blob), &settings); err != nil {
		return l
	}
	l.Apply(settings)
	return l
}

// Apply overlays settings onto l. Entries that do not compile keep the
// kind's default regex but still carry their enabled flag.
func (l List) Apply(settings []model.PatternSetting) {
	for _, s := range settings {
		k, ok := ParseKind(s.Kind)
		if !ok {
			continue
		}
		p, err := New(k, s.Regex, s.Enabled)
		if err != nil {
			p = Default(k)
			p.Enabled = s.Enabled
		}
		l[k] = p
	}
}

// Settings returns the serializable form of l.
func (l List) Settings() []model.PatternSetting {
	out := make([]model.PatternSetting, 0, len(l))
	for _, p := range l {
		if p == nil {
			continue
		}
		out = append(out, model.PatternSetting{
			Kind:    p.Kind.String(),
			Regex:   p.Expr(),
			Enabled: p.Enabled,
		})
	}
	return out
}

// Save serializes l as a JSON array.
func (l List) Save() string {
	b, err := json.Marshal(l.Settings())
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Get returns the pattern for kind.
func (l List) Get(kind Kind) (*Pattern, bool) {
	for _, p := range l {
		if p != nil && p.Kind == kind {
			return p, true
		}
	}
	return nil, false
}

// SetSymbol regenerates the regex for kind from a new trigger symbol.
func (l List) SetSymbol(kind Kind, symbol string) error {
	p, ok := l.Get(kind)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	d := kind.Describe()
	if !d.Editable {
		return fmt.Errorf("%w: %s", ErrNotEditable, d.Title)
	}
	expr, ok := EncodeSymbol(symbol, d.GroupCount)
	if !ok {
		return ErrEmptySymbol
	}
	np, err := New(kind, expr, p.Enabled)
	if err != nil {
		return err
	}
	*p = *np
	return nil
}

// SetEnabled toggles kind on or off.
func (l List) SetEnabled(kind Kind, enabled bool) error {
	p, ok := l.Get(kind)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	p.Enabled = enabled
	return nil
}

// Reset restores the default regex for kind, keeping its enabled flag.
func (l List) Reset(kind Kind) error {
	p, ok := l.Get(kind)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	np := Default(kind)
	np.Enabled = p.Enabled
	*p = *np
	return nil
}
