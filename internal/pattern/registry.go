// Package pattern recognizes trigger patterns at the end of a text buffer.
//
// A fixed registry of kinds describes each trigger's capture arity and default
// regex. Patterns are tried in registry order and the first match is decoded
// into a typed Result.
package pattern

import "fmt"

// Kind identifies one of the fixed trigger semantics. The numeric order is the
// match priority: lower kinds win.
type Kind int

const (
	KindSettings Kind = iota
	KindModel
	KindRole
	KindClipboard
	KindQuickJump
	KindCommand
	KindAssistant

	numKinds
)

// Descriptor describes a pattern kind.
type Descriptor struct {
	Kind          Kind
	Title         string
	GroupCount    int
	DefaultRegex  string
	Editable      bool
	DefaultSymbol string
	Description   string
}

var registry = [numKinds]Descriptor{
	KindSettings: {
		Title:         "settings",
		GroupCount:    0,
		DefaultSymbol: "??",
		Editable:      true,
		Description:   "Open the trigger settings menu",
	},
	KindModel: {
		Title:         "model",
		GroupCount:    0,
		DefaultSymbol: "%%",
		Editable:      true,
		Description:   "Switch the backing model",
	},
	KindRole: {
		Title:         "role",
		GroupCount:    0,
		DefaultSymbol: "@@",
		Editable:      true,
		Description:   "Switch the active persona",
	},
	KindClipboard: {
		Title:         "clipboard",
		GroupCount:    0,
		DefaultSymbol: "~~",
		Editable:      true,
		Description:   "Recall clipboard history",
	},
	KindQuickJump: {
		Title:         "quickjump",
		GroupCount:    2,
		DefaultSymbol: "#",
		Editable:      true,
		Description:   "Open a bookmarked URL: query#keyword#",
	},
	KindCommand: {
		Title:         "command",
		GroupCount:    2,
		DefaultSymbol: "$",
		Editable:      true,
		Description:   "Ask the assistant with a persona command: text$cmd$",
	},
	KindAssistant: {
		Title:         "assistant",
		GroupCount:    1,
		DefaultSymbol: "$",
		Editable:      true,
		Description:   "Ask the assistant: text$",
	},
}

func init() {
	for k := range registry {
		d := &registry[k]
		d.Kind = Kind(k)
		re, ok := EncodeSymbol(d.DefaultSymbol, d.GroupCount)
		if !ok {
			panic(fmt.Sprintf("pattern: kind %s has no default regex", d.Title))
		}
		d.DefaultRegex = re
	}
}

// Kinds returns every kind in registry order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Describe returns the descriptor for k.
func (k Kind) Describe() Descriptor {
	if !k.Valid() {
		return Descriptor{Kind: k, Title: "unknown"}
	}
	return registry[k]
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

func (k Kind) String() string {
	return k.Describe().Title
}

// ParseKind looks a kind up by title.
func ParseKind(title string) (Kind, bool) {
	for _, d := range registry {
		if d.Title == title {
			return d.Kind, true
		}
	}
	return 0, false
}
