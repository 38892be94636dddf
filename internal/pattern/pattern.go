package pattern

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrUnknownKind = errors.New("unknown pattern kind")
	ErrNotEditable = errors.New("pattern kind is not editable")
	ErrEmptySymbol = errors.New("trigger symbol is empty")
	ErrArity       = errors.New("regex capture groups do not match kind")
)

// Pattern is an active trigger: a kind plus its compiled regex.
type Pattern struct {
	Kind    Kind
	Regex   *regexp.Regexp
	Enabled bool
}

// New compiles expr for kind. The regex must declare exactly as many capture
// groups as the kind consumes.
func New(kind Kind, expr string, enabled bool) (*Pattern, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile %s pattern: %w", kind, err)
	}
	if got, want := groupCount(re), kind.Describe().GroupCount; got != want {
		return nil, fmt.Errorf("%w: %s wants %d, got %d", ErrArity, kind, want, got)
	}
	return &Pattern{Kind: kind, Regex: re, Enabled: enabled}, nil
}

// Default returns the enabled default pattern for kind.
func Default(kind Kind) *Pattern {
	p, err := New(kind, kind.Describe().DefaultRegex, true)
	if err != nil {
		panic(err)
	}
	return p
}

// Expr returns the source regex.
func (p *Pattern) Expr() string {
	return p.Regex.String()
}

// Symbol returns the trigger symbol for display, falling back to the kind's
// default when the regex cannot be decoded.
func (p *Pattern) Symbol() string {
	if s, ok := DecodeSymbol(p.Expr()); ok {
		return s
	}
	return p.Kind.Describe().DefaultSymbol
}

// IsDefault reports whether the pattern still uses its kind's default regex.
func (p *Pattern) IsDefault() bool {
	return p.Expr() == p.Kind.Describe().DefaultRegex
}

func groupCount(re *regexp.Regexp) int {
	return re.NumSubexp()
}
