package pattern

import (
	"cmp"
	"slices"
)

// Capture is one capture group. OK is false when the group did not take part
// in the match.
type Capture struct {
	Text string
	OK   bool
}

// Match is a raw pattern hit. Groups[0] holds capture group 1; the whole match
// is described by Start and End, which are byte offsets into the buffer.
type Match struct {
	Kind   Kind
	Symbol string
	Groups []Capture
	Start  int
	End    int
}

// Group returns capture group n (1-based).
func (m Match) Group(n int) (string, bool) {
	if n < 1 || n > len(m.Groups) {
		return "", false
	}
	c := m.Groups[n-1]
	return c.Text, c.OK
}

// Find runs the enabled patterns against buffer in registry order and returns
// the first hit. Later patterns are not tried once one matches. The input
// slice is not reordered.
func Find(buffer string, patterns []*Pattern) (Match, bool) {
	active := make([]*Pattern, 0, len(patterns))
	for _, p := range patterns {
		if p != nil && p.Enabled && p.Regex != nil {
			active = append(active, p)
		}
	}
	slices.SortStableFunc(active, func(a, b *Pattern) int {
		return cmp.Compare(a.Kind, b.Kind)
	})

	for _, p := range active {
		idx := p.Regex.FindStringSubmatchIndex(buffer)
		if idx == nil {
			continue
		}
		m := Match{
			Kind:   p.Kind,
			Symbol: p.Symbol(),
			Start:  idx[0],
			End:    idx[1],
		}
		n := p.Kind.Describe().GroupCount
		m.Groups = make([]Capture, n)
		for g := 1; g <= n && 2*g+1 < len(idx); g++ {
			lo, hi := idx[2*g], idx[2*g+1]
			if lo >= 0 && hi >= 0 {
				m.Groups[g-1] = Capture{Text: buffer[lo:hi], OK: true}
			}
		}
		return m, true
	}
	return Match{}, false
}
