package pattern

import (
	"strings"
	"unicode/utf8"

	"github.com/coregx/coregex"
)

// maxSymbolRunes bounds the backward scan in DecodeSymbol.
const maxSymbolRunes = 20

// EncodeSymbol builds a suffix-anchored regex that fires when the buffer ends
// with symbol. groupCount selects the capture layout:
//
//	0: symbol followed by optional whitespace
//	1: (body)symbol
//	2: (body)symbol(command)?symbol
//
// It reports false for an empty symbol or an unsupported group count.
func EncodeSymbol(symbol string, groupCount int) (string, bool) {
	if symbol == "" {
		return "", false
	}
	lit := coregex.QuoteMeta(symbol)

	switch groupCount {
	case 0:
		return lit + `\s*$`, true
	case 1:
		return `(?s)(.+)` + lit + `$`, true
	case 2:
		if utf8.RuneCountInString(symbol) == 1 {
			return `([^` + lit + `]+)` + lit + `([^` + lit + `\s]+)?` + lit + `$`, true
		}
		// Character-class exclusion only works for one rune.
		return `(?s)(.+?)` + lit + `(\S+)?` + lit + `$`, true
	}
	return "", false
}

// DecodeSymbol recovers the trigger symbol from a regex for display. It only
// promises to invert regexes built by EncodeSymbol; callers fall back to the
// kind's default symbol when it reports false.
func DecodeSymbol(regex string) (string, bool) {
	if i := strings.Index(regex, "[^"); i >= 0 {
		if s, ok := classSymbol(regex[i+2:]); ok {
			return s, true
		}
	}
	return suffixSymbol(regex)
}

// classSymbol returns the first literal inside a negated class body.
func classSymbol(body string) (string, bool) {
	rs := []rune(body)
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case ']':
			return "", false
		case ' ':
			continue
		case '\\':
			if i+1 < len(rs) {
				return string(rs[i+1]), true
			}
			return "", false
		default:
			return string(rs[i]), true
		}
	}
	return "", false
}

func suffixSymbol(regex string) (string, bool) {
	rs := []rune(regex)

	if n := len(rs); n > 0 && rs[n-1] == '$' && !escaped(rs, n-1) {
		rs = rs[:n-1]
	}
	for _, ws := range []string{`\s*`, `\s+`, `\s?`} {
		if n := len(rs); strings.HasSuffix(string(rs), ws) && !escaped(rs, n-3) {
			rs = rs[:n-3]
			break
		}
	}

	var out []rune
	for i := len(rs) - 1; i >= 0; {
		r := rs[i]
		if escaped(rs, i) {
			out = append(out, r)
			i -= 2
		} else if strings.ContainsRune(`()[]{}*+?|.^$\`, r) {
			break
		} else {
			out = append(out, r)
			i--
		}
		if len(out) > maxSymbolRunes {
			return "", false
		}
	}
	if len(out) == 0 {
		return "", false
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out), true
}

// escaped reports whether rs[i] is preceded by an odd run of backslashes.
func escaped(rs []rune, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && rs[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
