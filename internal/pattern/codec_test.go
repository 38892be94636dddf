package pattern

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		groups int
		want   string
	}{
		{"??", 0, `\?\?\s*$`},
		{"%%", 0, `%%\s*$`},
		{"$", 1, `(?s)(.+)\$$`},
		{">>", 1, `(?s)(.+)>>$`},
		{"$", 2, `([^\$]+)\$([^\$\s]+)?\$$`},
		{"#", 2, `([^#]+)#([^#\s]+)?#$`},
		{">>", 2, `(?s)(.+?)>>(\S+)?>>$`},
	}
	for _, tt := range tests {
		got, ok := EncodeSymbol(tt.symbol, tt.groups)
		require.True(t, ok, "encode %q/%d", tt.symbol, tt.groups)
		assert.Equal(t, tt.want, got, "encode %q/%d", tt.symbol, tt.groups)
	}
}

func TestEncodeSymbolRejects(t *testing.T) {
	_, ok := EncodeSymbol("", 1)
	assert.False(t, ok, "empty symbol")

	_, ok = EncodeSymbol("$", 3)
	assert.False(t, ok, "unsupported group count")
}

func TestEncodedRegexesCompile(t *testing.T) {
	for _, sym := range []string{"$", "??", "\\", "]", "-", "^", " ", "【", ">>", "{q}"} {
		for g := 0; g <= 2; g++ {
			expr, ok := EncodeSymbol(sym, g)
			require.True(t, ok)
			_, err := regexp.Compile(expr)
			assert.NoError(t, err, "symbol %q groups %d: %s", sym, g, expr)
		}
	}
}

func TestDecodeSymbolRoundTripASCII(t *testing.T) {
	for c := '!'; c <= '~'; c++ {
		sym := string(c)
		for g := 0; g <= 1; g++ {
			expr, ok := EncodeSymbol(sym, g)
			require.True(t, ok)

			got, ok := DecodeSymbol(expr)
			require.True(t, ok, "decode %q (from %q/%d)", expr, sym, g)
			assert.Equal(t, sym, got, "decode %q", expr)

			again, _ := EncodeSymbol(got, g)
			assert.Equal(t, expr, again)
		}
	}
}

func TestDecodeSymbolRoundTripBehavior(t *testing.T) {
	inputs := []string{"hello$", "hello$ ", "a$b", "$", "x\n$", "plain"}
	for _, sym := range []string{"$", "!", "."} {
		expr, _ := EncodeSymbol(sym, 1)
		got, ok := DecodeSymbol(expr)
		require.True(t, ok)
		back, _ := EncodeSymbol(got, 1)

		a := regexp.MustCompile(expr)
		b := regexp.MustCompile(back)
		for _, in := range inputs {
			in = strings.ReplaceAll(in, "$", sym)
			assert.Equal(t, a.MatchString(in), b.MatchString(in), "symbol %q input %q", sym, in)
		}
	}
}

func TestDecodeSymbolTwoGroups(t *testing.T) {
	for _, sym := range []string{"$", "#", "-", "/", "]", ">>", "::"} {
		expr, _ := EncodeSymbol(sym, 2)
		got, ok := DecodeSymbol(expr)
		require.True(t, ok, "decode %q", expr)
		assert.Equal(t, sym, got)
	}
}

func TestDecodeSymbolMultiRune(t *testing.T) {
	for _, sym := range []string{"//", "@ai", "【】", "..."} {
		for g := 0; g <= 1; g++ {
			expr, _ := EncodeSymbol(sym, g)
			got, ok := DecodeSymbol(expr)
			require.True(t, ok, "decode %q", expr)
			assert.Equal(t, sym, got)
		}
	}
}

func TestDecodeSymbolGivesUp(t *testing.T) {
	tests := []string{
		`(\d+)$`,
		`.*`,
		``,
		strings.Repeat("a", maxSymbolRunes+1) + `$`,
	}
	for _, expr := range tests {
		_, ok := DecodeSymbol(expr)
		assert.False(t, ok, "decode %q", expr)
	}

	got, ok := DecodeSymbol(strings.Repeat("a", maxSymbolRunes) + `$`)
	assert.True(t, ok)
	assert.Len(t, got, maxSymbolRunes)
}

func TestEncodedRegexCaptures(t *testing.T) {
	tests := []struct {
		symbol string
		groups int
		buffer string
		want   []Capture
	}{
		{"$", 1, "hello$", []Capture{{"hello", true}}},
		{"ab", 1, "hello\nworldab", []Capture{{"hello\nworld", true}}},
		{"日", 1, "本文日", []Capture{{"本文", true}}},
		{"ab", 2, "bodyabcmdab", []Capture{{"body", true}, {"cmd", true}}},
		{"ab", 2, "bodyabab", []Capture{{"body", true}, {}}},
		{"::", 2, "body::cmd::", []Capture{{"body", true}, {"cmd", true}}},
		{"::", 2, "body::::", []Capture{{"body", true}, {}}},
		{"日", 2, "body日cmd日", []Capture{{"body", true}, {"cmd", true}}},
		{"日", 2, "body日日", []Capture{{"body", true}, {}}},
		{"$", 2, "body$cmd$", []Capture{{"body", true}, {"cmd", true}}},
	}
	for _, tt := range tests {
		expr, ok := EncodeSymbol(tt.symbol, tt.groups)
		require.True(t, ok)
		kind := KindAssistant
		if tt.groups == 2 {
			kind = KindCommand
		}
		p, err := New(kind, expr, true)
		require.NoError(t, err, "compile %q", expr)

		m, ok := Find(tt.buffer, []*Pattern{p})
		require.True(t, ok, "symbol %q buffer %q", tt.symbol, tt.buffer)
		assert.Equal(t, tt.want, m.Groups, "symbol %q buffer %q", tt.symbol, tt.buffer)
		assert.Equal(t, 0, m.Start)
		assert.Equal(t, len(tt.buffer), m.End)
	}
}
