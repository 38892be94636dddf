package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/textrigger/internal/model"
)

func TestRegistryOrder(t *testing.T) {
	var titles []string
	for _, k := range Kinds() {
		titles = append(titles, k.String())
	}
	assert.Equal(t, []string{
		"settings", "model", "role", "clipboard", "quickjump", "command", "assistant",
	}, titles)
}

func TestRegistryDescriptors(t *testing.T) {
	for _, k := range Kinds() {
		d := k.Describe()
		assert.Equal(t, k, d.Kind)
		p := Default(k)
		assert.Equal(t, d.GroupCount, groupCount(p.Regex), "kind %s", d.Title)
		assert.Equal(t, d.DefaultSymbol, p.Symbol(), "kind %s", d.Title)
	}
	assert.False(t, Kind(99).Valid())
	assert.Equal(t, "unknown", Kind(-1).String())
}

func TestFindDefaults(t *testing.T) {
	l := Defaults()
	tests := []struct {
		buffer string
		kind   Kind
		groups []Capture
	}{
		{"open settings??", KindSettings, []Capture{}},
		{"??\n", KindSettings, []Capture{}},
		{"%%", KindModel, []Capture{}},
		{"@@ ", KindRole, []Capture{}},
		{"~~", KindClipboard, []Capture{}},
		{"golang channels#g#", KindQuickJump, []Capture{{"golang channels", true}, {"g", true}}},
		{"weather##", KindQuickJump, []Capture{{"weather", true}, {}}},
		{"fix this$tr$", KindCommand, []Capture{{"fix this", true}, {"tr", true}}},
		{"fix this$$", KindCommand, []Capture{{"fix this", true}, {}}},
		{"fix this$", KindAssistant, []Capture{{"fix this", true}}},
		{"line one\nline two$", KindAssistant, []Capture{{"line one\nline two", true}}},
	}
	for _, tt := range tests {
		m, ok := Find(tt.buffer, l)
		require.True(t, ok, "buffer %q", tt.buffer)
		assert.Equal(t, tt.kind, m.Kind, "buffer %q", tt.buffer)
		assert.Equal(t, tt.groups, m.Groups, "buffer %q", tt.buffer)
	}
}

func TestFindNoMatch(t *testing.T) {
	l := Defaults()
	for _, buffer := range []string{"", "hello", "price is $5", "a?b"} {
		_, ok := Find(buffer, l)
		assert.False(t, ok, "buffer %q", buffer)
	}
}

func TestFindSpan(t *testing.T) {
	m, ok := Find("abc%%", Defaults())
	require.True(t, ok)
	assert.Equal(t, 3, m.Start)
	assert.Equal(t, 5, m.End)

	m, ok = Find("ask me$", Defaults())
	require.True(t, ok)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 7, m.End)
}

// Settings (ordinal 0, no groups) outranks assistant (ordinal 6, one group)
// when both use the same symbol.
func TestFindRegistryOrderWins(t *testing.T) {
	zero, err := New(KindSettings, mustEncode(t, "X", 0), true)
	require.NoError(t, err)
	one, err := New(KindAssistant, mustEncode(t, "X", 1), true)
	require.NoError(t, err)

	m, ok := Find("hello X", []*Pattern{one, zero})
	require.True(t, ok)
	assert.Equal(t, KindSettings, m.Kind)

	zero.Enabled = false
	m, ok = Find("hello X", []*Pattern{one, zero})
	require.True(t, ok)
	assert.Equal(t, KindAssistant, m.Kind)
	text, _ := m.Group(1)
	assert.Equal(t, "hello ", text)
}

func TestFindDoesNotReorderInput(t *testing.T) {
	l := Defaults()
	reversed := make([]*Pattern, len(l))
	for i, p := range l {
		reversed[len(l)-1-i] = p
	}
	first := reversed[0]

	m, ok := Find("hello$$", reversed)
	require.True(t, ok)
	assert.Equal(t, KindCommand, m.Kind)
	assert.Same(t, first, reversed[0])
}

func TestFindSkipsDisabled(t *testing.T) {
	l := Defaults()
	require.NoError(t, l.SetEnabled(KindCommand, false))

	m, ok := Find("hello$$", l)
	require.True(t, ok)
	assert.Equal(t, KindAssistant, m.Kind)
	text, _ := m.Group(1)
	assert.Equal(t, "hello$", text)
}

func TestMatchGroup(t *testing.T) {
	m := Match{Groups: []Capture{{"a", true}, {}}}
	v, ok := m.Group(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = m.Group(2)
	assert.False(t, ok)
	_, ok = m.Group(0)
	assert.False(t, ok)
	_, ok = m.Group(3)
	assert.False(t, ok)
}

func TestDecodeResult(t *testing.T) {
	l := Defaults()
	env := Env{QuickJumps: []model.QuickJumpEntry{
		{ID: "1", Name: "Search", URL: "https://s.example/?q={q}", Enabled: true},
		{ID: "2", Name: "Go docs", Trigger: "g", URL: "https://pkg.go.dev/search?q=%s", Enabled: true},
	}}

	decode := func(buffer string) Result {
		m, ok := Find(buffer, l)
		require.True(t, ok, "buffer %q", buffer)
		return DecodeResult(m, env)
	}

	assert.IsType(t, SettingsMenu{}, decode("??"))
	assert.IsType(t, ModelSwitch{}, decode("%%"))
	assert.IsType(t, RoleSwitch{}, decode("@@"))
	assert.IsType(t, ClipboardRecall{}, decode("~~"))

	p, ok := decode("  summarize this  $").(AssistantPrompt)
	require.True(t, ok)
	assert.Equal(t, "summarize this", p.Prompt)
	assert.Empty(t, p.RoleOverride)
	assert.Equal(t, "$", p.TriggerSymbol)

	p, ok = decode("translate me $tr$").(AssistantPrompt)
	require.True(t, ok)
	assert.Equal(t, "translate me", p.Prompt)
	assert.Equal(t, "tr", p.RoleOverride)
	assert.Equal(t, KindCommand, p.Raw().Kind)

	q, ok := decode("channels#g#").(QuickJumpRequest)
	require.True(t, ok)
	assert.Equal(t, "Go docs", q.Name)
	assert.Equal(t, "g", q.Trigger)
	assert.Equal(t, "channels", q.Query)
	assert.Equal(t, "https://pkg.go.dev/search?q=%s", q.URL)

	q, ok = decode("weather##").(QuickJumpRequest)
	require.True(t, ok)
	assert.Equal(t, "Search", q.Name)

	q, ok = decode("weather#nope#").(QuickJumpRequest)
	require.True(t, ok)
	assert.Empty(t, q.Name)
	assert.Empty(t, q.URL)

	assert.Nil(t, DecodeResult(Match{Kind: Kind(42)}, env))
}

func mustEncode(t *testing.T, symbol string, groups int) string {
	t.Helper()
	expr, ok := EncodeSymbol(symbol, groups)
	require.True(t, ok)
	return expr
}
