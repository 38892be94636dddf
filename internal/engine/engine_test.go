package engine

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/rcliao/textrigger/internal/model"
	"github.com/rcliao/textrigger/internal/pattern"
	"github.com/rcliao/textrigger/internal/quickjump"
	"github.com/rcliao/textrigger/internal/store"
)

func newTestEngine(t *testing.T, values map[string]string) (*Engine, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore(values)
	e, err := New(context.Background(), s, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Close)
	return e, s
}

func TestProcessNoMatch(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	if _, ok := e.Process("just typing"); ok {
		t.Error("expected no match")
	}
}

func TestProcessAssistantPrompt(t *testing.T) {
	e, _ := newTestEngine(t, map[string]string{
		model.KeyRoles:      `[{"id":"terse","name":"Terse","prompt":"Be terse.","trigger":"t"}]`,
		model.KeyActiveRole: "terse",
	})

	a, ok := e.Process("explain goroutines$")
	if !ok {
		t.Fatal("expected a match")
	}
	if a.Kind != "assistant" || a.Prompt != "explain goroutines" {
		t.Errorf("unexpected action: %+v", a)
	}
	if a.RoleID != "terse" || a.SystemMessage != "Be terse." {
		t.Errorf("expected active persona, got role %q system %q", a.RoleID, a.SystemMessage)
	}
	if _, ok := a.Result.(pattern.AssistantPrompt); !ok {
		t.Errorf("expected AssistantPrompt result, got %T", a.Result)
	}
}

func TestProcessCommandSelectsPersona(t *testing.T) {
	e, _ := newTestEngine(t, map[string]string{
		model.KeyRoles: `[{"id":"translator","name":"Translator","prompt":"Translate to English.","trigger":"tr"}]`,
	})

	a, ok := e.Process("bonjour $tr$")
	if !ok {
		t.Fatal("expected a match")
	}
	if a.Kind != "command" || a.Command != "tr" || a.Prompt != "bonjour" {
		t.Errorf("unexpected action: %+v", a)
	}
	if a.RoleID != "translator" || a.SystemMessage != "Translate to English." {
		t.Errorf("expected translator persona, got %q / %q", a.RoleID, a.SystemMessage)
	}

	a, _ = e.Process("bonjour $$")
	if a.RoleID != "default" || a.SystemMessage != "" {
		t.Errorf("expected default persona without system message, got %q / %q", a.RoleID, a.SystemMessage)
	}
}

func TestProcessQuickJump(t *testing.T) {
	e, _ := newTestEngine(t, map[string]string{
		model.KeyQuickJumps: "【Search】https://duckduckgo.com/?q=##【Go】https://pkg.go.dev/search?q={q}",
	})

	a, ok := e.Process("http client##")
	if !ok {
		t.Fatal("expected a match")
	}
	if a.Kind != "quickjump" || a.Name != "Search" {
		t.Errorf("unexpected action: %+v", a)
	}
	if a.URL != "https://duckduckgo.com/?q=http%20client" {
		t.Errorf("unexpected url %q", a.URL)
	}
}

func TestReloadOnSettingsChange(t *testing.T) {
	ctx := context.Background()
	e, s := newTestEngine(t, nil)

	l := e.Patterns()
	if err := l.SetSymbol(pattern.KindAssistant, ">>"); err != nil {
		t.Fatalf("set symbol: %v", err)
	}
	if err := e.SavePatterns(ctx, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	a, ok := e.Process("hello>>")
	if !ok || a.Kind != "assistant" || a.Symbol != ">>" {
		t.Errorf("expected reloaded assistant pattern, got %+v (ok=%v)", a, ok)
	}

	entries, _ := quickjump.Add(nil, "Docs", "d", "https://docs/?q=%s")
	if err := e.SaveQuickJumps(ctx, entries); err != nil {
		t.Fatalf("save jumps: %v", err)
	}
	a, ok = e.Process("maps#d#")
	if !ok || a.URL != "https://docs/?q=maps" {
		t.Errorf("expected docs url, got %+v", a)
	}

	raw, _ := s.Get(ctx, model.KeyQuickJumps)
	if raw == "" || raw[0] != '[' {
		t.Errorf("expected canonical JSON array, got %q", raw)
	}
}

func TestSetActiveRole(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t, nil)

	if err := e.SetActiveRole(ctx, "ghost"); err == nil {
		t.Error("expected error for unknown role")
	}
	if got := e.ActiveRole(); got != "default" {
		t.Errorf("expected default active role, got %q", got)
	}

	roles := append(e.Roles(), model.Role{ID: "poet", Name: "Poet", Prompt: "Rhyme."})
	if err := e.SaveRoles(ctx, roles); err != nil {
		t.Fatalf("save roles: %v", err)
	}
	if err := e.SetActiveRole(ctx, "poet"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	msg, ok := e.SystemMessage("Describe rain")
	if !ok || msg != "Rhyme.\n\n### Task\nDescribe rain" {
		t.Errorf("unexpected system message %q", msg)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src, _ := newTestEngine(t, map[string]string{
		model.KeyQuickJumps: `[{"id":"1","name":"N","trigger":"n","url":"http://n/{q}","enabled":false}]`,
		model.KeyRoles:      `[{"id":"x","name":"X","prompt":"P"}]`,
		model.KeyActiveRole: "x",
	})
	l := src.Patterns()
	l.SetEnabled(pattern.KindModel, false)
	if err := src.SavePatterns(ctx, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	bundle := src.Export()
	if len(bundle.Roles) != 1 || bundle.Roles[0].ID != "x" {
		t.Errorf("expected only custom roles in export, got %+v", bundle.Roles)
	}

	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "dst.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	dst, err := New(ctx, st, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer dst.Close()

	if err := dst.Import(ctx, bundle); err != nil {
		t.Fatalf("import: %v", err)
	}

	got := dst.Export()
	if got.ActiveRole != "x" {
		t.Errorf("expected active role x, got %q", got.ActiveRole)
	}
	if len(got.QuickJumps) != 1 || got.QuickJumps[0].ID != "1" || got.QuickJumps[0].Enabled {
		t.Errorf("unexpected quick jumps: %+v", got.QuickJumps)
	}
	p, _ := dst.Patterns().Get(pattern.KindModel)
	if p.Enabled {
		t.Error("expected model pattern to stay disabled")
	}
	if _, ok := dst.Process("%%"); ok {
		t.Error("disabled pattern should not match")
	}
}
