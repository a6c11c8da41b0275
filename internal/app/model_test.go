package app

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/schemer/internal/config"
	"github.com/wilbur182/schemer/internal/registry"
	"github.com/wilbur182/schemer/internal/scheme"
	"github.com/wilbur182/schemer/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	registry.Reset()
	t.Cleanup(registry.Reset)

	config.SetTestConfigPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(func() { config.SetTestConfigPath("") })

	def := scheme.New("Default")
	def.SetAttributes(scheme.TextKey, &scheme.TextAttributes{
		Foreground: &scheme.Color{R: 0, G: 0, B: 0},
		Background: &scheme.Color{R: 0xff, G: 0xff, B: 0xff},
	})
	registry.RegisterDefault(def)

	dusk := scheme.New("Dusk", scheme.WithParent(def))
	dusk.SetAttributes(scheme.TextKey, &scheme.TextAttributes{
		Foreground: &scheme.Color{R: 0xa9, G: 0xb7, B: 0xc6},
		Background: &scheme.Color{R: 0x2b, G: 0x2b, B: 0x2b},
	})
	registry.RegisterDefault(dusk)

	st, err := store.Open(t.TempDir(), registry.ResolveDefault)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Schemes.AutoReload = false
	m := New(cfg, st)
	m.width = 100
	m.height = 30
	return m
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(*Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

// drain runs a command and feeds its message back into the model.
func drain(t *testing.T, m *Model, cmd tea.Cmd) *Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return m
		}
		m, cmd = update(t, m, msg)
	}
	return m
}

func TestEntriesBundledFirstSorted(t *testing.T) {
	m := newTestModel(t)
	registry.Register(scheme.New("A User Scheme"))
	m.rebuildEntries()

	if len(m.entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(m.entries))
	}
	if !m.entries[0].Bundled || m.entries[0].Name != "Default" {
		t.Errorf("first entry = %+v, want bundled Default", m.entries[0])
	}
	if m.entries[2].Bundled || m.entries[2].Name != "A User Scheme" {
		t.Errorf("last entry = %+v, want the user scheme", m.entries[2])
	}
}

func TestModifiedMarker(t *testing.T) {
	m := newTestModel(t)

	bundled := registry.Get("Dusk")
	copyScheme := bundled.Clone()
	copyScheme.SetName(scheme.EditableCopyPrefix + "Dusk")
	copyScheme.SetCanBeDeleted(true)
	copyScheme.SetParentScheme(bundled)
	registry.Register(copyScheme)
	m.rebuildEntries()

	for _, e := range m.entries {
		if e.Name == copyScheme.Name() && e.Modified {
			t.Error("untouched copy must not be marked modified")
		}
	}

	copyScheme.SetColor("CARET_COLOR", &scheme.Color{R: 1, G: 2, B: 3})
	m.rebuildEntries()
	found := false
	for _, e := range m.entries {
		if e.Name == copyScheme.Name() {
			found = e.Modified
		}
	}
	if !found {
		t.Error("diverged copy must be marked modified")
	}
}

func TestApplySelectedPersistsChoice(t *testing.T) {
	m := newTestModel(t)
	m.selectByName("Dusk")

	m, cmd := update(t, m, press("enter"))
	m = drain(t, m, cmd)

	if m.current != "Dusk" {
		t.Errorf("current = %q", m.current)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Schemes.Current != "Dusk" {
		t.Errorf("persisted current = %q", cfg.Schemes.Current)
	}
}

func TestDuplicateFlowCreatesEditableCopy(t *testing.T) {
	m := newTestModel(t)
	m.selectByName("Dusk")

	m, cmd := update(t, m, press("c"))
	if m.mode != modeInput {
		t.Fatal("duplicate must open the input modal")
	}
	if got := m.input.Value(); got != scheme.EditableCopyPrefix+"Dusk" {
		t.Errorf("prefilled name = %q", got)
	}
	_ = cmd

	m, cmd = update(t, m, press("enter"))
	m = drain(t, m, cmd)

	copyScheme := registry.Get(scheme.EditableCopyPrefix + "Dusk")
	if copyScheme == nil {
		t.Fatal("copy not registered")
	}
	if !copyScheme.CanBeDeleted() {
		t.Error("copy must be deletable")
	}
	if copyScheme.ParentScheme() != scheme.Parent(registry.Get("Dusk")) {
		t.Error("copy of a bundled scheme must be parented to it")
	}
	if copyScheme.MetaInfo(scheme.MetaOriginal) != "Dusk" {
		t.Errorf("originalScheme = %q", copyScheme.MetaInfo(scheme.MetaOriginal))
	}
	if _, err := m.store.Load(store.FileName(copyScheme.Name())); err != nil {
		t.Errorf("copy not saved to disk: %v", err)
	}
}

func TestRenameRefusedForBundled(t *testing.T) {
	m := newTestModel(t)
	m.selectByName("Dusk")

	m, _ = update(t, m, press("r"))
	if m.mode == modeInput {
		t.Error("bundled schemes must not be renameable")
	}
	if m.status == "" {
		t.Error("expected a status explaining the refusal")
	}
}

func TestDeleteRefusedForBundled(t *testing.T) {
	m := newTestModel(t)
	m.selectByName("Default")

	m, _ = update(t, m, press("x"))
	if registry.Get("Default") == nil {
		t.Fatal("bundled scheme deleted")
	}
	if m.status == "" {
		t.Error("expected a refusal status")
	}
}

func TestDeleteRemovesUserScheme(t *testing.T) {
	m := newTestModel(t)
	user := scheme.New("Mine")
	registry.Register(user)
	if err := m.store.Save(user); err != nil {
		t.Fatal(err)
	}
	m.rebuildEntries()
	m.selectByName("Mine")

	m, _ = update(t, m, press("x"))
	if registry.Get("Mine") != nil {
		t.Error("user scheme still registered")
	}
}

func TestSwitcherFilters(t *testing.T) {
	m := newTestModel(t)
	registry.Register(scheme.New("Solarized Dark"))
	m.rebuildEntries()

	m, _ = update(t, m, press("/"))
	if m.mode != modeSwitcher {
		t.Fatal("switcher not open")
	}
	for _, r := range "sola" {
		m, _ = update(t, m, press(string(r)))
	}
	if len(m.filtered) != 1 || m.filtered[0].Name != "Solarized Dark" {
		t.Fatalf("filtered = %+v", m.filtered)
	}

	m, cmd := update(t, m, press("enter"))
	m = drain(t, m, cmd)
	if m.mode != modeNormal || m.current != "Solarized Dark" {
		t.Errorf("mode=%v current=%q", m.mode, m.current)
	}
}

func TestSwitcherEscClearsFilterThenCloses(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, press("/"))
	m, _ = update(t, m, press("z"))
	m, _ = update(t, m, press("esc"))
	if m.mode != modeSwitcher || m.filter.Value() != "" {
		t.Error("first esc must clear the filter, not close")
	}
	m, _ = update(t, m, press("esc"))
	if m.mode != modeNormal {
		t.Error("second esc must close the switcher")
	}
}

func TestReloadDropsSchemesWithoutFiles(t *testing.T) {
	m := newTestModel(t)
	ghost := scheme.New("Ghost")
	registry.Register(ghost)
	m.rebuildEntries()

	m.reload()
	if registry.Get("Ghost") != nil {
		t.Error("scheme without a file must be dropped on reload")
	}
	if registry.Get("Default") == nil {
		t.Error("bundled schemes must survive reload")
	}
}

func TestViewRendersWithoutPanic(t *testing.T) {
	m := newTestModel(t)
	if out := m.View(); out == "" {
		t.Error("empty view")
	}
	m.mode = modeHelp
	if out := m.View(); out == "" {
		t.Error("empty help view")
	}
}
