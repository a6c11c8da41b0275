// Package app is the bubbletea program: a scheme list beside a live
// preview, with a filter modal, duplicate/rename flows, clipboard export,
// and a markdown help overlay.
package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/schemer/internal/config"
	"github.com/wilbur182/schemer/internal/keymap"
	"github.com/wilbur182/schemer/internal/markdown"
	"github.com/wilbur182/schemer/internal/preview"
	"github.com/wilbur182/schemer/internal/registry"
	"github.com/wilbur182/schemer/internal/scheme"
	"github.com/wilbur182/schemer/internal/store"
	"github.com/wilbur182/schemer/internal/styles"
	"github.com/wilbur182/schemer/internal/ui"
)

// mode is the app's input mode.
type mode int

const (
	modeNormal mode = iota
	modeSwitcher
	modeInput
	modeHelp
)

// inputPurpose says what the text input commits to.
type inputPurpose int

const (
	purposeDuplicate inputPurpose = iota
	purposeRename
)

// entry is one row of the scheme list.
type entry struct {
	Name     string
	Bundled  bool
	Modified bool // editable copy differing from its bundled original
}

// Model is the top-level bubbletea model.
type Model struct {
	cfg   *config.Config
	store *store.Store
	keys  *keymap.Registry

	width  int
	height int

	entries    []entry
	selected   int
	scroll     int
	current    string // active scheme name
	activePane int    // 0 list, 1 preview

	renderer *preview.Renderer
	help     *markdown.Renderer

	mode         mode
	inputPurpose inputPurpose
	input        ui.HistoryInput
	nameHistory  []string

	filter      textinput.Model
	filtered    []entry
	switcherIdx int

	watcher *store.Watcher
	cancel  context.CancelFunc

	status string
	err    error
}

// New builds the model over an opened store and loaded config. User schemes
// are expected to be registered already.
func New(cfg *config.Config, st *store.Store) *Model {
	keys := keymap.NewRegistry()
	keys.ApplyOverrides(cfg.Keymap.Overrides)

	filter := textinput.New()
	filter.Placeholder = "filter schemes"
	filter.Prompt = "/ "

	m := &Model{
		cfg:     cfg,
		store:   st,
		keys:    keys,
		current: cfg.Schemes.Current,
		filter:  filter,
		help:    markdown.NewRenderer(styles.MarkdownTheme()),
	}
	m.rebuildEntries()
	m.selectByName(m.current)
	m.applyScheme(m.currentScheme())
	return m
}

// Init starts the watcher when auto reload is on.
func (m *Model) Init() tea.Cmd {
	if !m.cfg.Schemes.AutoReload {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	w, err := m.store.Watch(ctx)
	if err != nil {
		m.status = fmt.Sprintf("watch: %v", err)
		return nil
	}
	m.watcher = w
	return m.waitForFileEvent()
}

// fileChangedMsg signals the store directory changed on disk.
type fileChangedMsg struct{}

// statusMsg replaces the footer status line.
type statusMsg string

func (m *Model) waitForFileEvent() tea.Cmd {
	w := m.watcher
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// rebuildEntries recomputes the list rows from the registry.
func (m *Model) rebuildEntries() {
	names := registry.Names()
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		s := registry.Get(name)
		if s == nil || s.Name() == scheme.EmptyName {
			continue
		}
		e := entry{Name: name, Bundled: !s.CanBeDeleted()}
		if !e.Bundled {
			if parent, ok := s.ParentScheme().(*scheme.Scheme); ok && parent != nil && !parent.CanBeDeleted() {
				e.Modified = !s.IsEqualToBundled(parent)
			}
		}
		entries = append(entries, e)
	}
	// Bundled schemes first, then user schemes, each group sorted.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Bundled != entries[j].Bundled {
			return entries[i].Bundled
		}
		return entries[i].Name < entries[j].Name
	})
	m.entries = entries
	if m.selected >= len(entries) {
		m.selected = len(entries) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) selectByName(name string) {
	for i, e := range m.entries {
		if e.Name == name {
			m.selected = i
			return
		}
	}
}

// selectedScheme returns the scheme under the cursor, or nil.
func (m *Model) selectedScheme() *scheme.Scheme {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return nil
	}
	return registry.Get(m.entries[m.selected].Name)
}

// currentScheme returns the active scheme, falling back to the first entry.
func (m *Model) currentScheme() *scheme.Scheme {
	if s := registry.Get(m.current); s != nil {
		return s
	}
	if len(m.entries) > 0 {
		return registry.Get(m.entries[0].Name)
	}
	return scheme.Empty()
}

// applyScheme points the preview and chrome palette at a scheme.
func (m *Model) applyScheme(s *scheme.Scheme) {
	if s == nil {
		return
	}
	dark := styles.IsDarkColor(s.DefaultBackground().Hex())
	styles.SetDark(dark)
	m.help.SetStyle(styles.MarkdownTheme())
	if m.renderer == nil {
		m.renderer = preview.New(m.cfg.UI.PreviewLanguage, s)
	} else {
		m.renderer.SetScheme(s)
	}
}

// displayName strips the editable-copy prefix for the list.
func displayName(name string) string {
	return scheme.DisplayName(name)
}

// Close stops the watcher.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
