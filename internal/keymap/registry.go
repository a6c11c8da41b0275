// Package keymap maps keys to app actions, with user overrides from config.
package keymap

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Action identifies something the app can do.
type Action string

const (
	ActionNone       Action = ""
	ActionQuit       Action = "quit"
	ActionSwitchPane Action = "switch-pane"
	ActionUp         Action = "up"
	ActionDown       Action = "down"
	ActionSelect     Action = "select"
	ActionSwitcher   Action = "switcher"
	ActionDuplicate  Action = "duplicate"
	ActionRename     Action = "rename"
	ActionDelete     Action = "delete"
	ActionExport     Action = "export"
	ActionHelp       Action = "help"
	ActionReload     Action = "reload"
)

// Binding maps a key to an action within a context.
type Binding struct {
	Key     string // e.g. "tab", "ctrl+s"
	Action  Action
	Context string // "global" or "list"
	Help    string // short label for the footer
}

// Registry manages key bindings and lookup.
type Registry struct {
	mu        sync.RWMutex
	bindings  map[string][]Binding // context -> bindings
	overrides map[string]Action    // key -> action, from config
}

// NewRegistry creates a registry seeded with the default bindings.
func NewRegistry() *Registry {
	r := &Registry{
		bindings:  make(map[string][]Binding),
		overrides: make(map[string]Action),
	}
	for _, b := range defaultBindings {
		r.bindings[b.Context] = append(r.bindings[b.Context], b)
	}
	return r
}

var defaultBindings = []Binding{
	{Key: "q", Action: ActionQuit, Context: "global", Help: "quit"},
	{Key: "ctrl+c", Action: ActionQuit, Context: "global"},
	{Key: "tab", Action: ActionSwitchPane, Context: "global", Help: "pane"},
	{Key: "?", Action: ActionHelp, Context: "global", Help: "help"},
	{Key: "R", Action: ActionReload, Context: "global", Help: "reload"},

	{Key: "up", Action: ActionUp, Context: "list"},
	{Key: "k", Action: ActionUp, Context: "list"},
	{Key: "down", Action: ActionDown, Context: "list"},
	{Key: "j", Action: ActionDown, Context: "list"},
	{Key: "enter", Action: ActionSelect, Context: "list", Help: "apply"},
	{Key: "/", Action: ActionSwitcher, Context: "list", Help: "filter"},
	{Key: "c", Action: ActionDuplicate, Context: "list", Help: "copy"},
	{Key: "r", Action: ActionRename, Context: "list", Help: "rename"},
	{Key: "x", Action: ActionDelete, Context: "list", Help: "delete"},
	{Key: "e", Action: ActionExport, Context: "list", Help: "export"},
}

// ApplyOverrides installs user overrides from config. Entries map an action
// name to a key, e.g. {"quit": "ctrl+q"}. Unknown action names are ignored.
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	known := map[Action]bool{
		ActionQuit: true, ActionSwitchPane: true, ActionUp: true,
		ActionDown: true, ActionSelect: true, ActionSwitcher: true,
		ActionDuplicate: true, ActionRename: true, ActionDelete: true,
		ActionExport: true, ActionHelp: true, ActionReload: true,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, key := range overrides {
		if known[Action(name)] && key != "" {
			r.overrides[key] = Action(name)
		}
	}
}

// Lookup resolves a key press to an action: user overrides first, then the
// active context, then global bindings. ActionNone when nothing matches.
func (r *Registry) Lookup(key tea.KeyMsg, activeContext string) Action {
	keyStr := keyToString(key)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if action, ok := r.overrides[keyStr]; ok {
		return action
	}
	if activeContext != "" && activeContext != "global" {
		if action := findInContext(r.bindings[activeContext], keyStr); action != ActionNone {
			return action
		}
	}
	return findInContext(r.bindings["global"], keyStr)
}

func findInContext(bindings []Binding, key string) Action {
	for _, b := range bindings {
		if b.Key == key {
			return b.Action
		}
	}
	return ActionNone
}

// HelpBindings returns the bindings with help labels for the footer, active
// context first.
func (r *Registry) HelpBindings(activeContext string) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Binding
	if activeContext != "" && activeContext != "global" {
		for _, b := range r.bindings[activeContext] {
			if b.Help != "" {
				out = append(out, b)
			}
		}
	}
	for _, b := range r.bindings["global"] {
		if b.Help != "" {
			out = append(out, b)
		}
	}
	return out
}

// keyToString converts a key press to the binding notation.
func keyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeySpace:
		return "space"
	case tea.KeyRunes:
		if key.Alt {
			return "alt+" + string(key.Runes)
		}
		return string(key.Runes)
	default:
		return key.String()
	}
}
