package app

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/schemer/internal/config"
	"github.com/wilbur182/schemer/internal/keymap"
	"github.com/wilbur182/schemer/internal/registry"
	"github.com/wilbur182/schemer/internal/scheme"
	"github.com/wilbur182/schemer/internal/ui"
)

// Update routes messages by input mode.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case fileChangedMsg:
		m.reload()
		return m, m.waitForFileEvent()

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSwitcher:
			return m.updateSwitcher(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch m.keys.Lookup(msg, "list") {
	case keymap.ActionQuit:
		m.Close()
		return m, tea.Quit

	case keymap.ActionSwitchPane:
		m.activePane ^= 1

	case keymap.ActionUp:
		m.selected = clampIndex(m.selected-1, len(m.entries))
		m.applyScheme(m.selectedScheme())

	case keymap.ActionDown:
		m.selected = clampIndex(m.selected+1, len(m.entries))
		m.applyScheme(m.selectedScheme())

	case keymap.ActionSelect:
		return m, m.applySelected()

	case keymap.ActionSwitcher:
		m.openSwitcher()
		return m, m.filter.Focus()

	case keymap.ActionDuplicate:
		return m, m.openInput(purposeDuplicate)

	case keymap.ActionRename:
		return m, m.openInput(purposeRename)

	case keymap.ActionDelete:
		m.deleteSelected()

	case keymap.ActionExport:
		return m, m.exportSelected()

	case keymap.ActionHelp:
		m.mode = modeHelp

	case keymap.ActionReload:
		m.reload()
	}
	return m, nil
}

// applySelected makes the scheme under the cursor the active one and
// persists the choice.
func (m *Model) applySelected() tea.Cmd {
	s := m.selectedScheme()
	if s == nil {
		return nil
	}
	m.current = s.Name()
	m.applyScheme(s)
	return func() tea.Msg {
		if err := config.SaveCurrentScheme(s.Name()); err != nil {
			return statusMsg(fmt.Sprintf("save config: %v", err))
		}
		return statusMsg(fmt.Sprintf("using %s", displayName(s.Name())))
	}
}

// openInput starts the duplicate or rename flow.
func (m *Model) openInput(purpose inputPurpose) tea.Cmd {
	s := m.selectedScheme()
	if s == nil {
		return nil
	}
	if purpose == purposeRename && !s.CanBeDeleted() {
		m.status = "bundled schemes cannot be renamed"
		return nil
	}

	m.inputPurpose = purpose
	m.input = ui.NewHistoryInput("scheme name", m.nameHistory)
	switch purpose {
	case purposeDuplicate:
		m.input.SetValue(scheme.EditableCopyPrefix + displayName(s.Name()))
	case purposeRename:
		m.input.SetValue(s.Name())
	}
	m.mode = modeInput
	return m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		return m, nil
	case "enter":
		name := m.input.Commit()
		m.nameHistory = m.input.History()
		m.mode = modeNormal
		if name == "" {
			return m, nil
		}
		switch m.inputPurpose {
		case purposeDuplicate:
			return m, m.duplicateSelected(name)
		case purposeRename:
			return m, m.renameSelected(name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// duplicateSelected clones the scheme under the cursor into a user scheme.
func (m *Model) duplicateSelected(name string) tea.Cmd {
	src := m.selectedScheme()
	if src == nil {
		return nil
	}
	if registry.Get(name) != nil {
		m.status = fmt.Sprintf("%s already exists", name)
		return nil
	}

	clone := src.Clone()
	clone.SetName(name)
	clone.SetCanBeDeleted(true)
	if !src.CanBeDeleted() {
		// Copies of bundled schemes stay parented to their original so they
		// only store what they change.
		clone.SetParentScheme(src)
	}
	clone.SetDefaultMetaInfo(src)
	registry.Register(clone)
	m.rebuildEntries()
	m.selectByName(name)

	st := m.store
	return func() tea.Msg {
		if err := st.Save(clone); err != nil {
			return statusMsg(err.Error())
		}
		return statusMsg(fmt.Sprintf("created %s", displayName(name)))
	}
}

// renameSelected renames the user scheme under the cursor.
func (m *Model) renameSelected(name string) tea.Cmd {
	s := m.selectedScheme()
	if s == nil || s.Name() == name {
		return nil
	}
	if registry.Get(name) != nil {
		m.status = fmt.Sprintf("%s already exists", name)
		return nil
	}

	oldName := s.Name()
	if err := registry.Remove(oldName); err != nil {
		m.status = err.Error()
		return nil
	}
	s.SetName(name)
	registry.Register(s)
	if m.current == oldName {
		m.current = name
	}
	m.rebuildEntries()
	m.selectByName(name)

	st := m.store
	return func() tea.Msg {
		if err := st.Delete(oldName); err != nil {
			return statusMsg(err.Error())
		}
		if err := st.Save(s); err != nil {
			return statusMsg(err.Error())
		}
		return statusMsg(fmt.Sprintf("renamed to %s", displayName(name)))
	}
}

// deleteSelected removes the user scheme under the cursor.
func (m *Model) deleteSelected() {
	s := m.selectedScheme()
	if s == nil {
		return
	}
	if err := registry.Remove(s.Name()); err != nil {
		m.status = "bundled schemes cannot be deleted"
		return
	}
	if err := m.store.Delete(s.Name()); err != nil {
		m.status = err.Error()
	}
	if m.current == s.Name() {
		m.current = m.cfg.Schemes.Current
	}
	m.rebuildEntries()
	m.applyScheme(m.selectedScheme())
}

// exportSelected copies the scheme's serialized document to the clipboard.
func (m *Model) exportSelected() tea.Cmd {
	s := m.selectedScheme()
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		root := scheme.NewElement("scheme")
		if err := s.WriteExternal(root); err != nil {
			return statusMsg(err.Error())
		}
		data, err := root.Serialize()
		if err != nil {
			return statusMsg(err.Error())
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			return statusMsg(fmt.Sprintf("clipboard: %v", err))
		}
		return statusMsg(fmt.Sprintf("copied %s to clipboard", displayName(s.Name())))
	}
}

// reload re-reads user schemes from disk, replacing registry entries.
func (m *Model) reload() {
	schemes, err := m.store.LoadAll()
	if err != nil {
		m.status = err.Error()
		return
	}
	// Drop user schemes that no longer have files.
	onDisk := make(map[string]bool, len(schemes))
	for _, s := range schemes {
		onDisk[s.Name()] = true
	}
	for _, name := range registry.Names() {
		s := registry.Get(name)
		if s != nil && s.CanBeDeleted() && !onDisk[name] {
			_ = registry.Remove(name)
		}
	}
	for _, s := range schemes {
		registry.Register(s)
	}
	m.rebuildEntries()
	m.applyScheme(m.currentScheme())
	m.status = fmt.Sprintf("loaded %d user schemes", len(schemes))
}

// openSwitcher resets and enters the filter modal.
func (m *Model) openSwitcher() {
	m.filter.SetValue("")
	m.filtered = m.entries
	m.switcherIdx = 0
	m.mode = modeSwitcher
}

func (m *Model) updateSwitcher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.refilter()
			return m, nil
		}
		m.mode = modeNormal
		return m, nil

	case "up", "ctrl+p":
		m.switcherIdx = clampIndex(m.switcherIdx-1, len(m.filtered))
		return m, nil

	case "down", "ctrl+n":
		m.switcherIdx = clampIndex(m.switcherIdx+1, len(m.filtered))
		return m, nil

	case "enter":
		if m.switcherIdx >= 0 && m.switcherIdx < len(m.filtered) {
			m.selectByName(m.filtered[m.switcherIdx].Name)
			m.mode = modeNormal
			return m, m.applySelected()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

// refilter recomputes the switcher rows from the filter query.
func (m *Model) refilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.filtered = m.entries
	} else {
		var matches []entry
		for _, e := range m.entries {
			if containsFold(displayName(e.Name), query) {
				matches = append(matches, e)
			}
		}
		m.filtered = matches
	}
	m.switcherIdx = clampIndex(m.switcherIdx, len(m.filtered))
	if len(m.filtered) == 0 {
		m.switcherIdx = 0
	}
}
