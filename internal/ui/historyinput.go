package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/wilbur182/schemer/internal/styles"
)

// MaxHistoryEntries bounds the recent-entries list of a HistoryInput.
const MaxHistoryEntries = 10

// HistoryInput is a text input with a dropdown of recent entries, most
// recent first. Arrow-up walks into the history, arrow-down walks back
// toward the draft the user was typing; any edit returns to the draft.
type HistoryInput struct {
	input   textinput.Model
	history []string // most recent first
	draft   string   // text typed before history navigation began
	index   int      // -1 = editing the draft, otherwise history[index] shown
}

// NewHistoryInput builds an input seeded with previous entries.
func NewHistoryInput(placeholder string, history []string) HistoryInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if len(history) > MaxHistoryEntries {
		history = history[:MaxHistoryEntries]
	}
	return HistoryInput{
		input:   ti,
		history: append([]string(nil), history...),
		index:   -1,
	}
}

// Focus gives the input keyboard focus.
func (h *HistoryInput) Focus() tea.Cmd { return h.input.Focus() }

// Blur removes keyboard focus.
func (h *HistoryInput) Blur() { h.input.Blur() }

// Value returns the current text.
func (h HistoryInput) Value() string { return h.input.Value() }

// SetValue replaces the current text and resets history navigation.
func (h *HistoryInput) SetValue(v string) {
	h.input.SetValue(v)
	h.input.CursorEnd()
	h.index = -1
}

// History returns the recent entries, most recent first.
func (h HistoryInput) History() []string {
	return append([]string(nil), h.history...)
}

// Commit records the current value as the most recent entry, deduplicating
// and trimming to MaxHistoryEntries, and returns the value.
func (h *HistoryInput) Commit() string {
	value := strings.TrimSpace(h.input.Value())
	if value == "" {
		return ""
	}
	entries := make([]string, 0, len(h.history)+1)
	entries = append(entries, value)
	for _, e := range h.history {
		if e != value {
			entries = append(entries, e)
		}
	}
	if len(entries) > MaxHistoryEntries {
		entries = entries[:MaxHistoryEntries]
	}
	h.history = entries
	h.index = -1
	return value
}

// Update handles navigation and editing keys.
func (h HistoryInput) Update(msg tea.Msg) (HistoryInput, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			if h.index+1 < len(h.history) {
				if h.index == -1 {
					h.draft = h.input.Value()
				}
				h.index++
				h.input.SetValue(h.history[h.index])
				h.input.CursorEnd()
			}
			return h, nil
		case "down":
			switch {
			case h.index > 0:
				h.index--
				h.input.SetValue(h.history[h.index])
				h.input.CursorEnd()
			case h.index == 0:
				h.index = -1
				h.input.SetValue(h.draft)
				h.input.CursorEnd()
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		h.index = -1 // any edit leaves history navigation
	}
	return h, cmd
}

// View renders the input and, when history exists, the dropdown below it.
func (h HistoryInput) View(width int) string {
	var sb strings.Builder
	sb.WriteString(h.input.View())

	for i, entry := range h.history {
		sb.WriteByte('\n')
		label := runewidth.Truncate(entry, max(width-4, 4), "…")
		sb.WriteString(styles.ListItem(i == h.index).Render("  " + label))
	}
	return sb.String()
}
