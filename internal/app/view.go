package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/schemer/internal/styles"
	"github.com/wilbur182/schemer/internal/ui"
)

const listPaneWidth = 32

// View renders the two panes, the footer, and whichever overlay is open.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	footerHeight := 0
	if m.cfg.UI.ShowFooter {
		footerHeight = 1
	}
	paneHeight := m.height - footerHeight

	list := m.renderListPane(paneHeight)
	previewPane := m.renderPreviewPane(paneHeight)
	content := lipgloss.JoinHorizontal(lipgloss.Top, list, ui.RenderDivider(paneHeight), previewPane)

	if m.cfg.UI.ShowFooter {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
	}

	switch m.mode {
	case modeSwitcher:
		return ui.OverlayModal(content, m.renderSwitcherModal(), m.width, m.height)
	case modeInput:
		return ui.OverlayModal(content, m.renderInputModal(), m.width, m.height)
	case modeHelp:
		return ui.OverlayModal(content, m.renderHelpModal(), m.width, m.height)
	}
	return content
}

// renderListPane renders the scheme list with swatches and a scrollbar.
func (m *Model) renderListPane(height int) string {
	innerHeight := height - 3 // title + borders
	if innerHeight < 1 {
		innerHeight = 1
	}

	// Keep the cursor visible.
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	if m.selected >= m.scroll+innerHeight {
		m.scroll = m.selected - innerHeight + 1
	}

	var rows []string
	for i := m.scroll; i < len(m.entries) && i < m.scroll+innerHeight; i++ {
		rows = append(rows, m.renderEntry(m.entries[i], i == m.selected))
	}
	for len(rows) < innerHeight {
		rows = append(rows, "")
	}

	bar := ui.RenderScrollbar(ui.ScrollbarParams{
		TotalItems:   len(m.entries),
		ScrollOffset: m.scroll,
		VisibleItems: innerHeight,
		TrackHeight:  innerHeight,
	})

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listPaneWidth-2).Render(strings.Join(rows, "\n")),
		bar,
	)
	title := styles.Title().Render("Schemes")
	return styles.PaneBorder(m.activePane == 0).
		Width(listPaneWidth).
		Height(height - 2).
		Render(title + "\n" + body)
}

// renderEntry renders one list row: cursor, swatch, template icon, name,
// markers.
func (m *Model) renderEntry(e entry, selected bool) string {
	s := registryScheme(e.Name)
	tpl := templateFor(e)
	cursor := "  "
	if selected {
		cursor = styles.Title().Render("> ")
	}

	swatch := "  "
	if s != nil {
		swatch = styles.Swatch(s.DefaultBackground().Hex())
	}

	icon := tpl.IconStyle.Render(string(tpl.IconFor(e.Name)))
	label := tpl.DisplayName(e.Name)
	line := cursor + swatch + " " + icon + " " + styles.ListItem(selected).Render(label)
	if e.Name == m.current {
		line += styles.Title().Render(" ✓")
	}
	if e.Modified {
		line += styles.Modified().Render(" (modified)")
	}
	return line
}

// renderPreviewPane renders the highlighted sample in the selected scheme.
func (m *Model) renderPreviewPane(height int) string {
	width := m.width - listPaneWidth - 1 // divider column
	if width < 10 {
		width = 10
	}
	innerWidth := width - 2

	title := styles.Title().Render("Preview")
	body := ""
	if m.renderer != nil {
		lines := m.renderer.Lines(innerWidth)
		if maxLines := height - 3; len(lines) > maxLines && maxLines > 0 {
			lines = lines[:maxLines]
		}
		body = strings.Join(lines, "\n")
	}
	return styles.PaneBorder(m.activePane == 1).
		Width(width).
		Height(height - 2).
		Render(title + "\n" + body)
}

// renderFooter renders key hints and the status line.
func (m *Model) renderFooter() string {
	if m.status != "" {
		return styles.Footer().Render(" " + m.status)
	}
	var hints []string
	for _, b := range m.keys.HelpBindings("list") {
		hints = append(hints, fmt.Sprintf("%s %s", b.Key, b.Help))
	}
	return styles.Footer().Render(" " + strings.Join(hints, " · "))
}

// renderSwitcherModal renders the filter modal: input, match count, and a
// scrolling window of matches.
func (m *Model) renderSwitcherModal() string {
	modalWidth := 48
	if modalWidth > m.width-4 {
		modalWidth = m.width - 4
	}

	var sb strings.Builder
	sb.WriteString(styles.Title().Render("Switch Scheme"))
	sb.WriteString("\n")
	sb.WriteString(m.filter.View())
	sb.WriteString("\n")

	if m.filter.Value() != "" {
		sb.WriteString(styles.Footer().Render(fmt.Sprintf("%d of %d schemes", len(m.filtered), len(m.entries))))
		sb.WriteString("\n")
	}

	if len(m.filtered) == 0 {
		sb.WriteString(styles.Footer().Render("No matches"))
	} else {
		const maxVisible = 10
		visible := min(maxVisible, len(m.filtered))
		offset := 0
		if m.switcherIdx >= maxVisible {
			offset = m.switcherIdx - maxVisible + 1
		}
		if offset > len(m.filtered)-visible {
			offset = len(m.filtered) - visible
		}

		if offset > 0 {
			sb.WriteString(styles.Footer().Render(fmt.Sprintf("  ↑ %d more above", offset)))
			sb.WriteString("\n")
		}
		for i := offset; i < offset+visible; i++ {
			e := m.filtered[i]
			label := templateFor(e).DisplayName(e.Name)
			if e.Name == m.current {
				label += " (current)"
			}
			sb.WriteString(styles.ListItem(i == m.switcherIdx).Render("  " + label))
			sb.WriteString("\n")
		}
		if remaining := len(m.filtered) - (offset + visible); remaining > 0 {
			sb.WriteString(styles.Footer().Render(fmt.Sprintf("  ↓ %d more below", remaining)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Footer().Render("enter select · ↑/↓ navigate · esc cancel"))
	return styles.ModalBorder().Width(modalWidth).Render(sb.String())
}

// renderInputModal renders the duplicate/rename input with its history
// dropdown.
func (m *Model) renderInputModal() string {
	modalWidth := 44
	if modalWidth > m.width-4 {
		modalWidth = m.width - 4
	}

	title := "Duplicate Scheme"
	if m.inputPurpose == purposeRename {
		title = "Rename Scheme"
	}

	var sb strings.Builder
	sb.WriteString(styles.Title().Render(title))
	sb.WriteString("\n")
	sb.WriteString(m.input.View(modalWidth - 2))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Footer().Render("enter confirm · ↑ history · esc cancel"))
	return styles.ModalBorder().Width(modalWidth).Render(sb.String())
}

// renderHelpModal renders the embedded help markdown.
func (m *Model) renderHelpModal() string {
	modalWidth := 60
	if modalWidth > m.width-4 {
		modalWidth = m.width - 4
	}
	lines := m.help.RenderContent(helpText, modalWidth-2)
	maxLines := m.height - 6
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return styles.ModalBorder().Width(modalWidth).Render(strings.Join(lines, "\n"))
}
