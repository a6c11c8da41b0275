package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/schemer/internal/styles"
)

// RenderDivider renders a vertical divider separating the list and preview
// panes. The divider is shifted down by 1 line to align with bordered pane
// content and renders height-2 lines to stop above the bottom border.
func RenderDivider(height int) string {
	dividerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(styles.Current().BorderNormal)).
		MarginTop(1)

	var sb strings.Builder
	for i := 0; i < height-2; i++ {
		sb.WriteString("│")
		if i < height-3 {
			sb.WriteString("\n")
		}
	}

	return dividerStyle.Render(sb.String())
}
