package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// OverlayModal composites rendered modal content over a background view,
// centered. Both arguments are full frames; the result is exactly
// width x height. ANSI sequences in the background survive on either side
// of the modal.
func OverlayModal(background, modal string, width, height int) string {
	if modal == "" {
		return background
	}

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	modalLines := strings.Split(modal, "\n")
	modalWidth := 0
	for _, line := range modalLines {
		if w := ansi.StringWidth(line); w > modalWidth {
			modalWidth = w
		}
	}

	x := (width - modalWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(modalLines)) / 2
	if y < 0 {
		y = 0
	}

	for i, modalLine := range modalLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bg := bgLines[row]

		left := ansi.Truncate(bg, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		if pad := modalWidth - ansi.StringWidth(modalLine); pad > 0 {
			modalLine += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(bg, x+modalWidth, "")

		bgLines[row] = left + modalLine + right
	}

	return strings.Join(bgLines, "\n")
}
