// Package styles holds the chrome colors of the TUI itself: list, borders,
// footer, modals. These are distinct from the color schemes being edited;
// the palette only flips between a dark and a light variant to stay legible
// over whichever scheme background the preview shows.
package styles

import (
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette holds the chrome colors.
type Palette struct {
	Primary string
	Accent  string
	Error   string

	TextPrimary   string
	TextSecondary string
	TextMuted     string

	BgPrimary   string
	BgSecondary string

	BorderNormal string
	BorderActive string
}

// Dark is the default palette.
var Dark = Palette{
	Primary:       "#7C3AED",
	Accent:        "#F59E0B",
	Error:         "#EF4444",
	TextPrimary:   "#F9FAFB",
	TextSecondary: "#9CA3AF",
	TextMuted:     "#6B7280",
	BgPrimary:     "#111827",
	BgSecondary:   "#1F2937",
	BorderNormal:  "#374151",
	BorderActive:  "#7C3AED",
}

// Light keeps the chrome readable over bright scheme backgrounds.
var Light = Palette{
	Primary:       "#6D28D9",
	Accent:        "#B45309",
	Error:         "#B91C1C",
	TextPrimary:   "#111827",
	TextSecondary: "#4B5563",
	TextMuted:     "#9CA3AF",
	BgPrimary:     "#F9FAFB",
	BgSecondary:   "#E5E7EB",
	BorderNormal:  "#D1D5DB",
	BorderActive:  "#6D28D9",
}

var (
	currentMu sync.RWMutex
	current   = Dark
)

// Current returns the active palette.
func Current() Palette {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetDark switches between the dark and light palettes.
func SetDark(dark bool) {
	currentMu.Lock()
	defer currentMu.Unlock()
	if dark {
		current = Dark
	} else {
		current = Light
	}
}

// MarkdownTheme returns the glamour style matching the active palette.
func MarkdownTheme() string {
	if Current() == Dark {
		return "dark"
	}
	return "light"
}

// IsDarkColor reports whether a 6-digit hex color (no #) reads as dark.
// Used to pick the palette from a scheme's default background.
func IsDarkColor(hex string) bool {
	if len(hex) != 6 {
		return true
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return true
	}
	// Rec. 601 luma.
	luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return luma < 128
}

// Title styles the pane headers.
func Title() lipgloss.Style {
	p := Current()
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary))
}

// Footer styles the key hint bar.
func Footer() lipgloss.Style {
	p := Current()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextMuted))
}

// ListItem styles one scheme list row.
func ListItem(selected bool) lipgloss.Style {
	p := Current()
	if selected {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.TextPrimary)).
			Background(lipgloss.Color(p.BgSecondary))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextSecondary))
}

// Modified styles the "(modified)" marker on edited copies.
func Modified() lipgloss.Style {
	p := Current()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent))
}

// PaneBorder styles a pane frame; the active pane gets the accent border.
func PaneBorder(active bool) lipgloss.Style {
	p := Current()
	color := p.BorderNormal
	if active {
		color = p.BorderActive
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color))
}

// ModalBorder styles overlay modals.
func ModalBorder() lipgloss.Style {
	p := Current()
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.BorderActive)).
		Padding(0, 1)
}

// ErrorText styles inline error messages.
func ErrorText() lipgloss.Style {
	p := Current()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error))
}

// Swatch renders a two-cell color block for a scheme list entry.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color("#" + hex)).Render("  ")
}
