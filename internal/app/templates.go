package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/schemer/internal/presentation"
	"github.com/wilbur182/schemer/internal/scheme"
	"github.com/wilbur182/schemer/internal/styles"
)

// Provider IDs the list templates resolve their dynamic behavior under.
const (
	copyNameProviderID = "scheme.copyDisplayName"
	copyIconProviderID = "scheme.copyIcon"
)

func init() {
	presentation.RegisterNameProvider(copyNameProviderID, scheme.DisplayName)
	presentation.RegisterIconProvider(copyIconProviderID, func(name string) (rune, bool) {
		if strings.HasPrefix(name, scheme.EditableCopyPrefix) {
			return '◈', true
		}
		return 0, false
	})
}

// templateFor returns the presentation template for a list entry. Bundled
// schemes show a solid marker and their raw name; user schemes strip the
// editable-copy prefix and mark copies of bundled schemes.
func templateFor(e entry) presentation.Template {
	iconStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(styles.Current().TextSecondary))
	if e.Bundled {
		return presentation.Template{
			TypeName:  "bundled",
			Icon:      '◆',
			IconStyle: iconStyle,
		}
	}
	return presentation.Template{
		TypeName:       "user",
		Icon:           '◇',
		IconStyle:      iconStyle,
		NameProviderID: copyNameProviderID,
		IconProviderID: copyIconProviderID,
	}
}
