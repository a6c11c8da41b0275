// Package presentation labels scheme list entries. A template pairs a type
// name with an icon and optional provider functions that derive the display
// name or icon per scheme. Providers are looked up in an explicit registered
// table by ID; an unknown ID simply yields no provider, so templates from
// stale configs degrade to their static icon and the raw scheme name.
package presentation

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// NameProvider derives a display name from a scheme name.
type NameProvider func(schemeName string) string

// IconProvider derives an icon for a scheme name. The bool reports whether
// the provider has an opinion; false falls back to the template's static icon.
type IconProvider func(schemeName string) (rune, bool)

var (
	providersMu   sync.RWMutex
	nameProviders = map[string]NameProvider{}
	iconProviders = map[string]IconProvider{}
)

// RegisterNameProvider adds a name provider under the given ID, replacing
// any previous registration.
func RegisterNameProvider(id string, p NameProvider) {
	providersMu.Lock()
	defer providersMu.Unlock()
	nameProviders[id] = p
}

// RegisterIconProvider adds an icon provider under the given ID.
func RegisterIconProvider(id string, p IconProvider) {
	providersMu.Lock()
	defer providersMu.Unlock()
	iconProviders[id] = p
}

// NameProviderFor returns the registered provider, or nil when the ID is
// unknown or empty.
func NameProviderFor(id string) NameProvider {
	providersMu.RLock()
	defer providersMu.RUnlock()
	return nameProviders[id]
}

// IconProviderFor returns the registered provider, or nil.
func IconProviderFor(id string) IconProvider {
	providersMu.RLock()
	defer providersMu.RUnlock()
	return iconProviders[id]
}

// Template describes how one category of schemes appears in the list.
type Template struct {
	TypeName  string
	Icon      rune
	IconStyle lipgloss.Style

	// Provider IDs resolved against the registered tables. Empty means the
	// template has no dynamic behavior.
	NameProviderID string
	IconProviderID string
}

// DisplayName returns the label for a scheme, passing it through the name
// provider when one is registered.
func (t Template) DisplayName(schemeName string) string {
	if p := NameProviderFor(t.NameProviderID); p != nil {
		return p(schemeName)
	}
	return schemeName
}

// IconFor returns the icon for a scheme: the provider's choice when one is
// registered and has an opinion, the static icon otherwise.
func (t Template) IconFor(schemeName string) rune {
	if p := IconProviderFor(t.IconProviderID); p != nil {
		if r, ok := p(schemeName); ok {
			return r
		}
	}
	return t.Icon
}
