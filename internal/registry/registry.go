// Package registry holds the process-wide set of named color schemes:
// bundled defaults plus whatever user schemes the store loaded.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/wilbur182/schemer/internal/scheme"
)

// ErrReadOnly is returned when a caller tries to remove a scheme that is
// not deletable (bundled defaults, the empty scheme).
var ErrReadOnly = fmt.Errorf("registry: scheme is read-only")

// registryMu protects schemes and defaults across the watcher goroutine and
// the UI loop.
var (
	registryMu sync.RWMutex
	schemes    = map[string]*scheme.Scheme{}
	defaults   = map[string]*scheme.Scheme{}
)

// RegisterDefault adds a bundled default scheme. Defaults resolve parent
// references during reads and can never be deleted.
func RegisterDefault(s *scheme.Scheme) {
	s.SetCanBeDeleted(false)
	registryMu.Lock()
	defer registryMu.Unlock()
	defaults[s.Name()] = s
	schemes[s.Name()] = s
}

// Register adds or replaces a user scheme.
func Register(s *scheme.Scheme) {
	registryMu.Lock()
	defer registryMu.Unlock()
	schemes[s.Name()] = s
}

// Remove drops a user scheme by name.
func Remove(name string) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	s, ok := schemes[name]
	if !ok {
		return nil
	}
	if !s.CanBeDeleted() {
		return ErrReadOnly
	}
	delete(schemes, name)
	return nil
}

// Get returns a scheme by name, or nil.
func Get(name string) *scheme.Scheme {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return schemes[name]
}

// Names returns all registered scheme names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered schemes.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(schemes)
}

// ResolveDefault maps a parent name from a document to a bundled default
// scheme, falling back to the empty scheme when the name is unknown. This
// is the scheme.ParentResolver used for every document read.
func ResolveDefault(name string) scheme.Parent {
	registryMu.RLock()
	s, ok := defaults[name]
	registryMu.RUnlock()
	if !ok {
		return scheme.Empty()
	}
	return s
}

// DefaultNames returns the bundled default scheme names, sorted.
func DefaultNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(defaults))
	for n := range defaults {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Reset clears the registry. Test helper.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	schemes = map[string]*scheme.Scheme{}
	defaults = map[string]*scheme.Scheme{}
}
