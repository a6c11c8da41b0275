// Package bundled embeds the color schemes that ship with the binary and
// parses them at startup. Bundled schemes are read-only and serve as parents
// for user schemes loaded from disk.
package bundled

import (
	"embed"
	"fmt"
	"sort"

	"github.com/wilbur182/schemer/internal/registry"
	"github.com/wilbur182/schemer/internal/scheme"
)

//go:embed schemes/*.xml
var schemeFiles embed.FS

// SchemeIndex is a sorted list of all bundled scheme names.
var SchemeIndex []string

// SchemeMap provides O(1) lookup by name.
var SchemeMap map[string]*scheme.Scheme

func init() {
	entries, err := schemeFiles.ReadDir("schemes")
	if err != nil {
		panic(fmt.Sprintf("bundled: failed to read embedded schemes: %v", err))
	}

	roots := make(map[string]*scheme.Element, len(entries))
	for _, entry := range entries {
		data, err := schemeFiles.ReadFile("schemes/" + entry.Name())
		if err != nil {
			panic(fmt.Sprintf("bundled: failed to read %s: %v", entry.Name(), err))
		}
		root, err := scheme.ParseDocument(data)
		if err != nil {
			panic(fmt.Sprintf("bundled: failed to parse %s: %v", entry.Name(), err))
		}
		roots[entry.Name()] = root
	}

	SchemeMap = make(map[string]*scheme.Scheme, len(roots))
	resolver := func(name string) scheme.Parent {
		if p, ok := SchemeMap[name]; ok {
			return p
		}
		return nil
	}

	// Base schemes first so that parent references in the rest resolve to
	// the parsed schemes instead of the empty fallback.
	parse := func(file string, root *scheme.Element) {
		s := scheme.New("", scheme.WithParentResolver(resolver))
		if err := s.ReadExternal(root); err != nil {
			panic(fmt.Sprintf("bundled: failed to read %s: %v", file, err))
		}
		s.SetCanBeDeleted(false)
		SchemeMap[s.Name()] = s
	}
	for file, root := range roots {
		if root.Attr("default_scheme") == "true" {
			parse(file, root)
		}
	}
	for file, root := range roots {
		if root.Attr("default_scheme") != "true" {
			parse(file, root)
		}
	}

	SchemeIndex = make([]string, 0, len(SchemeMap))
	for name := range SchemeMap {
		SchemeIndex = append(SchemeIndex, name)
	}
	sort.Strings(SchemeIndex)
}

// ListSchemes returns a sorted list of all bundled scheme names.
func ListSchemes() []string {
	return SchemeIndex
}

// GetScheme returns a bundled scheme by name, or nil if not found.
func GetScheme(name string) *scheme.Scheme {
	return SchemeMap[name]
}

// SchemeCount returns the number of bundled schemes.
func SchemeCount() int {
	return len(SchemeIndex)
}

// SeedRegistry registers every bundled scheme as a non-deletable default.
func SeedRegistry() {
	for _, name := range SchemeIndex {
		registry.RegisterDefault(SchemeMap[name])
	}
}
