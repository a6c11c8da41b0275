package app

import (
	_ "embed"

	"github.com/wilbur182/schemer/internal/registry"
	"github.com/wilbur182/schemer/internal/scheme"
)

//go:embed help.md
var helpText string

// registryScheme is a view-side shorthand.
func registryScheme(name string) *scheme.Scheme {
	return registry.Get(name)
}
