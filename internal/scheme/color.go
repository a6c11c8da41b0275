package scheme

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB value. Scheme documents carry no alpha; any alpha
// component in an input value is stripped on parse.
type Color struct {
	R, G, B uint8
}

// Common colors referenced by the stripe migration table and the deprecated
// background fold.
var (
	Black  = Color{0x00, 0x00, 0x00}
	White  = Color{0xff, 0xff, 0xff}
	Red    = Color{0xff, 0x00, 0x00}
	Yellow = Color{0xff, 0xff, 0x00}
	Blue   = Color{0x00, 0x00, 0xff}
)

// ParseColor parses a hex RGB value as it appears in scheme documents:
// "rrggbb", optionally with a leading '#', optionally with a trailing alpha
// byte which is discarded. An empty string is not a color; callers handle
// that case as "explicitly unset".
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("scheme: invalid color value %q", s)
	}
	v, err := strconv.ParseUint(s[:6], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("scheme: invalid color value %q: %w", s, err)
	}
	return Color{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// MustColor is ParseColor for trusted literals (bundled tables).
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the wire form: lowercase hex without padding beyond 6 digits
// and without a '#' prefix.
func (c Color) Hex() string {
	return fmt.Sprintf("%06x", uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
}

// Term returns the color in "#rrggbb" form for terminal styling.
func (c Color) Term() string {
	return "#" + c.Hex()
}

// colorsEqual compares two optional colors; nil means explicitly unset.
func colorsEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// cloneColor returns an owned copy of an optional color.
func cloneColor(c *Color) *Color {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
