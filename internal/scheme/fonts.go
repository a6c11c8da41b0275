package scheme

// Default editor font when a document declares none.
const (
	DefaultFontFamily = "Monospaced"
	DefaultFontSize   = 13
)

// FontPreferences is an ordered sequence of (family, size) pairs plus a
// ligature flag. The first registered family is the primary one; later
// entries are substitutes tried in order.
type FontPreferences struct {
	families     []string
	sizes        map[string]int
	useLigatures bool
}

// Register records a family with an explicit size, appending the family if
// it is new and updating the size if it is already present.
func (p *FontPreferences) Register(family string, size int) {
	if family == "" || size <= 0 {
		return
	}
	if p.sizes == nil {
		p.sizes = map[string]int{}
	}
	if _, ok := p.sizes[family]; !ok {
		p.families = append(p.families, family)
	}
	p.sizes[family] = size
}

// AddFontFamily records a family without a size of its own; it inherits the
// primary size on lookup.
func (p *FontPreferences) AddFontFamily(family string) {
	if family == "" {
		return
	}
	if p.sizes == nil {
		p.sizes = map[string]int{}
	}
	if _, ok := p.sizes[family]; !ok {
		p.families = append(p.families, family)
		p.sizes[family] = 0
	}
}

// Clear drops all registered families. The ligature flag is preserved, as
// it is a rendering preference rather than a font selection.
func (p *FontPreferences) Clear() {
	p.families = nil
	p.sizes = nil
}

// FontFamily returns the primary family, or the platform default when
// nothing is registered.
func (p *FontPreferences) FontFamily() string {
	if len(p.families) == 0 {
		return DefaultFontFamily
	}
	return p.families[0]
}

// Size returns the size registered for family, falling back to the primary
// family's size and finally the platform default.
func (p *FontPreferences) Size(family string) int {
	if s, ok := p.sizes[family]; ok && s > 0 {
		return s
	}
	if len(p.families) > 0 {
		if s := p.sizes[p.families[0]]; s > 0 {
			return s
		}
	}
	return DefaultFontSize
}

// HasSize reports whether family has an explicitly registered size.
func (p *FontPreferences) HasSize(family string) bool {
	s, ok := p.sizes[family]
	return ok && s > 0
}

// EffectiveFontFamilies returns all registered families in order.
func (p *FontPreferences) EffectiveFontFamilies() []string {
	return p.families
}

// RealFontFamilies returns the families in registration order; an empty
// preferences object yields the default family so that comparisons against
// an untouched scheme behave.
func (p *FontPreferences) RealFontFamilies() []string {
	if len(p.families) == 0 {
		return []string{DefaultFontFamily}
	}
	return p.families
}

// UseLigatures reports the ligature rendering flag.
func (p *FontPreferences) UseLigatures() bool { return p.useLigatures }

// SetUseLigatures sets the ligature rendering flag.
func (p *FontPreferences) SetUseLigatures(use bool) { p.useLigatures = use }

// IsEmpty reports whether no family has been registered.
func (p *FontPreferences) IsEmpty() bool { return len(p.families) == 0 }

// CopyTo replaces dst's contents with a deep copy of p.
func (p *FontPreferences) CopyTo(dst *FontPreferences) {
	dst.families = append([]string(nil), p.families...)
	dst.sizes = make(map[string]int, len(p.sizes))
	for k, v := range p.sizes {
		dst.sizes[k] = v
	}
	dst.useLigatures = p.useLigatures
}

// Equal compares families (in order), sizes, and the ligature flag.
func (p *FontPreferences) Equal(other *FontPreferences) bool {
	if len(p.families) != len(other.families) {
		return false
	}
	for i, f := range p.families {
		if other.families[i] != f {
			return false
		}
		if p.sizes[f] != other.sizes[f] {
			return false
		}
	}
	return p.useLigatures == other.useLigatures
}

// FontType selects one of the derived font variants a scheme maintains.
type FontType int

const (
	FontTypePlain FontType = iota
	FontTypeBold
	FontTypeItalic
	FontTypeBoldItalic
	FontTypeConsolePlain
	FontTypeConsoleBold
	FontTypeConsoleItalic
	FontTypeConsoleBoldItalic
)

// Font is a concrete derived font: a resolved family, size, and style.
type Font struct {
	Family string
	Size   int
	Style  FontStyle
}

// FontResolver substitutes an unavailable family. It returns the substitute
// family name, or "" when the declared family can be used as-is.
type FontResolver func(family string, size int) string
