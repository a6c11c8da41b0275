package scheme

// FontStyle is a bitmask of bold and italic.
type FontStyle int

const (
	FontPlain      FontStyle = 0
	FontBold       FontStyle = 1
	FontItalic     FontStyle = 2
	FontBoldItalic FontStyle = FontBold | FontItalic
)

// EffectType selects how the effect color is drawn under or around text.
type EffectType int

const (
	EffectBoxed EffectType = iota
	EffectUnderscore
	EffectWaveUnderscore
	EffectStrikeout
	EffectBoldUnderscore
)

// TextAttributes is one attribute record: optional foreground/background,
// font style, an optional effect, and the margin error-stripe color. A
// record with FallbackEnabled set carries no values of its own and means
// "resolve through the key's fallback chain".
type TextAttributes struct {
	Foreground       *Color
	Background       *Color
	FontStyle        FontStyle
	EffectType       EffectType
	EffectColor      *Color
	ErrorStripeColor *Color
	FallbackEnabled  bool
}

// ContainsValue reports whether any field is actually set.
func (a *TextAttributes) ContainsValue() bool {
	if a == nil {
		return false
	}
	return a.Foreground != nil ||
		a.Background != nil ||
		a.FontStyle != FontPlain ||
		a.EffectColor != nil ||
		a.ErrorStripeColor != nil
}

// Equal compares all fields including the fallback flag.
func (a *TextAttributes) Equal(b *TextAttributes) bool {
	if a == nil || b == nil {
		return a == b
	}
	return colorsEqual(a.Foreground, b.Foreground) &&
		colorsEqual(a.Background, b.Background) &&
		a.FontStyle == b.FontStyle &&
		a.EffectType == b.EffectType &&
		colorsEqual(a.EffectColor, b.EffectColor) &&
		colorsEqual(a.ErrorStripeColor, b.ErrorStripeColor) &&
		a.FallbackEnabled == b.FallbackEnabled
}

// Clone returns a deep copy.
func (a *TextAttributes) Clone() *TextAttributes {
	if a == nil {
		return nil
	}
	return &TextAttributes{
		Foreground:       cloneColor(a.Foreground),
		Background:       cloneColor(a.Background),
		FontStyle:        a.FontStyle,
		EffectType:       a.EffectType,
		EffectColor:      cloneColor(a.EffectColor),
		ErrorStripeColor: cloneColor(a.ErrorStripeColor),
		FallbackEnabled:  a.FallbackEnabled,
	}
}

// Attribute record field names as they appear inside a <value> element.
const (
	attrForeground  = "FOREGROUND"
	attrBackground  = "BACKGROUND"
	attrFontType    = "FONT_TYPE"
	attrEffectColor = "EFFECT_COLOR"
	attrEffectType  = "EFFECT_TYPE"
	attrErrorStripe = "ERROR_STRIPE_COLOR"
)

// readValueElement fills a record from the option children of a <value>
// element. Unknown option names are ignored; malformed color values leave
// the field unset.
func readValueElement(e *Element, transform func(Color) Color) *TextAttributes {
	a := &TextAttributes{}
	for _, opt := range e.ChildrenNamed(optionElement) {
		name := opt.Attr(nameAttr)
		value := opt.Attr(valueAttr)
		switch name {
		case attrForeground:
			a.Foreground = readOptionalColor(value, transform)
		case attrBackground:
			a.Background = readOptionalColor(value, transform)
		case attrEffectColor:
			a.EffectColor = readOptionalColor(value, transform)
		case attrErrorStripe:
			a.ErrorStripeColor = readOptionalColor(value, transform)
		case attrFontType:
			if v, err := parseInt(value); err == nil {
				a.FontStyle = FontStyle(v) & FontBoldItalic
			}
		case attrEffectType:
			if v, err := parseInt(value); err == nil && v >= int(EffectBoxed) && v <= int(EffectBoldUnderscore) {
				a.EffectType = EffectType(v)
			}
		}
	}
	return a
}

// writeValueElement appends the record's set fields to a <value> element.
// Unset fields are omitted entirely; the zero font style and effect type
// are defaults and are likewise not written.
func (a *TextAttributes) writeValueElement(value *Element) {
	if a.Foreground != nil {
		value.AddOption(attrForeground, a.Foreground.Hex())
	}
	if a.Background != nil {
		value.AddOption(attrBackground, a.Background.Hex())
	}
	if a.FontStyle != FontPlain {
		value.AddOption(attrFontType, formatInt(int(a.FontStyle)))
	}
	if a.EffectColor != nil {
		value.AddOption(attrEffectColor, a.EffectColor.Hex())
	}
	if a.EffectType != EffectBoxed {
		value.AddOption(attrEffectType, formatInt(int(a.EffectType)))
	}
	if a.ErrorStripeColor != nil {
		value.AddOption(attrErrorStripe, a.ErrorStripeColor.Hex())
	}
}

func readOptionalColor(value string, transform func(Color) Color) *Color {
	if value == "" {
		return nil
	}
	c, err := ParseColor(value)
	if err != nil {
		return nil
	}
	if transform != nil {
		c = transform(c)
	}
	return &c
}
