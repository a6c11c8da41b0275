package scheme

import "fmt"

// UnsupportedVersionError aborts a read when the document was written by a
// newer application than this one.
type UnsupportedVersionError struct {
	Version int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("scheme: unsupported color scheme version %d (current %d)", e.Version, CurrentVersion)
}

// Option names inside a scheme document.
const (
	optLineSpacing        = "LINE_SPACING"
	optConsoleLineSpacing = "CONSOLE_LINE_SPACING"
	optEditorFontSize     = "EDITOR_FONT_SIZE"
	optEditorFontName     = "EDITOR_FONT_NAME"
	optConsoleFontSize    = "CONSOLE_FONT_SIZE"
	optConsoleFontName    = "CONSOLE_FONT_NAME"
	optEditorLigatures    = "EDITOR_LIGATURES"
	optConsoleLigatures   = "CONSOLE_LIGATURES"
	optQuickDocFontSize   = "EDITOR_QUICK_DOC_FONT_SIZE"
)

// ReadExternal populates the scheme from a document element: either a
// single <scheme> node or a container holding <scheme> children. A version
// above CurrentVersion fails before any state is touched. After a
// successful read the in-memory version is stamped to CurrentVersion; the
// document's version only steers migrations during parsing.
func (s *Scheme) ReadExternal(node *Element) error {
	if node.Name() == schemeElement {
		if err := s.readScheme(node); err != nil {
			return err
		}
	} else {
		for _, child := range node.ChildrenNamed(schemeElement) {
			if err := s.readScheme(child); err != nil {
				return err
			}
		}
	}
	s.initFonts()
	s.version = CurrentVersion
	return nil
}

func (s *Scheme) readScheme(node *Element) error {
	version := 0
	if raw := node.Attr(versionAttr); raw != "" {
		v, err := parseInt(raw)
		if err != nil {
			return fmt.Errorf("scheme: malformed version attribute %q: %w", raw, err)
		}
		version = v
	}
	if version > CurrentVersion {
		return &UnsupportedVersionError{Version: version}
	}

	s.deprecatedBackground = nil
	s.name = node.Attr(nameAttr)
	s.version = version

	isDefault := node.Attr(defaultSchemeAtt) == "true"
	if !isDefault {
		s.parent = s.resolveParent(node.AttrDefault(parentSchemeAttr, EmptyName))
	}

	clear(s.metaInfo)
	for _, child := range node.Children {
		switch child.Name() {
		case optionElement:
			s.readSetting(child)
		case fontElement:
			readFontBlock(child, &s.fontPrefs)
		case consoleFontElem:
			readFontBlock(child, &s.consoleFontPrefs)
		case colorsElement:
			s.readColors(child)
		case attrsElement:
			s.readAttributes(child)
		case metaInfoElement:
			s.readMetaInfo(child)
		}
		// Unknown tags are ignored so newer documents degrade gracefully.
	}

	if s.deprecatedBackground != nil {
		text := s.attributes[TextKey]
		if text == nil {
			s.attributes[TextKey] = &TextAttributes{
				Foreground: cloneColor(&Black),
				Background: s.deprecatedBackground,
				EffectType: EffectBoxed,
			}
		} else {
			text.Background = s.deprecatedBackground
		}
		s.deprecatedBackground = nil
	}

	if s.consoleFontPrefs.IsEmpty() {
		s.fontPrefs.CopyTo(&s.consoleFontPrefs)
	}

	s.initFonts()
	return nil
}

func (s *Scheme) resolveParent(name string) Parent {
	if s.resolver != nil {
		if p := s.resolver(name); p != nil {
			return p
		}
	}
	return Empty()
}

func (s *Scheme) readSetting(e *Element) {
	value := e.Attr(valueAttr)
	switch e.Attr(nameAttr) {
	case optLineSpacing:
		if v, err := parseFloat32(value); err == nil {
			s.lineSpacing = v
		}
	case optEditorFontSize:
		if v, err := parseInt(value); err == nil && v > 0 {
			s.SetEditorFontSize(v)
		}
	case optEditorFontName:
		if value != "" {
			s.SetEditorFontName(value)
		}
	case optConsoleLineSpacing:
		if v, err := parseFloat32(value); err == nil {
			s.consoleSpacing = v
		}
	case optConsoleFontSize:
		if v, err := parseInt(value); err == nil && v > 0 {
			s.SetConsoleFontSize(v)
		}
	case optConsoleFontName:
		if value != "" {
			s.SetConsoleFontName(value)
		}
	case optQuickDocFontSize:
		if value != "" {
			s.quickDocFontSize = QuickDocFontSize(value)
		}
	case optEditorLigatures:
		s.fontPrefs.SetUseLigatures(value == "true")
	case optConsoleLigatures:
		s.consoleFontPrefs.SetUseLigatures(value == "true")
	}
}

// readFontBlock reads one repeated <font>/<console-font> block: a family
// plus an optional size. A family without a usable size joins the sequence
// inheriting the primary size.
func readFontBlock(e *Element, prefs *FontPreferences) {
	family := ""
	size := -1
	for _, opt := range e.ChildrenNamed(optionElement) {
		switch opt.Attr(nameAttr) {
		case optEditorFontName:
			family = opt.Attr(valueAttr)
		case optEditorFontSize:
			if v, err := parseInt(opt.Attr(valueAttr)); err == nil {
				size = v
			}
		}
	}
	if family == "" {
		return
	}
	if size > 1 {
		prefs.Register(family, size)
	} else {
		prefs.AddFontFamily(family)
	}
}

func (s *Scheme) readColors(e *Element) {
	for _, opt := range e.ChildrenNamed(optionElement) {
		name := opt.Attr(nameAttr)
		if name == "" {
			continue
		}
		color := readOptionalColor(opt.Attr(valueAttr), s.colorTransform)
		if ColorKey(name) == BackgroundColorKey {
			// Deprecated standalone entry; folded into the base text
			// attributes once the whole scheme has been read.
			s.deprecatedBackground = color
		}
		s.colors[ColorKey(name)] = color
	}
}

func (s *Scheme) readAttributes(e *Element) {
	for _, opt := range e.ChildrenNamed(optionElement) {
		name := opt.Attr(nameAttr)
		if name == "" {
			continue
		}
		key := AttrKey(name)

		var attrs *TextAttributes
		if value := opt.Child(valueElement); value != nil {
			attrs = readValueElement(value, s.colorTransform)
		} else {
			attrs = &TextAttributes{}
		}

		if base := opt.Attr(baseAttrsAttr); base != "" {
			// A declared base key makes an empty record mean inheritance.
			// Overriding the key's registered fallback is not supported;
			// the registered chain stays authoritative.
			AttrKeyWithFallback(name, AttrKey(base))
			if !attrs.ContainsValue() {
				attrs.FallbackEnabled = true
			}
		}

		s.attributes[key] = attrs
		s.migrateErrorStripeColor(key, attrs)
	}
}

func (s *Scheme) readMetaInfo(e *Element) {
	clear(s.metaInfo)
	for _, prop := range e.ChildrenNamed(propertyElement) {
		if name := prop.Attr(nameAttr); name != "" {
			s.metaInfo[name] = prop.Text
		}
	}
}
