package scheme

// WriteExternal serializes the scheme onto root, which must be a <scheme>
// element. Values matching what inheritance would produce anyway are
// suppressed so user scheme files stay minimal diffs against their parents.
func (s *Scheme) WriteExternal(root *Element) error {
	root.SetAttr(nameAttr, s.name)
	root.SetAttr(versionAttr, formatInt(s.version))

	if s.parent != nil && s.parent.Name() != EmptyName {
		root.SetAttr(parentSchemeAttr, s.parent.Name())
	}

	if len(s.metaInfo) > 0 {
		root.AddChild(s.metaInfoToElement())
	}

	if s.LineSpacing() != 1 {
		root.AddOption(optLineSpacing, formatFloat32(s.LineSpacing()))
	}

	// The single-font format predates font sequences; it stays the wire
	// form whenever at most one family is registered so older readers keep
	// working.
	useOldFontFormat := len(s.fontPrefs.EffectiveFontFamilies()) <= 1
	if useOldFontFormat {
		root.AddOption(optEditorFontSize, formatInt(s.EditorFontSize()))
	} else {
		writeFontBlocks(root, fontElement, &s.fontPrefs)
	}
	writeLigatures(root, &s.fontPrefs, optEditorLigatures)

	if !s.fontPrefs.Equal(&s.consoleFontPrefs) {
		if len(s.consoleFontPrefs.EffectiveFontFamilies()) <= 1 {
			root.AddOption(optConsoleFontName, s.ConsoleFontName())
			if s.ConsoleFontSize() != s.EditorFontSize() {
				root.AddOption(optConsoleFontSize, formatInt(s.ConsoleFontSize()))
			}
		} else {
			writeFontBlocks(root, consoleFontElem, &s.consoleFontPrefs)
		}
		writeLigatures(root, &s.consoleFontPrefs, optConsoleLigatures)
	}

	if s.ConsoleLineSpacing() != s.LineSpacing() {
		root.AddOption(optConsoleLineSpacing, formatFloat32(s.ConsoleLineSpacing()))
	}

	if s.quickDocFontSize != DefaultQuickDocFontSize {
		root.AddOption(optQuickDocFontSize, string(s.quickDocFontSize))
	}

	if useOldFontFormat {
		root.AddOption(optEditorFontName, s.EditorFontName())
	}

	colors := NewElement(colorsElement)
	attrs := NewElement(attrsElement)
	s.writeColors(colors)
	s.writeAttributes(attrs)
	if len(colors.Children) > 0 {
		root.AddChild(colors)
	}
	if len(attrs.Children) > 0 {
		root.AddChild(attrs)
	}

	s.saveNeeded = false
	return nil
}

func writeLigatures(root *Element, prefs *FontPreferences, option string) {
	if prefs.UseLigatures() {
		root.AddOption(option, "true")
	}
}

func writeFontBlocks(root *Element, tag string, prefs *FontPreferences) {
	for _, family := range prefs.RealFontFamilies() {
		block := NewElement(tag)
		block.AddOption(optEditorFontName, family)
		block.AddOption(optEditorFontSize, formatInt(prefs.Size(family)))
		root.AddChild(block)
	}
}

func (s *Scheme) metaInfoToElement() *Element {
	s.metaInfo[MetaModifiedTime] = s.now().Format(metaInfoTimeLayout)
	meta := NewElement(metaInfoElement)
	for _, name := range s.MetaInfoNames() {
		prop := NewElement(propertyElement).SetAttr(nameAttr, name)
		prop.Text = s.metaInfo[name]
		meta.AddChild(prop)
	}
	return meta
}

func (s *Scheme) writeColors(colors *Element) {
	for _, key := range s.ColorKeys() {
		if !s.haveToWrite(key) {
			continue
		}
		value := ""
		if c := s.colors[key]; c != nil {
			value = c.Hex()
		}
		colors.AddOption(string(key), value)
	}
}

// haveToWrite suppresses a color entry when an ancestor already defines the
// same key with the same value. A scheme-typed parent is checked against its
// own map so that a key it merely inherits does not count as a definition;
// an opaque parent can only be compared through its resolved accessor.
func (s *Scheme) haveToWrite(key ColorKey) bool {
	value := s.colors[key]
	if s.parent == nil {
		return true
	}
	if p, ok := s.parent.(*Scheme); ok {
		own, defined := p.OwnColor(key)
		if defined && colorsEqual(own, value) {
			return false
		}
		return true
	}
	return !colorsEqual(s.parent.Color(key), value)
}

func (s *Scheme) writeAttributes(attrs *Element) {
	for _, key := range s.AttributeKeys() {
		value := s.attributes[key]

		var parentAttr *TextAttributes
		if s.parent != nil {
			parentAttr = s.parent.Attributes(key)
		} else {
			parentAttr = &TextAttributes{}
		}

		baseKey := key.FallbackKey()
		var parentFallbackAttr *TextAttributes
		if baseKey != nil {
			if p, ok := s.parent.(*Scheme); ok {
				parentFallbackAttr = p.FallbackAttributes(baseKey)
			}
		}

		if baseKey != nil && value.FallbackEnabled {
			// Inheriting records serialize as a bare base-key reference,
			// and only when the direct parent record replaced inheritance
			// with a concrete value that this scheme must opt back out of.
			if s.isParentOverwritingInheritance(key) {
				opt := NewElement(optionElement).
					SetAttr(nameAttr, key.ExternalName()).
					SetAttr(baseAttrsAttr, baseKey.ExternalName())
				attrs.AddChild(opt)
			}
			continue
		}

		// A concrete value is written when it differs from the parent's
		// resolved record, or when the parent's record coincides with its
		// own fallback-resolved value; in the latter case an explicit
		// override is indistinguishable from inheritance and must not be
		// dropped by accident.
		if (value.ContainsValue() && !value.Equal(parentAttr)) || parentAttr == parentFallbackAttr {
			opt := NewElement(optionElement).SetAttr(nameAttr, key.ExternalName())
			valueEl := NewElement(valueElement)
			value.writeValueElement(valueEl)
			opt.AddChild(valueEl)
			attrs.AddChild(opt)
		}
	}
}

// isParentOverwritingInheritance reports whether the parent scheme's
// directly-defined record for key has fallback disabled, meaning the parent
// replaced inheritance with a concrete value.
func (s *Scheme) isParentOverwritingInheritance(key *AttributeKey) bool {
	p, ok := s.parent.(*Scheme)
	if !ok {
		return false
	}
	if parentAttrs := p.DirectlyDefinedAttributes(key); parentAttrs != nil {
		return !parentAttrs.FallbackEnabled
	}
	return false
}
