package scheme

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, doc string) *Element {
	t.Helper()
	root, err := ParseDocument([]byte(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return root
}

func TestReadSingleSchemeNode(t *testing.T) {
	doc := `<scheme name="Dusk" version="142" parent_scheme="Default">
  <metaInfo>
    <property name="created">2024-03-01T10:00:00</property>
  </metaInfo>
  <option name="LINE_SPACING" value="1.2"/>
  <option name="EDITOR_FONT_SIZE" value="14"/>
  <option name="EDITOR_FONT_NAME" value="Consolas"/>
  <colors>
    <option name="CARET_COLOR" value="ff00ff"/>
  </colors>
  <attributes>
    <option name="TEXT">
      <value>
        <option name="FOREGROUND" value="a9b7c6"/>
        <option name="BACKGROUND" value="2b2b2b"/>
      </value>
    </option>
  </attributes>
</scheme>`

	parent := New("Default")
	s := New("", WithParentResolver(func(name string) Parent {
		if name == "Default" {
			return parent
		}
		return nil
	}))
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatalf("ReadExternal: %v", err)
	}

	if s.Name() != "Dusk" {
		t.Errorf("Name = %q, want Dusk", s.Name())
	}
	if s.ParentScheme() != Parent(parent) {
		t.Errorf("parent = %v, want Default", s.ParentScheme())
	}
	if got := s.LineSpacing(); got != 1.2 {
		t.Errorf("LineSpacing = %v, want 1.2", got)
	}
	if s.EditorFontName() != "Consolas" || s.EditorFontSize() != 14 {
		t.Errorf("editor font = %s/%d, want Consolas/14", s.EditorFontName(), s.EditorFontSize())
	}
	if c := s.Color("CARET_COLOR"); c == nil || c.Hex() != "ff00ff" {
		t.Errorf("CARET_COLOR = %v, want ff00ff", c)
	}
	text := s.OwnAttributes(TextKey)
	if text == nil || text.Foreground == nil || text.Foreground.Hex() != "a9b7c6" {
		t.Errorf("TEXT foreground = %v, want a9b7c6", text)
	}
	if s.MetaInfo(MetaCreationTime) != "2024-03-01T10:00:00" {
		t.Errorf("created = %q", s.MetaInfo(MetaCreationTime))
	}
}

func TestReadUnsupportedVersionFailsWithoutMutation(t *testing.T) {
	s := New("Untouched")
	s.SetColor("CARET_COLOR", &Color{1, 2, 3})

	doc := `<scheme name="Future" version="143"><colors><option name="CARET_COLOR" value="ffffff"/></colors></scheme>`
	err := s.ReadExternal(mustParse(t, doc))
	if err == nil {
		t.Fatal("expected error for version 143")
	}
	var uv *UnsupportedVersionError
	if !errors.As(err, &uv) || uv.Version != 143 {
		t.Fatalf("error = %v, want UnsupportedVersionError{143}", err)
	}

	if s.Name() != "Untouched" {
		t.Errorf("name mutated to %q", s.Name())
	}
	if c := s.Color("CARET_COLOR"); c == nil || *c != (Color{1, 2, 3}) {
		t.Errorf("color mutated to %v", c)
	}
}

func TestReadVersionStampedToCurrent(t *testing.T) {
	s := New("")
	doc := `<scheme name="Old" version="140"/>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	if s.Version() != CurrentVersion {
		t.Errorf("Version = %d, want %d", s.Version(), CurrentVersion)
	}
}

func TestReadContainerOfSchemes(t *testing.T) {
	s := New("")
	doc := `<components><scheme name="Inner" version="142"/></components>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	if s.Name() != "Inner" {
		t.Errorf("Name = %q, want Inner", s.Name())
	}
}

func TestReadUnknownParentFallsBackToEmpty(t *testing.T) {
	s := New("", WithParentResolver(func(string) Parent { return nil }))
	doc := `<scheme name="Orphan" version="142" parent_scheme="NoSuchScheme"/>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	if s.ParentScheme() != Parent(Empty()) {
		t.Errorf("parent = %v, want the empty scheme", s.ParentScheme())
	}
}

func TestReadDefaultSchemeHasNoParent(t *testing.T) {
	s := New("")
	doc := `<scheme name="Default" version="142" default_scheme="true"/>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	if s.ParentScheme() != nil {
		t.Errorf("default scheme got parent %v", s.ParentScheme())
	}
}

func TestReadUnknownTagsIgnored(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142"><flavor name="grape"/><option name="LINE_SPACING" value="1.5"/></scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	if s.LineSpacing() != 1.5 {
		t.Errorf("LINE_SPACING not read past unknown tag: %v", s.LineSpacing())
	}
}

func TestReadLineSpacingNormalized(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142"><option name="LINE_SPACING" value="0"/></scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	if s.LineSpacing() != 1.0 {
		t.Errorf("LineSpacing = %v, want 1.0 for non-positive stored value", s.LineSpacing())
	}
}

func TestReadDeprecatedBackgroundCreatesTextRecord(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142">
  <colors><option name="BACKGROUND" value="112233"/></colors>
</scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	text := s.OwnAttributes(TextKey)
	if text == nil {
		t.Fatal("no TEXT record created from deprecated BACKGROUND")
	}
	if text.Foreground == nil || *text.Foreground != Black {
		t.Errorf("foreground = %v, want black", text.Foreground)
	}
	if text.Background == nil || text.Background.Hex() != "112233" {
		t.Errorf("background = %v, want 112233", text.Background)
	}
	if text.EffectType != EffectBoxed {
		t.Errorf("effect = %v, want boxed", text.EffectType)
	}
}

func TestReadDeprecatedBackgroundAmendsExistingRecord(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142">
  <colors><option name="BACKGROUND" value="112233"/></colors>
  <attributes>
    <option name="TEXT">
      <value><option name="FOREGROUND" value="eeeeee"/></value>
    </option>
  </attributes>
</scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	text := s.OwnAttributes(TextKey)
	if text.Foreground == nil || text.Foreground.Hex() != "eeeeee" {
		t.Errorf("existing foreground clobbered: %v", text.Foreground)
	}
	if text.Background == nil || text.Background.Hex() != "112233" {
		t.Errorf("background not amended: %v", text.Background)
	}
}

func TestReadConsoleFontDefaultsToEditor(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142">
  <option name="EDITOR_FONT_NAME" value="Hack"/>
  <option name="EDITOR_FONT_SIZE" value="15"/>
</scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	if s.ConsoleFontName() != "Hack" || s.ConsoleFontSize() != 15 {
		t.Errorf("console font = %s/%d, want copy of editor Hack/15", s.ConsoleFontName(), s.ConsoleFontSize())
	}
}

func TestReadMultiFontBlocks(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142">
  <font><option name="EDITOR_FONT_NAME" value="Fira Code"/><option name="EDITOR_FONT_SIZE" value="13"/></font>
  <font><option name="EDITOR_FONT_NAME" value="JetBrains Mono"/><option name="EDITOR_FONT_SIZE" value="13"/></font>
</scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	families := s.FontPreferencesRef().EffectiveFontFamilies()
	if len(families) != 2 || families[0] != "Fira Code" || families[1] != "JetBrains Mono" {
		t.Errorf("families = %v", families)
	}
}

func TestReadFallbackAttributeRecord(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142">
  <attributes>
    <option name="READ_TEST_INHERITING" baseAttributes="TEXT"/>
  </attributes>
</scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	key := AttrKey("READ_TEST_INHERITING")
	a := s.OwnAttributes(key)
	if a == nil || !a.FallbackEnabled {
		t.Fatalf("record = %+v, want fallback enabled", a)
	}
	if key.FallbackKey() != TextKey {
		t.Errorf("fallback key = %v, want TEXT", key.FallbackKey())
	}
}

func TestReadCircularBaseAttributesResolve(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142">
  <attributes>
    <option name="READ_TEST_RING_A" baseAttributes="READ_TEST_RING_B"/>
    <option name="READ_TEST_RING_B" baseAttributes="READ_TEST_RING_A"/>
  </attributes>
</scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}

	// The second declaration would close the ring; it must be refused so
	// resolution terminates.
	a := AttrKey("READ_TEST_RING_A")
	b := AttrKey("READ_TEST_RING_B")
	if a.FallbackKey() != b {
		t.Errorf("A fallback = %v, want B", a.FallbackKey())
	}
	if b.FallbackKey() != nil {
		t.Errorf("B fallback = %v, want none", b.FallbackKey())
	}
	if got := s.Attributes(a); got == nil {
		t.Error("Attributes(A) = nil, want B's record")
	}
	if got := s.Attributes(b); got == nil {
		t.Error("Attributes(B) = nil, want B's own record")
	}
}

func TestStripeMigrationAppliedBelowThreshold(t *testing.T) {
	doc := `<scheme name="Old" version="140" parent_scheme="Default">
  <attributes>
    <option name="ERRORS_ATTRIBUTES">
      <value><option name="ERROR_STRIPE_COLOR" value="ff0000"/></value>
    </option>
  </attributes>
</scheme>`
	parent := New("Default")
	s := New("", WithParentResolver(func(string) Parent { return parent }))
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	a := s.OwnAttributes(ErrorsKey)
	if a.ErrorStripeColor == nil || a.ErrorStripeColor.Hex() != "cf5b56" {
		t.Errorf("stripe = %v, want migrated cf5b56", a.ErrorStripeColor)
	}
}

func TestStripeMigrationSkippedAtThreshold(t *testing.T) {
	doc := `<scheme name="New" version="141" parent_scheme="Default">
  <attributes>
    <option name="ERRORS_ATTRIBUTES">
      <value><option name="ERROR_STRIPE_COLOR" value="ff0000"/></value>
    </option>
  </attributes>
</scheme>`
	parent := New("Default")
	s := New("", WithParentResolver(func(string) Parent { return parent }))
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	a := s.OwnAttributes(ErrorsKey)
	if a.ErrorStripeColor == nil || *a.ErrorStripeColor != Red {
		t.Errorf("stripe = %v, want untouched red", a.ErrorStripeColor)
	}
}

func TestStripeMigrationSkippedWithoutParent(t *testing.T) {
	doc := `<scheme name="Old" version="140" default_scheme="true">
  <attributes>
    <option name="ERRORS_ATTRIBUTES">
      <value><option name="ERROR_STRIPE_COLOR" value="ff0000"/></value>
    </option>
  </attributes>
</scheme>`
	s := New("")
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	a := s.OwnAttributes(ErrorsKey)
	if a.ErrorStripeColor == nil || *a.ErrorStripeColor != Red {
		t.Errorf("stripe = %v, want untouched red without a parent", a.ErrorStripeColor)
	}
}

func TestReadColorSetToNilDistinctFromAbsent(t *testing.T) {
	s := New("")
	doc := `<scheme name="X" version="142">
  <colors><option name="GUTTER_BACKGROUND" value=""/></colors>
</scheme>`
	if err := s.ReadExternal(mustParse(t, doc)); err != nil {
		t.Fatal(err)
	}
	c, defined := s.OwnColor("GUTTER_BACKGROUND")
	if !defined {
		t.Fatal("empty value should still define the key")
	}
	if c != nil {
		t.Errorf("value = %v, want explicit nil", c)
	}
	if _, defined := s.OwnColor("NEVER_MENTIONED"); defined {
		t.Error("absent key reported as defined")
	}
}
