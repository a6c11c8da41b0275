package scheme

import (
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// CurrentVersion is the newest document version this package writes and the
// highest it accepts on read.
const CurrentVersion = 142

// stripeMigrationVersion is the first version whose documents already carry
// the new error-stripe palette; anything older gets migrated on read.
const stripeMigrationVersion = 141

// QuickDocFontSize is the relative font size of the quick-documentation
// popup, persisted by symbolic name.
type QuickDocFontSize string

const (
	QuickDocXSmall QuickDocFontSize = "X-SMALL"
	QuickDocSmall  QuickDocFontSize = "SMALL"
	QuickDocMedium QuickDocFontSize = "MEDIUM"
	QuickDocLarge  QuickDocFontSize = "LARGE"
)

// DefaultQuickDocFontSize is never written to documents.
const DefaultQuickDocFontSize = QuickDocSmall

// Meta-info property names.
const (
	MetaCreationTime = "created"
	MetaModifiedTime = "modified"
	MetaApplication  = "ide"
	MetaAppVersion   = "ideVersion"
	MetaOriginal     = "originalScheme"
)

const metaInfoTimeLayout = "2006-01-02T15:04:05"

// EditableCopyPrefix marks a user-editable copy of a bundled scheme. Display
// names strip it.
const EditableCopyPrefix = "_@user_"

// Parent is the narrow read side of a scheme another scheme inherits from.
// A parent that is a *Scheme exposes its raw maps to inheritance-aware
// logic; any other implementation is opaque and only consulted through
// these resolved accessors.
type Parent interface {
	Name() string
	// Color returns the resolved color for key, or nil when unset. An
	// opaque parent cannot distinguish "absent" from "set to nil".
	Color(key ColorKey) *Color
	// Attributes returns the resolved record for key, or nil.
	Attributes(key *AttributeKey) *TextAttributes
}

// ParentResolver maps a parent scheme name from a document to the scheme it
// denotes. Returning nil means "unknown"; the reader then falls back to the
// empty scheme.
type ParentResolver func(name string) Parent

// Platform identifies the application writing a scheme's meta-info.
type Platform struct {
	Name    string
	Version string
}

// Scheme is a named, versioned, optionally parented bundle of font
// preferences, colors, and text attributes. All methods are intended for a
// single goroutine; the process-wide registry provides any cross-goroutine
// coordination.
type Scheme struct {
	name    string
	version int
	parent  Parent

	fontPrefs        FontPreferences
	consoleFontPrefs FontPreferences
	lineSpacing      float32
	consoleSpacing   float32 // -1 means inherit the editor value
	quickDocFontSize QuickDocFontSize

	colors     map[ColorKey]*Color
	attributes map[*AttributeKey]*TextAttributes
	metaInfo   map[string]string

	fonts            map[FontType]Font
	fallbackFontName string

	deprecatedBackground *Color

	resolver       ParentResolver
	migration      StripeMigration
	now            func() time.Time
	platform       Platform
	fontResolver   FontResolver
	colorTransform func(Color) Color

	readOnly     bool
	canBeDeleted bool
	saveNeeded   bool
}

// Option configures a Scheme at construction.
type Option func(*Scheme)

// WithParent sets the initial parent scheme.
func WithParent(p Parent) Option {
	return func(s *Scheme) { s.parent = p }
}

// WithParentResolver sets the lookup used when a document names its parent.
func WithParentResolver(r ParentResolver) Option {
	return func(s *Scheme) { s.resolver = r }
}

// WithMigration replaces the error-stripe migration table.
func WithMigration(m StripeMigration) Option {
	return func(s *Scheme) { s.migration = m }
}

// WithClock replaces the timestamp source for meta-info stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scheme) { s.now = now }
}

// WithPlatform sets the application identity written to meta-info.
func WithPlatform(p Platform) Option {
	return func(s *Scheme) { s.platform = p }
}

// WithFontResolver sets the substitute lookup for unavailable families.
func WithFontResolver(r FontResolver) Option {
	return func(s *Scheme) { s.fontResolver = r }
}

// WithColorTransform installs a post-processing step applied to every color
// read from a document (color-blindness adjustment).
func WithColorTransform(t func(Color) Color) Option {
	return func(s *Scheme) { s.colorTransform = t }
}

// New returns a scheme with the given name, current version, spacing 1.0,
// and no colors or attributes.
func New(name string, opts ...Option) *Scheme {
	s := &Scheme{
		name:             name,
		version:          CurrentVersion,
		lineSpacing:      1.0,
		consoleSpacing:   -1,
		quickDocFontSize: DefaultQuickDocFontSize,
		colors:           map[ColorKey]*Color{},
		attributes:       map[*AttributeKey]*TextAttributes{},
		metaInfo:         map[string]string{},
		fonts:            map[FontType]Font{},
		migration:        DefaultStripeMigration(),
		now:              time.Now,
		canBeDeleted:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initFonts()
	return s
}

func (s *Scheme) Name() string { return s.name }

// SetName renames the scheme; registry uniqueness is the caller's problem.
func (s *Scheme) SetName(name string) { s.name = name }

// DisplayName strips the editable-copy prefix from a scheme name.
func DisplayName(name string) string {
	return strings.TrimPrefix(name, EditableCopyPrefix)
}

// Version returns the in-memory document version. After a successful read
// this is always CurrentVersion regardless of what the document carried.
func (s *Scheme) Version() int { return s.version }

// ParentScheme returns the parent, which may be nil for default schemes.
func (s *Scheme) ParentScheme() Parent { return s.parent }

// SetParentScheme replaces the parent.
func (s *Scheme) SetParentScheme(p Parent) { s.parent = p }

// ReadOnly reports whether the scheme rejects mutation by the UI layer.
func (s *Scheme) ReadOnly() bool { return s.readOnly }

// CanBeDeleted reports whether the registry may drop this scheme.
func (s *Scheme) CanBeDeleted() bool { return s.canBeDeleted }

// SetCanBeDeleted marks the scheme (non-)deletable.
func (s *Scheme) SetCanBeDeleted(v bool) { s.canBeDeleted = v }

// SaveNeeded reports whether the scheme changed since the last write.
func (s *Scheme) SaveNeeded() bool { return s.saveNeeded }

// SetSaveNeeded marks the scheme dirty or clean.
func (s *Scheme) SetSaveNeeded(v bool) { s.saveNeeded = v }

// LineSpacing normalizes non-positive stored values to 1.0.
func (s *Scheme) LineSpacing() float32 {
	if s.lineSpacing <= 0 {
		return 1.0
	}
	return s.lineSpacing
}

// SetLineSpacing clamps spacing into a sane range.
func (s *Scheme) SetLineSpacing(v float32) {
	if v < 0.6 {
		v = 0.6
	}
	if v > 3.0 {
		v = 3.0
	}
	s.lineSpacing = v
}

// ConsoleLineSpacing returns the console spacing, inheriting the editor
// value when the stored sentinel is -1.
func (s *Scheme) ConsoleLineSpacing() float32 {
	if s.consoleSpacing == -1 {
		return s.LineSpacing()
	}
	return s.consoleSpacing
}

// SetConsoleLineSpacing stores the console spacing verbatim; -1 restores
// inheritance.
func (s *Scheme) SetConsoleLineSpacing(v float32) { s.consoleSpacing = v }

// QuickDocSize returns the quick-documentation font size.
func (s *Scheme) QuickDocSize() QuickDocFontSize { return s.quickDocFontSize }

// SetQuickDocSize updates the quick-documentation font size.
func (s *Scheme) SetQuickDocSize(v QuickDocFontSize) {
	if s.quickDocFontSize != v {
		s.quickDocFontSize = v
		s.saveNeeded = true
	}
}

// FontPreferencesRef exposes the editor font preferences for mutation;
// callers that change them should follow up with RefreshFonts.
func (s *Scheme) FontPreferencesRef() *FontPreferences { return &s.fontPrefs }

// ConsoleFontPreferencesRef exposes the console font preferences.
func (s *Scheme) ConsoleFontPreferencesRef() *FontPreferences { return &s.consoleFontPrefs }

// EditorFontName returns the effective editor family, after substitution.
func (s *Scheme) EditorFontName() string {
	if s.fallbackFontName != "" {
		return s.fallbackFontName
	}
	return s.fontPrefs.FontFamily()
}

// EditorFontSize returns the size of the effective editor family.
func (s *Scheme) EditorFontSize() int {
	return s.fontPrefs.Size(s.EditorFontName())
}

// SetEditorFontName re-registers the single editor family, keeping the size.
func (s *Scheme) SetEditorFontName(name string) {
	size := s.EditorFontSize()
	s.fontPrefs.Clear()
	s.fontPrefs.Register(name, size)
	s.initFonts()
}

// SetEditorFontSize re-registers the current family at the new size.
func (s *Scheme) SetEditorFontSize(size int) {
	s.fontPrefs.Register(s.EditorFontName(), clampFontSize(size))
	s.initFonts()
}

// ConsoleFontName returns the primary console family.
func (s *Scheme) ConsoleFontName() string { return s.consoleFontPrefs.FontFamily() }

// SetConsoleFontName re-registers the single console family.
func (s *Scheme) SetConsoleFontName(name string) {
	size := s.ConsoleFontSize()
	s.consoleFontPrefs.Clear()
	s.consoleFontPrefs.Register(name, size)
	s.initFonts()
}

// ConsoleFontSize returns the console size, inheriting the editor size when
// the console family has none of its own.
func (s *Scheme) ConsoleFontSize() int {
	font := s.ConsoleFontName()
	if s.consoleFontPrefs.HasSize(font) {
		return s.consoleFontPrefs.Size(font)
	}
	return s.EditorFontSize()
}

// SetConsoleFontSize registers the console size for the current family.
func (s *Scheme) SetConsoleFontSize(size int) {
	s.consoleFontPrefs.Register(s.ConsoleFontName(), clampFontSize(size))
	s.initFonts()
}

// Font returns a derived font variant. RefreshFonts (or any setter) keeps
// these in sync with the preferences.
func (s *Scheme) Font(t FontType) Font { return s.fonts[t] }

// RefreshFonts rebuilds the derived font cache. Pure and idempotent.
func (s *Scheme) RefreshFonts() { s.initFonts() }

func (s *Scheme) initFonts() {
	editorFamily := s.fontPrefs.FontFamily()
	editorSize := s.fontPrefs.Size(editorFamily)

	s.fallbackFontName = ""
	if s.fontResolver != nil {
		if sub := s.fontResolver(editorFamily, editorSize); sub != "" {
			s.fallbackFontName = sub
			editorFamily = sub
		}
	}

	if s.fonts == nil {
		s.fonts = map[FontType]Font{}
	}
	s.fonts[FontTypePlain] = Font{editorFamily, editorSize, FontPlain}
	s.fonts[FontTypeBold] = Font{editorFamily, editorSize, FontBold}
	s.fonts[FontTypeItalic] = Font{editorFamily, editorSize, FontItalic}
	s.fonts[FontTypeBoldItalic] = Font{editorFamily, editorSize, FontBoldItalic}

	consoleFamily := s.ConsoleFontName()
	consoleSize := s.ConsoleFontSize()
	s.fonts[FontTypeConsolePlain] = Font{consoleFamily, consoleSize, FontPlain}
	s.fonts[FontTypeConsoleBold] = Font{consoleFamily, consoleSize, FontBold}
	s.fonts[FontTypeConsoleItalic] = Font{consoleFamily, consoleSize, FontItalic}
	s.fonts[FontTypeConsoleBoldItalic] = Font{consoleFamily, consoleSize, FontBoldItalic}
}

func clampFontSize(size int) int {
	if size < 4 {
		return 4
	}
	if size > 72 {
		return 72
	}
	return size
}

// SetColor records a color; an explicit nil value is distinct from the key
// being absent.
func (s *Scheme) SetColor(key ColorKey, c *Color) {
	s.colors[key] = cloneColor(c)
}

// OwnColor returns the scheme's own entry without consulting the parent.
// The second result distinguishes "set to nil" from "absent".
func (s *Scheme) OwnColor(key ColorKey) (*Color, bool) {
	c, ok := s.colors[key]
	return c, ok
}

// Color resolves a color through the inheritance chain.
func (s *Scheme) Color(key ColorKey) *Color {
	if c, ok := s.colors[key]; ok {
		return c
	}
	if s.parent != nil {
		return s.parent.Color(key)
	}
	return nil
}

// ColorKeys returns the scheme's own color keys, sorted.
func (s *Scheme) ColorKeys() []ColorKey {
	keys := make([]ColorKey, 0, len(s.colors))
	for k := range s.colors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// SetAttributes records an attribute record for key.
func (s *Scheme) SetAttributes(key *AttributeKey, a *TextAttributes) {
	s.attributes[key] = a.Clone()
}

// OwnAttributes returns the scheme's own record without inheritance.
func (s *Scheme) OwnAttributes(key *AttributeKey) *TextAttributes {
	return s.attributes[key]
}

// AttributeKeys returns the scheme's own attribute keys, sorted by name.
func (s *Scheme) AttributeKeys() []*AttributeKey {
	keys := make([]*AttributeKey, 0, len(s.attributes))
	for k := range s.attributes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].name < keys[j].name })
	return keys
}

// Attributes resolves a record: the scheme's own entry wins unless it is
// fallback-enabled, in which case the key's fallback chain is walked on
// this scheme; failing that the parent resolves it.
func (s *Scheme) Attributes(key *AttributeKey) *TextAttributes {
	if key == nil {
		return nil
	}
	if a, ok := s.attributes[key]; ok {
		if !a.FallbackEnabled || key.fallback == nil {
			return a
		}
		if fb := s.FallbackAttributes(key.fallback); fb != nil {
			return fb
		}
	}
	if s.parent != nil {
		return s.parent.Attributes(key)
	}
	return nil
}

// FallbackAttributes walks the fallback-key chain on this scheme until it
// finds a directly-defined record with fallback disabled or with no further
// fallback key. Returns nil when the chain is exhausted.
func (s *Scheme) FallbackAttributes(fallbackKey *AttributeKey) *TextAttributes {
	if fallbackKey == nil {
		return nil
	}
	if a := s.DirectlyDefinedAttributes(fallbackKey); a != nil {
		if !a.FallbackEnabled || fallbackKey.fallback == nil {
			return a
		}
	}
	return s.FallbackAttributes(fallbackKey.fallback)
}

// DirectlyDefinedAttributes returns this scheme's own entry, recursing into
// the parent only when the parent is itself a *Scheme. No fallback keys are
// consulted.
func (s *Scheme) DirectlyDefinedAttributes(key *AttributeKey) *TextAttributes {
	if a, ok := s.attributes[key]; ok {
		return a
	}
	if p, ok := s.parent.(*Scheme); ok {
		return p.DirectlyDefinedAttributes(key)
	}
	return nil
}

// DefaultBackground returns the resolved base text background, or white.
func (s *Scheme) DefaultBackground() Color {
	if a := s.Attributes(TextKey); a != nil && a.Background != nil {
		return *a.Background
	}
	return White
}

// DefaultForeground returns the resolved base text foreground, or black.
func (s *Scheme) DefaultForeground() Color {
	if a := s.Attributes(TextKey); a != nil && a.Foreground != nil {
		return *a.Foreground
	}
	return Black
}

// MetaInfo returns the value of a meta-info property, or "".
func (s *Scheme) MetaInfo(name string) string { return s.metaInfo[name] }

// SetMetaInfo sets a meta-info property.
func (s *Scheme) SetMetaInfo(name, value string) { s.metaInfo[name] = value }

// MetaInfoNames returns all meta-info property names, sorted.
func (s *Scheme) MetaInfoNames() []string {
	names := make([]string, 0, len(s.metaInfo))
	for n := range s.metaInfo {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetDefaultMetaInfo stamps creation time, application identity, and the
// originating scheme name (when parented to a real scheme).
func (s *Scheme) SetDefaultMetaInfo(parent Parent) {
	s.metaInfo[MetaCreationTime] = s.now().Format(metaInfoTimeLayout)
	if s.platform.Name != "" {
		s.metaInfo[MetaApplication] = s.platform.Name
		s.metaInfo[MetaAppVersion] = s.platform.Version
	}
	if parent != nil && parent.Name() != EmptyName {
		s.metaInfo[MetaOriginal] = parent.Name()
	}
}

// CopyTo clones this scheme's preferences, maps, and version into dst.
// Name, parent, and meta-info are left alone.
func (s *Scheme) CopyTo(dst *Scheme) {
	s.fontPrefs.CopyTo(&dst.fontPrefs)
	s.consoleFontPrefs.CopyTo(&dst.consoleFontPrefs)
	dst.lineSpacing = s.lineSpacing
	dst.consoleSpacing = s.consoleSpacing
	dst.quickDocFontSize = s.quickDocFontSize
	dst.version = s.version

	dst.colors = make(map[ColorKey]*Color, len(s.colors))
	for k, v := range s.colors {
		dst.colors[k] = cloneColor(v)
	}
	dst.attributes = make(map[*AttributeKey]*TextAttributes, len(s.attributes))
	for k, v := range s.attributes {
		dst.attributes[k] = v.Clone()
	}
	dst.initFonts()
}

// Clone returns a deep copy sharing the parent reference.
func (s *Scheme) Clone() *Scheme {
	dst := New(s.name,
		WithParent(s.parent),
		WithParentResolver(s.resolver),
		WithMigration(s.migration),
		WithClock(s.now),
		WithPlatform(s.platform),
		WithFontResolver(s.fontResolver),
	)
	s.CopyTo(dst)
	for k, v := range s.metaInfo {
		dst.metaInfo[k] = v
	}
	return dst
}

// IsEqualToBundled reports whether this scheme is indistinguishable from a
// bundled counterpart: same parent (or parented directly to it), identical
// meta-info apart from provenance stamps, and identical preferences, colors,
// and attributes. Used to detect "the user never actually changed anything".
func (s *Scheme) IsEqualToBundled(bundled *Scheme) bool {
	if s.parent != bundled.parent && s.parent != Parent(bundled) {
		return false
	}

	for name, value := range s.metaInfo {
		switch name {
		case MetaCreationTime, MetaModifiedTime, MetaApplication, MetaAppVersion, MetaOriginal:
			continue
		}
		if bundled.metaInfo[name] != value {
			return false
		}
	}

	return s.LineSpacing() == bundled.LineSpacing() &&
		s.ConsoleLineSpacing() == bundled.ConsoleLineSpacing() &&
		s.quickDocFontSize == bundled.quickDocFontSize &&
		stringsEqual(s.fontPrefs.RealFontFamilies(), bundled.fontPrefs.RealFontFamilies()) &&
		stringsEqual(s.consoleFontPrefs.RealFontFamilies(), bundled.consoleFontPrefs.RealFontFamilies()) &&
		s.fontPrefs.UseLigatures() == bundled.fontPrefs.UseLigatures() &&
		s.consoleFontPrefs.UseLigatures() == bundled.consoleFontPrefs.UseLigatures() &&
		s.colorMapsEqual(bundled) &&
		s.attributeMapsEqual(bundled) &&
		s.fontPrefs.Equal(&bundled.fontPrefs) &&
		s.consoleFontPrefs.Equal(&bundled.consoleFontPrefs)
}

func (s *Scheme) colorMapsEqual(other *Scheme) bool {
	if len(s.colors) != len(other.colors) {
		return false
	}
	for k, v := range s.colors {
		ov, ok := other.colors[k]
		if !ok || !colorsEqual(v, ov) {
			return false
		}
	}
	return true
}

func (s *Scheme) attributeMapsEqual(other *Scheme) bool {
	if len(s.attributes) != len(other.attributes) {
		return false
	}
	for k, v := range s.attributes {
		ov, ok := other.attributes[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Digest hashes the serialized form; the store uses it to skip reloading
// files whose content has not changed.
func (s *Scheme) Digest() (uint64, error) {
	root := NewElement(schemeElement)
	if err := s.WriteExternal(root); err != nil {
		return 0, err
	}
	data, err := root.Serialize()
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}

func (s *Scheme) String() string { return s.name }
