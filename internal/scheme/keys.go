package scheme

import "sync"

// ColorKey names a single color slot in a scheme (gutter background, caret
// row, and so on). Keys are compared by external name.
type ColorKey string

// BackgroundColorKey is the deprecated standalone background entry. When it
// appears in a document's colors block it is folded into the base text
// attributes after the whole scheme has been read.
const BackgroundColorKey ColorKey = "BACKGROUND"

// AttributeKey names a text-attributes slot. A key may declare a fallback
// key: when a scheme holds a fallback-enabled record for the key, the value
// is inherited from the fallback key's resolved record instead.
type AttributeKey struct {
	name     string
	fallback *AttributeKey
}

// ExternalName returns the name used in scheme documents.
func (k *AttributeKey) ExternalName() string { return k.name }

// FallbackKey returns the declared fallback key, or nil.
func (k *AttributeKey) FallbackKey() *AttributeKey { return k.fallback }

func (k *AttributeKey) String() string { return k.name }

var (
	attrKeysMu sync.Mutex
	attrKeys   = map[string]*AttributeKey{}
)

// AttrKey returns the interned key for name, creating it without a fallback
// if it has not been seen before. Keys are process-wide: the same external
// name always yields the same *AttributeKey.
func AttrKey(name string) *AttributeKey {
	attrKeysMu.Lock()
	defer attrKeysMu.Unlock()
	if k, ok := attrKeys[name]; ok {
		return k
	}
	k := &AttributeKey{name: name}
	attrKeys[name] = k
	return k
}

// AttrKeyWithFallback returns the interned key for name, setting its
// fallback key if the key is new or has no fallback yet. An existing
// fallback is never silently re-pointed. Documents may declare any base
// key, so an edge that would make a fallback chain circular is refused;
// resolution walks the chain and relies on it staying acyclic.
func AttrKeyWithFallback(name string, fallback *AttributeKey) *AttributeKey {
	k := AttrKey(name)
	attrKeysMu.Lock()
	defer attrKeysMu.Unlock()
	if k.fallback != nil {
		return k
	}
	// The chain starting at fallback is acyclic here, so this terminates.
	for f := fallback; f != nil; f = f.fallback {
		if f == k {
			return k
		}
	}
	k.fallback = fallback
	return k
}

// TextKey is the base text slot. Nearly every syntax key falls back to it,
// directly or through a chain.
var TextKey = AttrKey("TEXT")

// Standard syntax keys used by the bundled schemes and the preview pane.
var (
	KeywordKey    = AttrKeyWithFallback("DEFAULT_KEYWORD", TextKey)
	IdentifierKey = AttrKeyWithFallback("DEFAULT_IDENTIFIER", TextKey)
	StringKey     = AttrKeyWithFallback("DEFAULT_STRING", TextKey)
	NumberKey     = AttrKeyWithFallback("DEFAULT_NUMBER", TextKey)
	CommentKey    = AttrKeyWithFallback("DEFAULT_LINE_COMMENT", TextKey)
	ConstantKey   = AttrKeyWithFallback("DEFAULT_CONSTANT", IdentifierKey)
	FunctionKey   = AttrKeyWithFallback("DEFAULT_FUNCTION_DECLARATION", IdentifierKey)
	OperatorKey   = AttrKeyWithFallback("DEFAULT_OPERATION_SIGN", TextKey)
)

// Inspection keys referenced by the stripe color migration.
var (
	ErrorsKey                   = AttrKey("ERRORS_ATTRIBUTES")
	WarningsKey                 = AttrKey("WARNING_ATTRIBUTES")
	ExecutionPointKey           = AttrKey("EXECUTIONPOINT_ATTRIBUTES")
	IdentifierUnderCaretKey     = AttrKey("IDENTIFIER_UNDER_CARET_ATTRIBUTES")
	WriteIdentifierUnderCaret   = AttrKey("WRITE_IDENTIFIER_UNDER_CARET_ATTRIBUTES")
	TextSearchResultKey         = AttrKey("TEXT_SEARCH_RESULT_ATTRIBUTES")
	TodoDefaultKey              = AttrKey("TODO_DEFAULT_ATTRIBUTES")
)
