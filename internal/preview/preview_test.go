package preview

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/schemer/internal/scheme"
)

func testScheme() *scheme.Scheme {
	s := scheme.New("Preview Test")
	s.SetAttributes(scheme.TextKey, &scheme.TextAttributes{
		Foreground: &scheme.Color{R: 0xa9, G: 0xb7, B: 0xc6},
		Background: &scheme.Color{R: 0x2b, G: 0x2b, B: 0x2b},
	})
	s.SetAttributes(scheme.KeywordKey, &scheme.TextAttributes{
		Foreground: &scheme.Color{R: 0xcc, G: 0x78, B: 0x32},
		FontStyle:  scheme.FontBold,
	})
	return s
}

func TestTokenKeyMapping(t *testing.T) {
	cases := []struct {
		token chroma.TokenType
		want  *scheme.AttributeKey
	}{
		{chroma.Keyword, scheme.KeywordKey},
		{chroma.KeywordType, scheme.KeywordKey},
		{chroma.CommentSingle, scheme.CommentKey},
		{chroma.LiteralStringDouble, scheme.StringKey},
		{chroma.LiteralNumberInteger, scheme.NumberKey},
		{chroma.NameFunction, scheme.FunctionKey},
		{chroma.NameConstant, scheme.ConstantKey},
		{chroma.Operator, scheme.OperatorKey},
		{chroma.Name, scheme.IdentifierKey},
		{chroma.Text, scheme.TextKey},
		{chroma.Punctuation, scheme.TextKey},
	}
	for _, c := range cases {
		if got := tokenKey(c.token); got != c.want {
			t.Errorf("tokenKey(%v) = %v, want %v", c.token, got, c.want)
		}
	}
}

func TestStyleResolvesThroughFallback(t *testing.T) {
	r := New("go", testScheme())

	// Identifiers have no record of their own: the fallback chain lands on
	// the base text foreground.
	style := r.styleFor(scheme.IdentifierKey)
	if got := style.GetForeground(); got != lipgloss.Color("#a9b7c6") {
		t.Errorf("identifier foreground = %v, want base text color", got)
	}

	keyword := r.styleFor(scheme.KeywordKey)
	if got := keyword.GetForeground(); got != lipgloss.Color("#cc7832") {
		t.Errorf("keyword foreground = %v", got)
	}
	if !keyword.GetBold() {
		t.Error("keyword style must be bold")
	}
}

func TestLinesMatchSample(t *testing.T) {
	r := New("go", testScheme())
	lines := r.Lines(40)

	sampleLines := strings.Split(strings.TrimRight(Sample("go"), "\n"), "\n")
	if len(lines) != len(sampleLines) {
		t.Errorf("Lines = %d lines, sample has %d", len(lines), len(sampleLines))
	}
	if !strings.Contains(lines[0], "Package mail") {
		t.Errorf("first line lost its text: %q", lines[0])
	}
}

func TestSampleFallsBackToGo(t *testing.T) {
	if got := Sample("no-such-language"); got != Sample("go") {
		t.Error("unknown language must fall back to the Go sample")
	}
	if !strings.Contains(Sample("python"), "MAX_RETRIES") {
		t.Error("python sample missing")
	}
}

func TestUnknownLanguageUsesFallbackLexer(t *testing.T) {
	r := New("no-such-language", testScheme())
	if lines := r.Lines(40); len(lines) == 0 {
		t.Error("fallback lexer produced no lines")
	}
}
