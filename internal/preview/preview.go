// Package preview renders a syntax-highlighted code sample in the colors of
// a scheme, so switching schemes in the list shows their effect immediately.
package preview

import (
	"embed"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/schemer/internal/scheme"
)

//go:embed samples/*.txt
var sampleFiles embed.FS

// Sample returns the embedded snippet for a language, falling back to the
// Go sample for languages without one.
func Sample(language string) string {
	data, err := sampleFiles.ReadFile("samples/" + language + ".txt")
	if err != nil {
		data, _ = sampleFiles.ReadFile("samples/go.txt")
	}
	return string(data)
}

// Renderer highlights one sample with one scheme's attributes.
type Renderer struct {
	lexer  chroma.Lexer
	scheme *scheme.Scheme
	sample string
}

// New builds a renderer for the configured preview language. An unknown
// language degrades to the plaintext lexer over the Go sample.
func New(language string, s *scheme.Scheme) *Renderer {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return &Renderer{
		lexer:  chroma.Coalesce(lexer),
		scheme: s,
		sample: Sample(language),
	}
}

// SetScheme switches the scheme the renderer resolves attributes against.
func (r *Renderer) SetScheme(s *scheme.Scheme) { r.scheme = s }

// tokenKey maps a chroma token type to the attribute slot the scheme
// resolves it through. Anything unrecognized renders as base text.
func tokenKey(t chroma.TokenType) *scheme.AttributeKey {
	switch {
	case t.InCategory(chroma.Keyword):
		return scheme.KeywordKey
	case t.InCategory(chroma.Comment):
		return scheme.CommentKey
	case t.InSubCategory(chroma.LiteralString):
		return scheme.StringKey
	case t.InSubCategory(chroma.LiteralNumber):
		return scheme.NumberKey
	case t == chroma.NameFunction:
		return scheme.FunctionKey
	case t == chroma.NameConstant:
		return scheme.ConstantKey
	case t.InCategory(chroma.Operator):
		return scheme.OperatorKey
	case t.InCategory(chroma.Name):
		return scheme.IdentifierKey
	default:
		return scheme.TextKey
	}
}

// styleFor turns a resolved attribute record into a lipgloss style over the
// scheme's default colors.
func (r *Renderer) styleFor(key *scheme.AttributeKey) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(r.scheme.DefaultForeground().Term())).
		Background(lipgloss.Color(r.scheme.DefaultBackground().Term()))

	attrs := r.scheme.Attributes(key)
	if attrs == nil {
		return style
	}
	if attrs.Foreground != nil {
		style = style.Foreground(lipgloss.Color(attrs.Foreground.Term()))
	}
	if attrs.Background != nil {
		style = style.Background(lipgloss.Color(attrs.Background.Term()))
	}
	if attrs.FontStyle&scheme.FontBold != 0 {
		style = style.Bold(true)
	}
	if attrs.FontStyle&scheme.FontItalic != 0 {
		style = style.Italic(true)
	}
	if attrs.EffectColor != nil &&
		(attrs.EffectType == scheme.EffectUnderscore || attrs.EffectType == scheme.EffectBoldUnderscore) {
		style = style.Underline(true)
	}
	return style
}

// Lines tokenizes the sample and returns one styled string per source line,
// each padded to width with the scheme's default background.
func (r *Renderer) Lines(width int) []string {
	iterator, err := r.lexer.Tokenise(nil, r.sample)
	if err != nil {
		return strings.Split(r.sample, "\n")
	}

	background := lipgloss.NewStyle().
		Background(lipgloss.Color(r.scheme.DefaultBackground().Term()))

	var lines []string
	var current strings.Builder
	currentWidth := 0
	flush := func() {
		pad := width - currentWidth
		if pad > 0 {
			current.WriteString(background.Render(strings.Repeat(" ", pad)))
		}
		lines = append(lines, current.String())
		current.Reset()
		currentWidth = 0
	}

	for _, token := range iterator.Tokens() {
		style := r.styleFor(tokenKey(token.Type))
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			if part == "" {
				continue
			}
			current.WriteString(style.Render(part))
			currentWidth += lipgloss.Width(part)
		}
	}
	if currentWidth > 0 {
		flush()
	}
	return lines
}

// Render joins the styled lines into one block.
func (r *Renderer) Render(width int) string {
	return strings.Join(r.Lines(width), "\n")
}
