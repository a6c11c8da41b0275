// Package markdown renders the embedded help text for the overlay. Renders
// are cached by content hash because the overlay re-renders on every frame
// while open.
package markdown

import (
	"log"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
)

const (
	// MinWidthForMarkdown is the minimum terminal width for markdown
	// rendering. Below this, falls back to plain text wrapping.
	MinWidthForMarkdown = 30

	// MaxCacheEntries is the maximum number of cached renders before eviction.
	MaxCacheEntries = 50
)

// Renderer wraps Glamour with a render cache. The glamour style follows the
// active color scheme (dark schemes get the dark style) via SetStyle.
type Renderer struct {
	mu        sync.RWMutex
	renderer  *glamour.TermRenderer
	lastWidth int
	style     string
	cache     map[uint64][]string
}

// NewRenderer creates a renderer using the given glamour style name
// ("dark" or "light").
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "dark"
	}
	return &Renderer{
		style: style,
		cache: make(map[uint64][]string),
	}
}

// SetStyle switches the glamour style, invalidating cached renders when it
// actually changes.
func (r *Renderer) SetStyle(style string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if style == "" || style == r.style {
		return
	}
	r.style = style
	r.renderer = nil
	r.cache = make(map[uint64][]string)
}

// RenderContent renders markdown content to styled lines.
func (r *Renderer) RenderContent(content string, width int) []string {
	if width < MinWidthForMarkdown {
		return WrapText(content, width)
	}
	if content == "" {
		return []string{}
	}

	key := cacheKey(content, width)

	r.mu.RLock()
	if cached, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := r.getOrCreateRenderer(width)
	if err != nil {
		log.Printf("glamour renderer error: %v", err)
		return WrapText(content, width)
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		log.Printf("glamour render error: %v", err)
		return WrapText(content, width)
	}

	rendered = strings.TrimRight(rendered, "\n\r\t ")
	lines := strings.Split(rendered, "\n")

	if len(r.cache) >= MaxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	return lines
}

// cacheKey hashes content and width with xxhash.
func cacheKey(content string, width int) uint64 {
	h := xxhash.New()
	h.WriteString(content)
	h.Write([]byte{byte(width >> 8), byte(width)})
	return h.Sum64()
}

// getOrCreateRenderer lazily creates or recreates the renderer for the given
// width. Must be called with write lock held.
func (r *Renderer) getOrCreateRenderer(width int) (*glamour.TermRenderer, error) {
	if r.renderer != nil && r.lastWidth == width {
		return r.renderer, nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	r.renderer = renderer
	r.lastWidth = width
	r.cache = make(map[uint64][]string) // Clear cache on width change
	return renderer, nil
}

// WrapText wraps text to fit within maxWidth. Used as fallback when the
// terminal is too narrow for markdown rendering.
func WrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	text = strings.ReplaceAll(text, "\n", " ")

	var lines []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	currentLine := words[0]
	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= maxWidth {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}
