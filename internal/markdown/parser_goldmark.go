package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderOptions configures the goldmark engine.
type RenderOptions struct {
	Extensions []string
	HardWraps  bool
	// Unsafe lets raw HTML in listing bodies through. Off by default because
	// listing bodies come from imported files.
	Unsafe bool
}

// GoldmarkRenderer implements interfaces.MarkdownRenderer. The engine is
// built once and reused; goldmark engines are safe for concurrent use.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
}

func NewGoldmarkRenderer(opts RenderOptions) *GoldmarkRenderer {
	return &GoldmarkRenderer{engine: newGoldmarkEngine(opts)}
}

// Render converts markdown to HTML. Empty input renders to nil.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	if len(bytes.TrimSpace(markdown)) == 0 {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts RenderOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
	"typographer":   extension.Typographer,
}

// collectExtensions maps names to goldmark extenders. Unknown names are
// ignored; no names selects GFM and Linkify.
func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM, extension.Linkify}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
