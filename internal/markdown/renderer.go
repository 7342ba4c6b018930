package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// RendererConfig controls how entry bodies render to HTML.
type RendererConfig struct {
	// HardWraps turns single newlines into <br> tags, matching how journal
	// bodies are typically written.
	HardWraps bool
	// Unsafe allows raw HTML through. Entry bodies are author-trusted, so the
	// default configuration enables it.
	Unsafe bool
}

// Renderer converts journal entry markdown into HTML. It is stateless and safe
// for concurrent use.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer constructs a renderer with GFM extensions.
func NewRenderer(cfg RendererConfig) *Renderer {
	rendererOptions := []renderer.Option{}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if cfg.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.TaskList),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	return &Renderer{engine: goldmark.New(engineOptions...)}
}

// Render satisfies the journal service's body renderer contract.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}
