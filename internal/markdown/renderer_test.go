package markdown_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-planner/internal/markdown"
)

func TestRendererConvertsGFM(t *testing.T) {
	r := markdown.NewRenderer(markdown.RendererConfig{})

	html, err := r.Render("# Morning\n\nCoffee with ~~tea~~ **milk**.\n\n- [x] water the plants")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(html, "<h1 id=\"morning\">Morning</h1>") {
		t.Fatalf("expected heading with auto id, got %q", html)
	}
	if !strings.Contains(html, "<del>tea</del>") {
		t.Fatalf("expected strikethrough, got %q", html)
	}
	if !strings.Contains(html, "checkbox") {
		t.Fatalf("expected task list checkbox, got %q", html)
	}
}

func TestRendererHardWraps(t *testing.T) {
	r := markdown.NewRenderer(markdown.RendererConfig{HardWraps: true})

	html, err := r.Render("line one\nline two")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<br") {
		t.Fatalf("expected hard break, got %q", html)
	}
}

func TestRendererRawHTML(t *testing.T) {
	safe := markdown.NewRenderer(markdown.RendererConfig{})
	html, err := safe.Render("before <mark>kept</mark> after")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<mark>") {
		t.Fatalf("expected raw html escaped by default, got %q", html)
	}

	unsafe := markdown.NewRenderer(markdown.RendererConfig{Unsafe: true})
	html, err = unsafe.Render("before <mark>kept</mark> after")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<mark>kept</mark>") {
		t.Fatalf("expected raw html preserved, got %q", html)
	}
}
