package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"golang.org/x/term"
)

// mdRenderer renders session notes for the inspect view. The style is
// resolved once at startup (background detection already happened in
// main); the glamour renderer itself is rebuilt only when the render
// width changes.
type mdRenderer struct {
	style    ansi.StyleConfig
	renderer *glamour.TermRenderer
	width    int
}

func newMDRenderer(hasDarkBg bool) *mdRenderer {
	style := styles.LightStyleConfig
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		style = styles.NoTTYStyleConfig
	} else if hasDarkBg {
		style = styles.DarkStyleConfig
	}
	// The inspect layout indents notes itself.
	style.Document.Margin = uintPtr(0)
	return &mdRenderer{style: style}
}

func uintPtr(v uint) *uint { return &v }

// render renders markdown at the given width, returning the content
// unchanged when rendering is impossible.
func (r *mdRenderer) render(content string, width int) string {
	if width <= 0 {
		return content
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStyles(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		r.renderer = renderer
		r.width = width
	}
	out, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}
