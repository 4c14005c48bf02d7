package main

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/colorprofile"
)

// jsonHL syntax-highlights the session meta record for the inspect view.
// Constructed once; chroma objects are safe for reuse.
type jsonHL struct {
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
}

func newJSONHL(hasDarkBg bool) *jsonHL {
	styleName := "github"
	if hasDarkBg {
		styleName = "dracula"
	}

	// Pick the chroma terminal formatter matching the detected profile.
	var formatterName string
	switch colorprofile.Detect(os.Stderr, os.Environ()) {
	case colorprofile.TrueColor:
		formatterName = "terminal16m"
	case colorprofile.ANSI256:
		formatterName = "terminal256"
	case colorprofile.ANSI:
		formatterName = "terminal16"
	default:
		formatterName = "terminal"
	}

	return &jsonHL{
		lexer:     chroma.Coalesce(lexers.Get("json")),
		formatter: formatters.Get(formatterName),
		style:     styles.Get(styleName),
	}
}

// highlight pretty-prints and highlights a JSON document. Returns
// ("", false) for invalid input so the caller can fall back to plain text.
func (h *jsonHL) highlight(raw []byte) (string, bool) {
	if !json.Valid(raw) {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", false
	}

	iterator, err := h.lexer.Tokenise(nil, buf.String())
	if err != nil {
		return "", false
	}

	var out bytes.Buffer
	if err := h.formatter.Format(&out, h.style, iterator); err != nil {
		return "", false
	}
	return out.String(), true
}
