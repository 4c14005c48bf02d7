package recents

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Session kind glyphs. Standard Unicode symbols for terminal compatibility.
const (
	IconShell   = "❯"
	IconEditor  = "✎"
	IconRepl    = "λ"
	IconBuild   = "⚒"
	IconSession = "●" // unknown kind
)

// thumbnailLines is how many trailing output lines a thumbnail shows.
const thumbnailLines = 4

// thumbnailWidth caps thumbnail line length; the card renderer may trim
// further for narrow terminals.
const thumbnailWidth = 80

// kindIcons maps session kinds to glyphs.
var kindIcons = map[Kind]string{
	KindShell:  IconShell,
	KindEditor: IconEditor,
	KindRepl:   IconRepl,
	KindBuild:  IconBuild,
}

// deriveIconLabel re-reads the session's meta line and produces the kind
// glyph and display label. A file that can't be read anymore (or was
// rewritten into something unparseable) yields the generic glyph and the
// file basename, so the caller always has something to display.
func deriveIconLabel(path string) (icon, label string) {
	meta, err := readMeta(path)
	if err != nil {
		return IconSession, sessionBasename(path)
	}

	icon = kindIcons[Kind(meta.Kind)]
	if icon == "" {
		icon = IconSession
	}
	label = strings.TrimSpace(meta.Title)
	if label == "" {
		label = sessionBasename(path)
	}
	return icon, label
}

// deriveThumbnail reads the tail of the session's output and sanitizes it
// for display. Never nil-vs-error: an unreadable file is an empty thumbnail.
func deriveThumbnail(path string) []string {
	raw, err := readTail(path, thumbnailLines)
	if err != nil {
		return nil
	}
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		clean := sanitizeLine(line)
		if clean == "" {
			continue
		}
		lines = append(lines, truncateLine(clean, thumbnailWidth))
	}
	return lines
}

func sessionBasename(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".jsonl")
}

// ansiPattern matches CSI escape sequences (colors, cursor movement) that
// captured terminal output tends to carry.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// sanitizeLine strips ANSI escapes and control characters from a captured
// output line. Tabs become spaces; everything else below 0x20 is dropped.
func sanitizeLine(s string) string {
	s = ansiPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
	return strings.TrimRight(s, " ")
}

// truncateLine cuts s to at most max runes, appending an ellipsis when
// anything was removed.
func truncateLine(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
