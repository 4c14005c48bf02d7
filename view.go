package main

import (
	"fmt"
	"strings"

	"github.com/mlowery2/taskdeck/recents"
)

// maxContentWidth caps how wide the deck renders on large terminals.
const maxContentWidth = 100

// statusBarHeight is the number of lines the status bar occupies.
const statusBarHeight = 1

func (m model) View() string {
	if m.view == viewInspect {
		return m.viewInspect()
	}
	return m.viewDeck()
}

// viewDeck renders the card deck screen.
func (m model) viewDeck() string {
	width := m.contentWidth()

	header := StyleAccentBold.Render("Recents")
	if !m.binder.Loading() {
		header += " " + StyleDim.Render(fmt.Sprintf("(%d)", m.bound))
	}
	header += "\n"

	var body string
	switch {
	case m.bound == 0 && m.statusErr != "":
		body = StyleError.Render(m.statusErr)
	case m.bound == 0:
		body = StyleDim.Render("No recent sessions.")
	default:
		blocks := make([]string, 0, m.bound)
		for i := 0; i < m.bound; i++ {
			task, _ := m.slots[i].Record().(*recents.Task)
			blocks = append(blocks, renderCard(m.cards[i], task, width, i == m.cursor))
		}
		body = strings.Join(blocks, "\n")
	}

	content := header + "\n" + body

	// Pad to fill the viewport so the status bar stays at the bottom.
	if m.height > 0 {
		rendered := strings.Count(content, "\n") + 1
		if pad := m.height - statusBarHeight - rendered; pad > 0 {
			content += strings.Repeat("\n", pad)
		}
	}

	status := m.renderStatusBar(
		"j/k", "nav",
		"enter", "resume",
		"i", "inspect",
		"r", "refresh",
		"q", "quit",
	)
	return content + "\n" + status
}

// renderStatusBar renders alternating key/description hint pairs.
func (m model) renderStatusBar(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts,
			StyleSecondary.Render(pairs[i])+" "+StyleMuted.Render(pairs[i+1]))
	}
	bar := "  " + strings.Join(parts, " "+StyleMuted.Render(IconDot)+" ")
	if m.statusErr != "" && m.bound > 0 {
		bar += "  " + StyleError.Render(m.statusErr)
	}
	return bar
}

// contentWidth clamps the render width.
func (m model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = maxContentWidth
	}
	if width > maxContentWidth {
		width = maxContentWidth
	}
	return width
}
