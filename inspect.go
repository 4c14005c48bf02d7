package main

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// viewInspect renders the full-screen session detail: the meta record as
// highlighted JSON, the session notes as markdown, and the recent output.
func (m model) viewInspect() string {
	task := m.inspect
	if task == nil {
		return ""
	}
	width := m.contentWidth()

	icon := lipgloss.NewStyle().Foreground(iconColor(task.Icon())).Render(task.Icon())
	title := task.Title
	if title == "" {
		title = task.Label()
	}
	header := icon + " " + StylePrimaryBold.Render(title) +
		"  " + StyleMuted.Render(relativeTime(task.LastUsed))

	var sections []string
	sections = append(sections, header)

	sections = append(sections, StyleSecondary.Render("Record"))
	sections = append(sections, m.renderMeta())

	if task.Notes != "" {
		sections = append(sections, StyleSecondary.Render("Notes"))
		sections = append(sections, m.md.render(task.Notes, width-2))
	}

	if thumb := task.Thumbnail(); len(thumb) > 0 {
		sections = append(sections, StyleSecondary.Render("Recent output"))
		for _, line := range thumb {
			sections = append(sections, "  "+StyleDim.Render(line))
		}
	}

	content := strings.Join(sections, "\n\n")

	if m.height > 0 {
		rendered := strings.Count(content, "\n") + 1
		if pad := m.height - statusBarHeight - rendered; pad > 0 {
			content += strings.Repeat("\n", pad)
		}
	}

	status := m.renderStatusBar(
		"enter", "resume",
		"q/esc", "back",
	)
	return content + "\n" + status
}

// renderMeta marshals the inspected session's meta fields and highlights
// them as JSON.
func (m model) renderMeta() string {
	t := m.inspect
	raw, err := json.Marshal(struct {
		ID      int      `json:"id"`
		Title   string   `json:"title"`
		Kind    string   `json:"kind"`
		Command []string `json:"command"`
		Path    string   `json:"path"`
	}{
		ID:      t.ID,
		Title:   t.Title,
		Kind:    string(t.Kind),
		Command: t.Command,
		Path:    t.Path,
	})
	if err != nil {
		return StyleDim.Render(t.Path)
	}
	if hl, ok := m.hl.highlight(raw); ok {
		return hl
	}
	return StyleDim.Render(string(raw))
}
