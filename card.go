package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlowery2/taskdeck/recents"
)

// card is the visual container behind one deck slot. It implements
// binder.Surface: the binder pushes icon/label/thumbnail into it and the
// view reads them back out each frame. All mutation happens on the update
// loop, so no locking.
type card struct {
	loading bool
	icon    string
	label   string
	thumb   []string
}

func (c *card) ShowLoading() {
	c.loading = true
	c.icon, c.label, c.thumb = "", "", nil
}

func (c *card) Reset() {
	c.loading = false
	c.icon, c.label, c.thumb = "", "", nil
}

func (c *card) SetIcon(icon string)         { c.icon = icon }
func (c *card) SetLabel(label string)       { c.label = label }
func (c *card) SetThumbnail(lines []string) { c.thumb = lines }

// iconColor tints a session-kind glyph.
func iconColor(icon string) lipgloss.AdaptiveColor {
	switch icon {
	case recents.IconShell:
		return ColorKindShell
	case recents.IconEditor:
		return ColorKindEditor
	case recents.IconRepl:
		return ColorKindRepl
	case recents.IconBuild:
		return ColorKindBuild
	}
	return ColorTextSecondary
}

// renderCard renders one deck card: a bordered box with a title line
// (icon + label + relative last-use time) and the thumbnail lines. The
// task may be nil while the card shows the loading placeholder.
func renderCard(c *card, task *recents.Task, width int, selected bool) string {
	inner := width - 4 // border (2) + padding (2)
	if inner < 16 {
		inner = 16
	}

	var lines []string
	if c.loading {
		shimmer := lipgloss.NewStyle().Foreground(ColorShimmer)
		lines = append(lines,
			shimmer.Render(strings.Repeat(IconShimmer, inner/2)),
			shimmer.Render(strings.Repeat(IconShimmer, inner)),
		)
	} else {
		lines = append(lines, cardTitleLine(c, task, inner))
		for _, t := range c.thumb {
			lines = append(lines, StyleDim.Render(clampLine(t, inner)))
		}
		if len(c.thumb) == 0 {
			lines = append(lines, StyleMuted.Render("no output"))
		}
	}

	borderColor := ColorBorder
	if selected {
		borderColor = ColorSelectedBorder
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2)

	return box.Render(strings.Join(lines, "\n"))
}

// cardTitleLine builds "icon label ........ 2m ago" inside inner width.
func cardTitleLine(c *card, task *recents.Task, inner int) string {
	icon := c.icon
	label := c.label
	if icon == "" {
		// Bound but not yet enriched: non-animated placeholder.
		icon = IconDot
	}
	if label == "" {
		label = "…"
	}

	left := lipgloss.NewStyle().Foreground(iconColor(c.icon)).Render(icon) +
		" " + StylePrimaryBold.Render(clampLine(label, inner-12))

	right := ""
	if task != nil && !task.LastUsed.IsZero() {
		right = StyleMuted.Render(relativeTime(task.LastUsed))
	}
	return spaceBetween(left, right, inner)
}

// clampLine truncates s to at most max runes with an ellipsis.
func clampLine(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// spaceBetween lays out left and right with padding so the pair spans
// width display cells. When they don't fit, right is dropped.
func spaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// relativeTime formats a time as a human-readable relative duration.
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
