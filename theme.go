package main

import "github.com/charmbracelet/lipgloss"

// -- Colors ---------------------------------------------------------------
// All colors use AdaptiveColor for dark/light terminal support. Light
// values: ANSI 0-15 for accents (palette-adaptive), 256-color for grays
// (predictable). Dark values: ANSI 256-color codes tuned for dark
// backgrounds. ANSI 7/15 (white) are invisible on light backgrounds --
// never use them for Light values.

var (
	// Text hierarchy
	ColorTextPrimary   = ac("0", "252")
	ColorTextSecondary = ac("8", "245")
	ColorTextDim       = ac("242", "243")
	ColorTextMuted     = ac("245", "240")

	// Accents
	ColorAccent = ac("4", "75")
	ColorError  = ac("1", "196")

	// Surfaces
	ColorBorder = ac("250", "60")

	// Session kinds (card icon tint)
	ColorKindShell  = ac("2", "114")
	ColorKindEditor = ac("4", "75")
	ColorKindRepl   = ac("5", "177")
	ColorKindBuild  = ac("3", "208")

	// Selected card
	ColorSelectedBorder = ac("4", "75")

	// Loading shimmer
	ColorShimmer = ac("254", "237")
)

// -- Semantic text styles -------------------------------------------------
// Safe to chain (.Width(), .Padding(), etc.) since lipgloss styles are
// immutable value types -- each method returns a copy.

var (
	StylePrimaryBold = lipgloss.NewStyle().Bold(true).Foreground(ColorTextPrimary)
	StyleSecondary   = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	StyleDim         = lipgloss.NewStyle().Foreground(ColorTextDim)
	StyleMuted       = lipgloss.NewStyle().Foreground(ColorTextMuted)
	StyleAccentBold  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	StyleError       = lipgloss.NewStyle().Foreground(ColorError)
)

// ac is a shorthand constructor for lipgloss.AdaptiveColor.
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}
