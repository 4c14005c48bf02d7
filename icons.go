package main

// UI chrome glyphs. Session-kind glyphs live in the recents package (they
// are enrichment data, not chrome). Standard Unicode symbols for maximum
// terminal compatibility.
const (
	IconDot     = "·" // separator dot
	IconShimmer = "░" // loading placeholder fill
)
