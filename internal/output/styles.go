package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: project names, artifact paths, versions.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "built" step status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" step status.
	ColorYellow = lipgloss.Color("220")

	// colorBoldRed is used for the "failed" step status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// colorGreenCheck is used for the completion checkmark.
	colorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Build step status constants.
const (
	StatusBuilt     = "built"
	StatusInstalled = "installed"
	StatusSkipped   = "skipped"
	statusFailed    = "failed"
)

// StatusStyle returns the style for a build step status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusBuilt, StatusInstalled:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case statusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minStepColumnWidth keeps status words aligned across step lines.
const minStepColumnWidth = 40

// FormatStepLine renders a build step with a right-aligned status.
//
// Format: t:<step>  <status>
func FormatStepLine(step, status string) string {
	padding := minStepColumnWidth - len(step)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("t:") +
		StyleNoun.Render(step) +
		strings.Repeat(" ", padding) +
		StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(colorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatBytes renders a byte count with a binary unit, e.g. "1.5 KiB".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
