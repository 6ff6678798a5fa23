// Package styles holds the colour palette and lipgloss styles used when qd
// writes to a terminal.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	White = lipgloss.Color("#E2E2E2")
	Gray  = lipgloss.Color("#888888")
	Muted = lipgloss.Color("#555555")
	Blue  = lipgloss.Color("#5FAFFF")

	// Status
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)
