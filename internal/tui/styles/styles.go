package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	// Header is used for table column headings.
	Header = lipgloss.NewStyle().
		Foreground(White).
		Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	AccentText = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)
)

// StatusStyle returns the style for a server or project status value.
// Matching is case-insensitive.
func StatusStyle(status string) lipgloss.Style {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "online", "running", "active", "ready", "connected":
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case "pending", "provisioning", "deploying", "installing", "creating", "starting":
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	case "offline", "stopped", "failed", "error", "disconnected", "unreachable":
		return lipgloss.NewStyle().Foreground(Red)
	default:
		return lipgloss.NewStyle().Foreground(Gray)
	}
}

// StatusIndicator returns a small dot + status text with appropriate color.
func StatusIndicator(status string) string {
	style := StatusStyle(status)
	return style.Render("●") + " " + style.Render(status)
}
