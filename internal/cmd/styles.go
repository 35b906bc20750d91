package cmd

import (
	"github.com/ccgadget/ccgadget/internal/hooksetup"
	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// resultLine renders one setup-hook outcome
func resultLine(o hooksetup.Outcome) string {
	switch o.Result {
	case hooksetup.ResultAdded:
		verb := "added"
		switch o.Decision {
		case hooksetup.DecisionReplace:
			verb = "replaced existing hooks"
		case hooksetup.DecisionAppend:
			verb = "appended"
		}
		return successStyle.Render("   ✅ "+o.Event+": ") + verb
	case hooksetup.ResultAlreadyExists:
		return mutedStyle.Render("   ✔ " + o.Event + ": already configured")
	case hooksetup.ResultSkipped:
		return warnStyle.Render("   ⏭️  " + o.Event + ": skipped")
	default:
		return "   ? " + o.Event
	}
}
