package viz

import "github.com/charmbracelet/lipgloss"

var (
	Header = lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")).
		Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Width(12)

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	Good = lipgloss.NewStyle().
		Foreground(lipgloss.Color("78")).
		Bold(true)

	Warn = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Bold(true)

	Graph = lipgloss.NewStyle().
		Foreground(lipgloss.Color("49"))

	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
)

// Status renders the outcome of a solve: green when converged, amber when
// the iteration budget ran out first.
func Status(converged bool) string {
	if converged {
		return Good.Render("CONVERGED")
	}
	return Warn.Render("BUDGET EXHAUSTED")
}
