package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/ui"
)

func RenderStatusBar(status string, isErr bool, hints string, width int) string {
	statusStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	if isErr {
		statusStyle = lipgloss.NewStyle().Foreground(ui.ColorFailure)
	}
	left := statusStyle.Render("  " + status)

	help := lipgloss.NewStyle().Foreground(ui.ColorMuted).
		Render(hints + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#111827")).
		Width(width).
		Render(left + padding + help)
}

// RenderActionBar shows the action buttons, dimming the ones the selected
// row does not permit.
func RenderActionBar(a enquiry.Actions, width int) string {
	on := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	off := lipgloss.NewStyle().Foreground(ui.ColorBorder).Strikethrough(true)

	button := func(enabled bool, k, label string) string {
		if enabled {
			return on.Render("[" + k + "] " + label)
		}
		return off.Render("[" + k + "] " + label)
	}

	buttons := []string{
		button(a.Rerun, "R", enquiry.ActionRerun.String()),
		button(a.ForceOK, "F", enquiry.ActionForceOK.String()),
		button(a.Cancel, "C", enquiry.ActionCancel.String()),
		button(a.History, "h", enquiry.ActionHistory.String()),
	}
	return lipgloss.NewStyle().
		Width(width).
		Render("  " + strings.Join(buttons, "  "))
}
