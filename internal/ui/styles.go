package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/batch-tui/internal/model"
)

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")
	ColorText      = lipgloss.Color("#F9FAFB")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleMatch = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FCD34D")).
			Background(lipgloss.Color("#78350F"))
)

func StatusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusSucceeded, model.StatusForcedOK:
		return StyleSuccess
	case model.StatusFailed:
		return StyleFailure
	case model.StatusCancelled:
		return StyleWarning
	case model.StatusRunning:
		return StyleInfo
	default:
		return StyleMuted
	}
}

func StatusIcon(s model.Status) string {
	switch s {
	case model.StatusSucceeded:
		return StyleSuccess.Render("V")
	case model.StatusForcedOK:
		return StyleSuccess.Render("v")
	case model.StatusFailed:
		return StyleFailure.Render("X")
	case model.StatusCancelled:
		return StyleWarning.Render("!")
	case model.StatusRunning:
		return StyleInfo.Render("*")
	case model.StatusPending:
		return StyleMuted.Render("o")
	default:
		return StyleMuted.Render("?")
	}
}
