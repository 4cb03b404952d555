package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/batch-tui/internal/enquiry"
	"github.com/altinukshini/batch-tui/internal/ui"
)

func RenderHeader(server string, f enquiry.Fields, width int) string {
	left := ui.StyleHeader.Render("batch-tui") +
		lipgloss.NewStyle().Bold(true).Foreground(ui.ColorText).Render(" "+server)

	right := ""
	if s := criteriaSummary(f); s != "" {
		right = lipgloss.NewStyle().Foreground(ui.ColorInfo).Render(s + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(ui.ColorHighlight).
		Width(width).
		Render(left + padding + right)
}

// criteriaSummary returns a short description of the active criteria.
func criteriaSummary(f enquiry.Fields) string {
	var parts []string
	add := func(name, v string) {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, name+":"+v)
		}
	}
	add("status", f.Status)
	add("job", f.JobID)
	add("batch", f.BatchID)
	add("instance", f.JobInstanceID)
	add("batch#", f.BatchInstanceID)
	add("jobgroup", f.JobGroup)
	add("batchgroup", f.BatchGroup)
	if f.DateFrom != "" || f.DateTo != "" {
		parts = append(parts, fmt.Sprintf("%s..%s", f.DateFrom, f.DateTo))
	}
	if f.Offset != "" && f.Offset != "0" {
		add("offset", f.Offset)
	}
	return strings.Join(parts, " ")
}
