package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/ui"
)

// Render lays out one job instance for the detail dialog.
func Render(r model.JobInstance) string {
	bold := lipgloss.NewStyle().Bold(true)
	label := lipgloss.NewStyle().Foreground(ui.ColorMuted).Width(18)
	value := lipgloss.NewStyle().Foreground(ui.ColorText)

	row := func(l, v string) string {
		if v == "" {
			v = "-"
		}
		return label.Render(l) + value.Render(v) + "\n"
	}

	var b strings.Builder

	b.WriteString(bold.Render(fmt.Sprintf("#%d %s", r.ID, r.JobName)) + "\n\n")
	b.WriteString(label.Render("Status") + ui.StatusIcon(r.Status) + " " +
		ui.StatusStyle(r.Status).Render(r.Status.Label()) + "\n")
	b.WriteString(row("Process date", r.ProcessDate.String()))
	b.WriteString(row("Priority", fmt.Sprintf("%d", r.Priority)))
	if r.HasParent() {
		b.WriteString(row("Parent", fmt.Sprintf("#%d", r.ParentID)))
	}
	b.WriteString(row("Job group", r.GroupJob))
	b.WriteString(row("Arguments", r.ExtraArgs))
	b.WriteString("\n")

	b.WriteString(bold.Render("Batch") + "\n\n")
	b.WriteString(row("Batch", joinID(r.BatchID, r.BatchName)))
	if r.BatchInstanceID > 0 {
		b.WriteString(row("Batch instance", fmt.Sprintf("#%d", r.BatchInstanceID)))
	}
	if r.BatchInstanceStatus != "" {
		b.WriteString(label.Render("Batch status") +
			ui.StatusStyle(r.BatchInstanceStatus).Render(r.BatchInstanceStatus.Label()) + "\n")
	}
	b.WriteString(row("Batch group", r.GroupBatch))
	b.WriteString(row("Batch run date", r.BatchRunDate.String()))
	b.WriteString(row("Instance run at", formatTime(r.BatchInstanceRunDate.Time)))
	b.WriteString("\n")

	b.WriteString(row("Last changed by", r.StampBy))
	b.WriteString(row("Last changed at", formatTime(r.StampTime.Time)))

	return strings.TrimRight(b.String(), "\n")
}

func joinID(id, name string) string {
	switch {
	case id != "" && name != "" && id != name:
		return fmt.Sprintf("%s (%s)", name, id)
	case name != "":
		return name
	}
	return id
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
