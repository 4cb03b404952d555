package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/altinukshini/batch-tui/internal/model"
	"github.com/altinukshini/batch-tui/internal/tui/grid"
	"github.com/altinukshini/batch-tui/internal/ui"
)

func newListCmd(opts *options) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Run the default search once and print the result",
		Long: `list runs the same search the enquiry screen opens with, including
--status, --job-instance and --batch-instance, and prints it as a table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open()
			if err != nil {
				return err
			}
			defer s.Close()

			f := s.screen.Load()
			if limit > 0 {
				f.Limit = strconv.Itoa(limit)
			}
			if offset > 0 {
				f.Offset = strconv.Itoa(offset)
			}
			s.screen.SetFields(f)

			if err := s.screen.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(s.screen.Rows()))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	return cmd
}

func renderTable(rows []model.JobInstance) string {
	if len(rows) == 0 {
		return grid.EmptyMessage
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ui.ColorBorder)).
		Headers("ID", "JOB", "STATUS", "PROCESS DATE", "BATCH", "BATCH INSTANCE", "PARENT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range rows {
		t.Row(
			strconv.FormatInt(r.ID, 10),
			r.JobName,
			r.Status.Label(),
			r.ProcessDate.String(),
			r.BatchName,
			optionalID(r.BatchInstanceID),
			optionalID(r.ParentID),
		)
	}
	return t.String()
}

func optionalID(id int64) string {
	if id <= 0 {
		return "-"
	}
	return strconv.FormatInt(id, 10)
}
