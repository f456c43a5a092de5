package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/tgienger/taskboard/internal/board"
)

type statsReport struct {
	Board    board.Statistics       `json:"board"`
	Projects []board.ProjectSummary `json:"projects"`
}

func newStatsCmd(o *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print board and per-project statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.open()
			if err != nil {
				return err
			}
			defer rt.Close()

			s := rt.store.State()
			report := statsReport{
				Board:    board.Stats(s, time.Now()),
				Projects: board.ProjectStats(s),
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			st := report.Board
			fmt.Fprintln(out, renderTable(
				[]string{"Total", "To Do", "In Progress", "Done", "Overdue", "Completion"},
				[][]string{{
					strconv.Itoa(st.Total), strconv.Itoa(st.Todo), strconv.Itoa(st.InProgress),
					strconv.Itoa(st.Completed), strconv.Itoa(st.Overdue), fmt.Sprintf("%d%%", st.CompletionRate),
				}},
			))

			if len(report.Projects) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(report.Projects))
			for _, ps := range report.Projects {
				rows = append(rows, []string{
					ps.Project.Name,
					strconv.Itoa(ps.Total),
					strconv.Itoa(ps.Completed),
					fmt.Sprintf("%d%%", ps.CompletionRate),
				})
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderTable([]string{"Project", "Tasks", "Done", "Completion"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of tables")
	return cmd
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
