package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tgienger/taskboard/internal/models"
)

// NoTasks is written instead of a CSV table when there is nothing to list
const NoTasks = "No tasks to export"

var csvHeader = []string{
	"Title", "Description", "Status", "Priority", "Category",
	"Assignee", "Due Date", "Created At", "Completed At", "Project",
}

func writeCSV(w io.Writer, s models.State, scope Scope) error {
	tasks := tasksIn(s, scope)
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, NoTasks)
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		row := []string{
			t.Title,
			t.Description,
			string(t.Status),
			string(t.Priority),
			t.Category,
			t.Assignee,
			t.DueDateString(),
			timestamp(&t.CreatedAt),
			timestamp(t.CompletedAt),
			projectName(s, t),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
