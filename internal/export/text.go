package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tgienger/taskboard/internal/board"
	"github.com/tgienger/taskboard/internal/models"
)

const ReportTitle = "TaskBoard Export Report"

func writeText(w io.Writer, s models.State, scope Scope, now time.Time) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, ReportTitle)
	fmt.Fprintln(bw, strings.Repeat("=", 50))
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Export Date: %s\n\n", now.Format("2006-01-02 15:04:05"))

	if scope != ScopeProjects {
		tasks := tasksIn(s, scope)
		done := len(completed(tasks))

		fmt.Fprintf(bw, "TOTAL TASKS: %d\n", len(tasks))
		fmt.Fprintf(bw, "COMPLETED TASKS: %d\n", done)
		fmt.Fprintf(bw, "COMPLETION RATE: %d%%\n\n", board.Rate(done, len(tasks)))

		fmt.Fprintln(bw, "TASK DETAILS:")
		fmt.Fprintln(bw, strings.Repeat("-", 30))
		for i, t := range tasks {
			writeTask(bw, s, i+1, t)
		}
	}

	if scope == ScopeAll || scope == ScopeProjects {
		fmt.Fprintln(bw, "PROJECTS:")
		fmt.Fprintln(bw, strings.Repeat("-", 30))
		for i, p := range s.Projects {
			fmt.Fprintf(bw, "%d. %s\n", i+1, p.Name)
			if p.Description != "" {
				fmt.Fprintf(bw, "   Description: %s\n", p.Description)
			}
			fmt.Fprintf(bw, "   Color: %s\n\n", p.Color)
		}
	}

	return bw.Flush()
}

func writeTask(w io.Writer, s models.State, n int, t models.Task) {
	fmt.Fprintf(w, "%d. %s\n", n, t.Title)
	fmt.Fprintf(w, "   Status: %s\n", t.Status)
	fmt.Fprintf(w, "   Priority: %s\n", t.Priority)
	fmt.Fprintf(w, "   Category: %s\n", t.Category)
	if t.Assignee != "" {
		fmt.Fprintf(w, "   Assignee: %s\n", t.Assignee)
	}
	if t.DueDate != nil {
		fmt.Fprintf(w, "   Due Date: %s\n", t.DueDateString())
	}
	if name := projectName(s, t); name != "" {
		fmt.Fprintf(w, "   Project: %s\n", name)
	}
	if t.Description != "" {
		fmt.Fprintf(w, "   Description: %s\n", t.Description)
	}
	fmt.Fprintln(w)
}
