package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/taskboard/internal/models"
)

var now = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func sample() models.State {
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	done := time.Date(2024, 6, 2, 18, 0, 0, 0, time.UTC)
	due := models.Date(2024, 6, 20)
	return models.State{
		Projects: []models.Project{{ID: 1, Name: "Work", Color: "#3b82f6"}},
		Tasks: []models.Task{
			{ID: 10, Title: "Write, then review", Description: `say "hi"`, Status: models.StatusDone,
				Priority: models.PriorityHigh, Category: "Docs", ProjectID: models.Int64(1),
				CreatedAt: created, CompletedAt: &done},
			{ID: 11, Title: "Plan", Assignee: "sam", Status: models.StatusTodo,
				Priority: models.PriorityLow, DueDate: &due, CreatedAt: created},
		},
	}
}

func TestParse(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("text")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	sc, err := ParseScope("Completed")
	require.NoError(t, err)
	assert.Equal(t, ScopeCompleted, sc)

	_, err = ParseScope("archived")
	assert.ErrorIs(t, err, ErrUnknownScope)
}

func TestWriteRejectsUnknown(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Write(&buf, sample(), "pdf", ScopeAll, now), ErrUnknownFormat)
	assert.ErrorIs(t, Write(&buf, sample(), FormatJSON, "some", now), ErrUnknownScope)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "taskboard-export-2024-06-15.json", Filename(FormatJSON, ScopeAll, now))
	assert.Equal(t, "taskboard-tasks-2024-06-15.csv", Filename(FormatCSV, ScopeTasks, now))
	assert.Equal(t, "taskboard-export-2024-06-15.txt", Filename(FormatCSV, ScopeProjects, now))
	assert.Equal(t, "taskboard-export-2024-06-15.txt", Filename(FormatText, ScopeCompleted, now))
}

func TestJSONScopes(t *testing.T) {
	tests := []struct {
		scope Scope
		keys  []string
		check func(t *testing.T, doc map[string]any)
	}{
		{
			ScopeAll,
			[]string{"tasks", "projects", "exportDate", "totalTasks", "totalProjects", "completedTasks"},
			func(t *testing.T, doc map[string]any) {
				assert.EqualValues(t, 2, doc["totalTasks"])
				assert.EqualValues(t, 1, doc["totalProjects"])
				assert.EqualValues(t, 1, doc["completedTasks"])
			},
		},
		{
			ScopeTasks,
			[]string{"tasks", "exportDate", "totalTasks", "completedTasks"},
			func(t *testing.T, doc map[string]any) {
				assert.Len(t, doc["tasks"], 2)
			},
		},
		{
			ScopeProjects,
			[]string{"projects", "exportDate", "totalProjects"},
			nil,
		},
		{
			ScopeCompleted,
			[]string{"completedTasks", "exportDate", "totalCompleted"},
			func(t *testing.T, doc map[string]any) {
				assert.Len(t, doc["completedTasks"], 1)
				assert.EqualValues(t, 1, doc["totalCompleted"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sample(), FormatJSON, tt.scope, now))

			var doc map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

			var keys []string
			for k := range doc {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.keys, keys)
			assert.Equal(t, "2024-06-15T14:30:00Z", doc["exportDate"])
			if tt.check != nil {
				tt.check(t, doc)
			}
		})
	}
}

func TestJSONTasksUseSnapshotShape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatJSON, ScopeTasks, now))

	var doc struct {
		Tasks []models.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, sample().Tasks, doc.Tasks)
	assert.Contains(t, buf.String(), `"dueDate": "2024-06-20"`)
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatCSV, ScopeAll, now))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"Write, then review", `say "hi"`, "Done", "High", "Docs", "",
		"", "2024-06-01T09:00:00Z", "2024-06-02T18:00:00Z", "Work",
	}, rows[1])
	assert.Equal(t, []string{
		"Plan", "", "To Do", "Low", "", "sam",
		"2024-06-20", "2024-06-01T09:00:00Z", "", "",
	}, rows[2])
}

func TestCSVCompletedOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatCSV, ScopeCompleted, now))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Write, then review", rows[1][0])
}

func TestCSVNothingToExport(t *testing.T) {
	for _, tc := range []struct {
		state models.State
		scope Scope
	}{
		{models.Empty(), ScopeAll},
		{sample(), ScopeProjects},
	} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, tc.state, FormatCSV, tc.scope, now))
		assert.Equal(t, NoTasks+"\n", buf.String())
	}
}

func TestTextReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatText, ScopeAll, now))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, ReportTitle+"\n"))
	assert.Contains(t, out, "Export Date: 2024-06-15 14:30:00")
	assert.Contains(t, out, "TOTAL TASKS: 2\n")
	assert.Contains(t, out, "COMPLETED TASKS: 1\n")
	assert.Contains(t, out, "COMPLETION RATE: 50%\n")
	assert.Contains(t, out, "1. Write, then review\n   Status: Done\n   Priority: High\n   Category: Docs\n   Project: Work\n")
	assert.Contains(t, out, "   Assignee: sam\n   Due Date: 2024-06-20\n")
	assert.Contains(t, out, "PROJECTS:\n------------------------------\n1. Work\n   Color: #3b82f6\n")
}

func TestTextReportScopes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatText, ScopeProjects, now))
	assert.NotContains(t, buf.String(), "TASK DETAILS")
	assert.Contains(t, buf.String(), "PROJECTS:")

	buf.Reset()
	require.NoError(t, Write(&buf, sample(), FormatText, ScopeCompleted, now))
	assert.Contains(t, buf.String(), "TOTAL TASKS: 1\n")
	assert.Contains(t, buf.String(), "COMPLETION RATE: 100%")
	assert.NotContains(t, buf.String(), "PROJECTS:")
	assert.NotContains(t, buf.String(), "Plan")
}
