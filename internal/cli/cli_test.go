package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/taskboard/internal/config"
	"github.com/tgienger/taskboard/internal/export"
	"github.com/tgienger/taskboard/internal/models"
	"github.com/tgienger/taskboard/internal/persist"
	"github.com/tgienger/taskboard/internal/store"
	"github.com/tgienger/taskboard/internal/templates"
	"github.com/tgienger/taskboard/internal/ui"
	"github.com/tgienger/taskboard/internal/ui/views"
)

var testInfo = BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2024-06-10"}

// isolate keeps the tests away from the user's config and data
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	return t.TempDir()
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewRootCmd(testInfo)
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "taskboard 1.2.3 (commit: abc123, built: 2024-06-10)\n", out)
}

func TestTemplatesList(t *testing.T) {
	out, err := run(t, "templates")
	require.NoError(t, err)
	for _, name := range templates.Names() {
		assert.Contains(t, out, name)
	}
}

func TestDataSurvivesBetweenCommands(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendFile} {
		t.Run(backend, func(t *testing.T) {
			dir := isolate(t)
			flags := []string{"--data-dir", dir, "--backend", backend}

			out, err := run(t, append([]string{"templates", "apply", "Daily Routine"}, flags...)...)
			require.NoError(t, err)
			assert.Equal(t, "Added 4 tasks from \"Daily Routine\"\n", out)

			out, err = run(t, append([]string{"export", "--scope", "tasks", "-o", "-"}, flags...)...)
			require.NoError(t, err)

			var doc struct {
				Tasks []models.Task `json:"tasks"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &doc))
			require.Len(t, doc.Tasks, 4)
			assert.Equal(t, "Morning Exercise", doc.Tasks[0].Title)

			assert.FileExists(t, filepath.Join(dir, LogFileName))
		})
	}
}

func TestEphemeralSavesNothing(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "templates", "apply", "Learning Session", "--data-dir", dir, "--ephemeral")
	require.NoError(t, err)

	out, err := run(t, "stats", "--json", "--data-dir", dir, "--backend", "file")
	require.NoError(t, err)

	var report statsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 0, report.Board.Total)
}

func TestTemplatesApplyReportsSaveFailure(t *testing.T) {
	dir := isolate(t)
	blocked := filepath.Join(dir, persist.StateKey+".json")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "keep"), 0755))

	out, err := run(t, "templates", "apply", "Daily Routine", "--data-dir", dir, "--backend", "file")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 change(s) not saved")
	assert.NotContains(t, out, "Added")
}

func TestTemplatesApplyUnknown(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "templates", "apply", "Nope", "--data-dir", dir, "--ephemeral")
	assert.ErrorIs(t, err, templates.ErrUnknownTemplate)
}

func TestExportToFile(t *testing.T) {
	dir := isolate(t)
	target := filepath.Join(dir, "report.txt")

	out, err := run(t, "export", "--format", "text", "-o", target, "--data-dir", dir, "--backend", "file")
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), export.ReportTitle)
}

func TestExportRejectsUnknownFormatAndScope(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, "export", "--format", "xml", "--data-dir", dir, "--ephemeral")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, err = run(t, "export", "--scope", "everything", "--data-dir", dir, "--ephemeral")
	assert.ErrorIs(t, err, export.ErrUnknownScope)
}

func TestStatsTables(t *testing.T) {
	dir := isolate(t)
	flags := []string{"--data-dir", dir, "--backend", "file"}

	_, err := run(t, append([]string{"templates", "apply", "Project Setup"}, flags...)...)
	require.NoError(t, err)

	out, err := run(t, append([]string{"stats"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Completion")
	assert.Contains(t, out, "No Project")
}

func TestBadBackend(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, "stats", "--data-dir", dir, "--backend", "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestConfigInitPathShow(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "taskboard", "config.yaml")

	out, err := run(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, err = run(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = run(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "config", "init", "--force", "--config", path)
	require.NoError(t, err)

	out, err = run(t, "config", "show", "--config", path, "--backend", "file")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: file")
	assert.Contains(t, out, "focus: 25m0s")
}

func TestNewAppWiring(t *testing.T) {
	dir := isolate(t)
	o := &options{dataDir: dir, ephemeral: true}
	rt, err := o.open()
	require.NoError(t, err)
	defer rt.Close()

	now := func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local) }
	app, cleanup := rt.newApp(now)
	defer cleanup()

	rt.store.Dispatch(store.AddTask{Task: models.Task{ID: 1, Title: "Ship"}})
	rt.store.Dispatch(store.ToggleTask{ID: 1})

	// The announcer holds the badge while the completion is celebrated
	assert.Empty(t, rt.prefs.Celebrated())
	assert.Equal(t, ui.ViewBoard, app.CurrentView())

	app.Update(views.OpenAchievements{})
	assert.Equal(t, ui.ViewAchievements, app.CurrentView())
	assert.Contains(t, app.View(), "First Steps")
}
