package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/mindforge/internal/models"
	"github.com/vytor/mindforge/internal/services"
)

func run(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_SubjectsAndPlan(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mindforge.db")

	out, err := run(t, dbPath, "", "subjects", "add", "Matemática", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Matemática (8h/week")

	_, err = run(t, dbPath, "", "subjects", "add", "Física", "zero")
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "subjects.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"nome":"Química","horasPorSemana":"4"},{"nome":"matemática","horasPorSemana":3}]`), 0o644))
	out, err = run(t, dbPath, "", "subjects", "import", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 of 2 subjects")

	out, err = run(t, dbPath, "", "subjects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Matemática")
	assert.Contains(t, out, "Química")

	_, err = run(t, dbPath, "", "plan", "generate")
	assert.Error(t, err, "no deadline stored yet")

	deadline := time.Now().AddDate(0, 0, 20).Format(models.DayKeyLayout)
	out, err = run(t, dbPath, "", "plan", "generate", "--deadline", deadline)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated")
	assert.Contains(t, out, "[0] s1")

	out, err = run(t, dbPath, "", "plan", "show", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Week s1")
	assert.Contains(t, out, "Sun")

	_, err = run(t, dbPath, "", "plan", "show", "99")
	assert.Error(t, err)

	_, err = run(t, dbPath, "n\n", "plan", "reset")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrCancelled)

	out, err = run(t, dbPath, "y\n", "plan", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan reset")

	out, err = run(t, dbPath, "", "subjects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No subjects.")
}

func TestCLI_ExportImport(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mindforge.db")

	_, err := run(t, dbPath, "", "subjects", "add", "História", "3")
	require.NoError(t, err)

	backup := filepath.Join(dir, "backup.json")
	out, err := run(t, dbPath, "", "export", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "Backup written to")

	out, err = run(t, dbPath, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, `"cronograma"`)

	other := filepath.Join(dir, "other.db")
	_, err = run(t, other, "", "import", backup)
	assert.ErrorIs(t, err, services.ErrCancelled)

	out, err = run(t, other, "", "import", "--yes", backup)
	require.NoError(t, err)
	assert.Contains(t, out, "cronograma")

	out, err = run(t, other, "", "subjects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "História")

	out, err = run(t, other, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "1 subjects")
}

func TestErrorMessage(t *testing.T) {
	err := services.ErrCancelled
	assert.Equal(t, "cancelled by user", errorMessage(err))
}
