package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/edupilot/edupilot/internal/client/models"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(Sheet)
	require.NoError(t, err)
	return rows
}

func TestJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.xlsx")

	err := Jobs(path, []models.Job{
		{ID: "1", Role: "Go Developer", CompanyName: "Acme", Location: "Berlin", Remote: true, EmploymentType: "Full-time", URL: "https://acme.example/jobs/1"},
		{ID: "2", Role: "Data Engineer", CompanyName: "Globex"},
	})
	require.NoError(t, err)

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, jobHeader, rows[0])
	assert.Equal(t, []string{"Go Developer", "Acme", "Berlin", "yes", "Full-time", "", "https://acme.example/jobs/1"}, rows[1])
	assert.Equal(t, []string{"Data Engineer", "Globex", "", "no"}, rows[2])
}

func TestProjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.xlsx")
	skills := `["Go","SQL"]`
	difficulty := "Intermediate"
	est := 30

	err := Projects(path, []models.Project{{
		Title:                "Capstone",
		Status:               models.ProjectInProgress,
		CompletionPercentage: 40,
		DifficultyLevel:      &difficulty,
		EstimatedHours:       &est,
		RequiredSkills:       &skills,
		CreatedAt:            time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	rows := readRows(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, projectHeader, rows[0])
	assert.Equal(t, []string{"Capstone", "in_progress", "40", "Intermediate", "30", "Go, SQL", "", "2025-03-04"}, rows[1])
}

func TestEmptyExportHasHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, Projects(path, nil))

	rows := readRows(t, path)
	require.Len(t, rows, 1)
}

func TestBadPath(t *testing.T) {
	err := Jobs(filepath.Join(t.TempDir(), "missing", "dir", "jobs.xlsx"), nil)
	assert.Error(t, err)
}
