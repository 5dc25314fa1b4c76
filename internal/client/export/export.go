// Package export writes collections to .xlsx spreadsheets.
package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/edupilot/edupilot/internal/client/models"
)

// Sheet is the worksheet every export writes to.
const Sheet = "Sheet1"

var (
	jobHeader     = []string{"Role", "Company", "Location", "Remote", "Employment Type", "Posted", "URL"}
	projectHeader = []string{"Title", "Status", "Completion %", "Difficulty", "Estimated Hours", "Required Skills", "GitHub", "Created"}
)

// Jobs writes one row per job posting to path.
func Jobs(path string, jobs []models.Job) error {
	rows := make([][]any, 0, len(jobs))
	for _, j := range jobs {
		rows = append(rows, []any{
			j.Role,
			j.CompanyName,
			j.Location,
			yesNo(j.Remote),
			j.EmploymentType,
			j.DatePosted,
			j.URL,
		})
	}
	return write(path, jobHeader, rows)
}

// Projects writes one row per project to path.
func Projects(path string, projects []models.Project) error {
	rows := make([][]any, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []any{
			p.Title,
			p.Status,
			p.CompletionPercentage,
			deref(p.DifficultyLevel),
			hours(p.EstimatedHours),
			strings.Join(p.Skills(), ", "),
			deref(p.GithubURL),
			p.CreatedAt.Format("2006-01-02"),
		})
	}
	return write(path, projectHeader, rows)
}

func write(path string, header []string, rows [][]any) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(Sheet, "A1", &head); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(Sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(Sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(Sheet, "A", last, 22); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func hours(h *int) string {
	if h == nil {
		return ""
	}
	return strconv.Itoa(*h)
}
