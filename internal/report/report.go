// Package report exports the activity log as an Excel workbook.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/utils"
)

const sheetName = "Activities"

// Columns is the header row of the export.
var Columns = []string{
	"Date", "Employee", "Category", "Project", "Task", "Previous Name",
	"Updated", "First Worked On", "Outcome Link", "Notes",
}

var columnWidths = []float64{12, 22, 12, 22, 36, 24, 9, 15, 40, 40}

type Store interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListActivities(ctx context.Context, f storage.ActivityFilter) ([]models.WorkActivity, error)
}

type Exporter struct {
	store Store
}

func New(store Store) *Exporter {
	return &Exporter{store: store}
}

// Rows returns one row per task in [from, to], oldest date first. Empty
// bounds are open.
func (e *Exporter) Rows(ctx context.Context, from, to string) ([][]interface{}, error) {
	var verr apperrors.ValidationError
	if from != "" && !utils.ValidDate(from) {
		verr.Add("from", "must be YYYY-MM-DD, got %q", from)
	}
	if to != "" && !utils.ValidDate(to) {
		verr.Add("to", "must be YYYY-MM-DD, got %q", to)
	}
	if from != "" && to != "" && from > to {
		verr.Add("to", "must not be before from")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	employees, err := e.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	categories := make(map[string]models.Category, len(employees))
	for _, emp := range employees {
		categories[strings.ToLower(emp.Name)] = emp.Category
	}

	activities, err := e.store.ListActivities(ctx, storage.ActivityFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date < activities[j].Date
	})

	var rows [][]interface{}
	for _, a := range activities {
		category := categories[strings.ToLower(a.EmployeeName)]
		for _, t := range a.Tasks {
			updated := "No"
			if t.IsUpdated {
				updated = "Yes"
			}
			rows = append(rows, []interface{}{
				a.Date, a.EmployeeName, string(category), t.ProjectName, t.TaskName,
				t.OldTaskName, updated, t.FirstWorkedOnDate, t.OutcomeLink, t.Notes,
			})
		}
	}
	return rows, nil
}

// Export writes the workbook for [from, to] to w and returns the number of
// task rows written.
func (e *Exporter) Export(ctx context.Context, from, to string, w io.Writer) (int, error) {
	rows, err := e.Rows(ctx, from, to)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return 0, err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return 0, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, err
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return 0, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return 0, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return 0, err
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return 0, err
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("writing workbook: %w", err)
	}
	return len(rows), nil
}

// Filename suggests a download name for a date range.
func Filename(from, to string) string {
	switch {
	case from == "" && to == "":
		return "activities.xlsx"
	case from == "":
		return fmt.Sprintf("activities-to-%s.xlsx", to)
	case to == "":
		return fmt.Sprintf("activities-from-%s.xlsx", from)
	}
	return fmt.Sprintf("activities-%s-to-%s.xlsx", from, to)
}
