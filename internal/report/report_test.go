package report

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

func seeded(t *testing.T) *Exporter {
	t.Helper()
	ctx := context.Background()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "workform.db"))
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { store.Close() })

	now := time.Now().UTC()
	require.NoError(t, store.AddEmployee(ctx, models.Employee{
		ID: "e1", Name: "Aisha", Category: models.CategoryDesign, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.InsertActivity(ctx, models.WorkActivity{
		ID: "a2", EmployeeName: "Aisha", Date: "2024-06-04",
		Tasks: []models.Task{
			{ID: "t1", ProjectName: "Web", TaskName: "Mockup v2", OldTaskName: "Mockup", IsUpdated: true, CreatedAt: now},
			{ID: "t2", ProjectName: "Web", TaskName: "Review", FirstWorkedOnDate: "2024-06-03", IsUpdated: true, CreatedAt: now},
		},
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.InsertActivity(ctx, models.WorkActivity{
		ID: "a1", EmployeeName: "aisha", Date: "2024-06-03",
		Tasks:     []models.Task{{ID: "t0", ProjectName: "Web", TaskName: "Review", OutcomeLink: "https://x", CreatedAt: now}},
		CreatedAt: now, UpdatedAt: now,
	}))
	return New(store)
}

func TestRows(t *testing.T) {
	e := seeded(t)

	rows, err := e.Rows(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []interface{}{"2024-06-03", "aisha", "Design", "Web", "Review", "", "No", "", "https://x", ""}, rows[0])
	assert.Equal(t, "Mockup", rows[1][5])
	assert.Equal(t, "Yes", rows[1][6])
	assert.Equal(t, "2024-06-03", rows[2][7])
}

func TestRowsRange(t *testing.T) {
	e := seeded(t)

	rows, err := e.Rows(context.Background(), "2024-06-04", "2024-06-30")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = e.Rows(context.Background(), "2024-06-30", "2024-06-01")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = e.Rows(context.Background(), "June", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExportWorkbook(t *testing.T) {
	e := seeded(t)

	var buf bytes.Buffer
	n, err := e.Export(context.Background(), "", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Mockup v2", rows[2][4])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "activities.xlsx", Filename("", ""))
	assert.Equal(t, "activities-2024-06-01-to-2024-06-30.xlsx", Filename("2024-06-01", "2024-06-30"))
	assert.Equal(t, "activities-from-2024-06-01.xlsx", Filename("2024-06-01", ""))
}
