package reports

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now := time.Now().UTC()
	err := store.InsertActivity(context.Background(), models.WorkActivity{
		ID:           "a1",
		EmployeeName: "Asha",
		Date:         "2024-06-03",
		Tasks: []models.Task{
			{ID: "t1", ProjectName: "Site", TaskName: "Header", CreatedAt: now},
			{ID: "t2", ProjectName: "Site", TaskName: "Footer", CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("InsertActivity() error = %v", err)
	}
	return &cli.Context{Ctx: context.Background(), Store: store}
}

func TestReportExportCmd_ToDirectory(t *testing.T) {
	ctx := setupTestContext(t)
	dir := t.TempDir()

	cmd := &ReportExportCmd{From: "2024-06-01", To: "2024-06-30", Output: dir}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("ReportExportCmd.Run() error = %v", err)
	}

	path := filepath.Join(dir, "activities-2024-06-01-to-2024-06-30.xlsx")
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open exported workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Activities")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	// Header plus one row per task
	if len(rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(rows))
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be removed after export")
	}
}

func TestReportExportCmd_ToFile(t *testing.T) {
	ctx := setupTestContext(t)
	path := filepath.Join(t.TempDir(), "june.xlsx")

	if err := (&ReportExportCmd{Output: path}).Run(ctx); err != nil {
		t.Fatalf("ReportExportCmd.Run() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected report at %s: %v", path, err)
	}
}

func TestReportExportCmd_InvalidRange(t *testing.T) {
	ctx := setupTestContext(t)
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	if err := (&ReportExportCmd{From: "June", Output: path}).Run(ctx); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no report should be written on error")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be removed on error")
	}
}
