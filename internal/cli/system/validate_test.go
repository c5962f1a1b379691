package system

import (
	"testing"
	"time"

	"github.com/julianstephens/workform/internal/models"
)

func TestValidateCmd(t *testing.T) {
	ctx, store := setupTestContext(t)
	now := time.Now().UTC()

	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate on empty database failed: %v", err)
	}

	if err := store.InsertActivity(ctx.Ctx, models.WorkActivity{
		ID: "a1", EmployeeName: "Ghost", Date: "2024-06-03",
		Tasks:     []models.Task{{ID: "t1", TaskName: "Deploy", CreatedAt: now}},
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("failed to insert activity: %v", err)
	}

	// Conflicts are reported without failing the command
	if err := (&ValidateCmd{From: "2024-06-01", To: "2024-06-30"}).Run(ctx); err != nil {
		t.Errorf("validate with conflicts returned an error: %v", err)
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate on an up-to-date database failed: %v", err)
	}
}

func TestStatsCmd_JSON(t *testing.T) {
	ctx, _ := setupTestContext(t)

	if err := (&StatsCmd{JSON: true}).Run(ctx); err != nil {
		t.Errorf("stats --json failed: %v", err)
	}
}
