package system

import (
	"fmt"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/validation"
)

type ValidateCmd struct {
	From string `help:"Only check activities on or after this date (YYYY-MM-DD)."`
	To   string `help:"Only check activities on or before this date (YYYY-MM-DD)."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	employees, err := ctx.Store.ListEmployees(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}
	activities, err := ctx.Store.ListActivities(ctx.Ctx, storage.ActivityFilter{From: cmd.From, To: cmd.To})
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}

	validator := validation.New()

	fmt.Println("Validating employee directory...")
	employeeResult := validator.ValidateEmployees(employees)

	fmt.Printf("Validating %d work activities...\n", len(activities))
	activityResult := validator.ValidateActivities(activities, employees)

	combined := validation.ValidationResult{
		Conflicts: append(employeeResult.Conflicts, activityResult.Conflicts...),
	}

	fmt.Println()
	fmt.Println(combined.FormatReport())
	if combined.HasConflicts() {
		fmt.Println("Summary:")
		for t, n := range combined.Counts() {
			fmt.Printf("  %s: %d\n", t, n)
		}
	}
	// Conflicts are reported, not treated as a command failure
	return nil
}
