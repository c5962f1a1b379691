package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/utils"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpActivity *DebugDumpActivityCmd `cmd:"" help:"Dump an employee's work activity for a date as JSON."`
	DumpEmployee *DebugDumpEmployeeCmd `cmd:"" help:"Dump an employee record as JSON."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump the resolved calendar status of a date as JSON."`
}

func printJSON(v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

// resolveDate accepts YYYY-MM-DD or "today" in the configured timezone.
func resolveDate(ctx *cli.Context, date string) (string, error) {
	if date == "" || date == "today" {
		return ctx.Today()
	}
	if !utils.ValidDate(date) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", date)
	}
	return date, nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpActivityCmd struct {
	Employee string `arg:"" help:"Employee name as submitted."`
	Date     string `arg:"" optional:"" help:"Date of the activity (YYYY-MM-DD or 'today')." default:"today"`
}

func (cmd *DebugDumpActivityCmd) Run(ctx *cli.Context) error {
	date, err := resolveDate(ctx, cmd.Date)
	if err != nil {
		return err
	}

	a, err := ctx.Store.GetActivity(ctx.Ctx, cmd.Employee, date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no activity found for %s on %s", cmd.Employee, date)
		}
		return fmt.Errorf("failed to get activity: %w", err)
	}
	return printJSON(a)
}

type DebugDumpEmployeeCmd struct {
	ID string `arg:"" help:"ID of the employee to dump."`
}

func (cmd *DebugDumpEmployeeCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Store.GetEmployee(ctx.Ctx, cmd.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("employee not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}
	return printJSON(e)
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date to resolve (YYYY-MM-DD or 'today')." default:"today"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := resolveDate(ctx, cmd.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Calendar().Resolve(ctx.Ctx, date)
	if err != nil {
		return err
	}
	return printJSON(day)
}
