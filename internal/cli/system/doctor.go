package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/workform/internal/backup"
	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/utils"
	"github.com/julianstephens/workform/internal/validation"
)

type DoctorCmd struct{}

// schemaVersioner is implemented by both SQL stores.
type schemaVersioner interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Backups present (warning only, SQLite only)
	if !ctx.IsSQLite() {
		fmt.Printf("⊘ Backups present: SKIPPED (not a SQLite database)\n")
	} else if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Stored records are consistent (only if DB is reachable)
	if dbReachable {
		warnings, err := checkValidation(ctx)
		switch {
		case err != nil:
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		case len(warnings) > 0:
			fmt.Printf("⚠ Data validation: WARNING\n")
			for _, w := range warnings {
				fmt.Printf("   %s\n", w)
			}
		default:
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 7: Mail transport configured (warning only)
	if err := checkMailConfig(ctx); err != nil {
		fmt.Printf("⚠ Mail configuration: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Mail configuration: OK\n")
	}

	// Check 8: Cron secret set (warning only)
	if ctx.Config.Server.CronSecret == "" {
		fmt.Printf("⚠ Cron secret: WARNING\n")
		fmt.Printf("   CRON_SECRET is not set; every reminder endpoint call will be rejected\n")
	} else {
		fmt.Printf("✓ Cron secret: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if err := ctx.Store.Ping(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (int, int, error) {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return 0, 0, nil
	}
	current, latest, err := sv.SchemaVersion(ctx.Ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return current, latest, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'workform backup create'")
	}
	return nil
}

// checkValidation fails on corrupt records and returns operational
// problems, such as employees without email, as warnings.
func checkValidation(ctx *cli.Context) ([]string, error) {
	employees, err := ctx.Store.ListEmployees(ctx.Ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	activities, err := ctx.Store.ListActivities(ctx.Ctx, storage.ActivityFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	v := validation.New()
	results := []validation.ValidationResult{
		v.ValidateEmployees(employees),
		v.ValidateActivities(activities, employees),
	}

	var warnings []string
	failures := 0
	for _, r := range results {
		for _, c := range r.Conflicts {
			switch c.Type {
			case validation.ConflictMissingEmail, validation.ConflictUnknownEmployee:
				warnings = append(warnings, c.Description)
			default:
				failures++
			}
		}
	}
	if failures > 0 {
		return warnings, fmt.Errorf("found %d invalid records (run 'workform validate' for details)", failures)
	}
	return warnings, nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if tz := ctx.Config.App.Timezone; !utils.ValidateTimezone(tz) {
		return fmt.Errorf("unknown timezone %q (set WORKFORM_TIMEZONE to an IANA name such as Asia/Kolkata)", tz)
	}
	return nil
}

func checkMailConfig(ctx *cli.Context) error {
	mail := ctx.Config.Mail
	if mail.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is not set; reminder delivery will fail (use --dry-run to only log mail)")
	}
	if mail.ChatMailbox == "" {
		return fmt.Errorf("SLACK_WEBHOOK_EMAIL is not set; chat reminders will fail")
	}
	return nil
}
