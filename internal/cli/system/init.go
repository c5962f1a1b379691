package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/config"
	"github.com/julianstephens/workform/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing SQLite database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsSQLite() {
			return errors.New("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete the database we are about to copy from
		if c.Source != "" {
			if abs, err := filepath.Abs(dbPath); err == nil {
				dbPath = abs
			}
			if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to release the file
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Ctx); err != nil {
		return err
	}
	fmt.Printf("Initialized workform storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var source storage.Provider
	if storage.IsPostgres(sourcePath) {
		if err := storage.ValidateConnString(sourcePath); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		source = cli.OpenStore(sourcePath)
	} else {
		path, err := config.ExpandPath(sourcePath)
		if err != nil {
			return err
		}
		source = cli.OpenStore(path)
	}

	if err := source.Load(ctx.Ctx); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	fmt.Println("  Migrating employees...")
	employees, err := source.ListEmployees(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to get employees from source: %w", err)
	}
	copied := 0
	for _, e := range employees {
		if err := ctx.Store.AddEmployee(ctx.Ctx, e); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to add employee %s: %w", e.ID, err)
		}
		copied++
	}
	fmt.Printf("    Migrated %d employees\n", copied)

	fmt.Println("  Migrating work activities...")
	activities, err := source.ListActivities(ctx.Ctx, storage.ActivityFilter{})
	if err != nil {
		return fmt.Errorf("failed to get activities from source: %w", err)
	}
	copied = 0
	for _, a := range activities {
		if err := ctx.Store.InsertActivity(ctx.Ctx, a); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to add activity for %s on %s: %w", a.EmployeeName, a.Date, err)
		}
		copied++
	}
	fmt.Printf("    Migrated %d work activities\n", copied)

	fmt.Println("  Migrating calendar...")
	days, err := source.ListCalendarDays(ctx.Ctx, "0000-01-01", "9999-12-31")
	if err != nil {
		return fmt.Errorf("failed to get calendar from source: %w", err)
	}
	for _, d := range days {
		if _, err := ctx.Store.UpsertCalendarDay(ctx.Ctx, d); err != nil {
			return fmt.Errorf("failed to save calendar day %s: %w", d.Date, err)
		}
	}
	fmt.Printf("    Migrated %d calendar days\n", len(days))

	return nil
}
