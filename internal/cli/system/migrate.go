package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/workform/internal/cli"
)

type MigrateCmd struct{}

// migrator is implemented by both SQL stores.
type migrator interface {
	Migrate(ctx context.Context, logFn func(string)) (int, error)
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}

	// The store was loaded before Run; Load refuses a schema newer than
	// this binary, so only forward migrations remain.
	ctx.PerformAutomaticBackup()

	count, err := m.Migrate(ctx.Ctx, func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
