package system

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/config"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

func testConfig() config.Config {
	return config.Config{
		App:  config.App{Timezone: "UTC", BaseURL: "http://localhost:8080"},
		Mail: config.Mail{DryRun: true, From: "attendance@example.com"},
	}
}

// setupTestContext returns a context over an initialized SQLite database.
func setupTestContext(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &cli.Context{
		Ctx:    context.Background(),
		Store:  store,
		Config: testConfig(),
	}, store
}
