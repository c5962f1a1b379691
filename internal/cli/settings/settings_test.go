package settings

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/config"
	"github.com/julianstephens/workform/internal/constants"
	"github.com/julianstephens/workform/internal/keyring"
	"github.com/julianstephens/workform/internal/storage/postgres"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

func setupTestContext(t *testing.T, cfg config.Config) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Ctx: context.Background(), Store: store, Config: cfg}
}

func TestPrintSettings(t *testing.T) {
	gokeyring.MockInit()

	ctx := setupTestContext(t, config.Config{
		App:    config.App{Timezone: "Asia/Kolkata", BaseURL: "https://work.example.com"},
		Mail:   config.Mail{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPPass: "hunter22", From: "attendance@example.com"},
		Server: config.Server{Addr: ":8080", CronSecret: "cron"},
	})

	var buf bytes.Buffer
	if err := printSettings(&buf, ctx); err != nil {
		t.Fatalf("printSettings() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"SQLite (",
		"Asia/Kolkata",
		"https://work.example.com",
		"smtp.example.com:587",
		"SMTP Password:    set (flag or environment)",
		"Cron Secret:      set",
		"Session Secret:   not set",
		"Chat Mailbox:     not set",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hunter22") || strings.Contains(out, "cron\n") {
		t.Errorf("output must not contain secret values:\n%s", out)
	}
}

func TestPrintSettings_KeyringSecrets(t *testing.T) {
	gokeyring.MockInit()
	if err := keyring.Set(constants.KeyringSessionSecret, "from-keyring"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	defer func() { _ = keyring.Delete(constants.KeyringSessionSecret) }()

	ctx := setupTestContext(t, config.Config{App: config.App{Timezone: "UTC"}})

	var buf bytes.Buffer
	if err := printSettings(&buf, ctx); err != nil {
		t.Fatalf("printSettings() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Session Secret:   set (OS keyring)") {
		t.Errorf("expected keyring session secret, got:\n%s", out)
	}
	if !strings.Contains(out, "not set (reminder delivery will fail)") {
		t.Errorf("expected missing SMTP host note, got:\n%s", out)
	}
}

func TestPrintSettings_Postgres(t *testing.T) {
	gokeyring.MockInit()

	ctx := &cli.Context{
		Ctx:   context.Background(),
		Store: postgres.New("postgres://localhost/workform"),
		Config: config.Config{
			Database: config.Database{DB: config.FromKeyring},
			App:      config.App{Timezone: "UTC"},
		},
	}

	var buf bytes.Buffer
	if err := printSettings(&buf, ctx); err != nil {
		t.Fatalf("printSettings() error = %v", err)
	}
	if !strings.Contains(buf.String(), "PostgreSQL, connection string from OS keyring") {
		t.Errorf("unexpected storage line:\n%s", buf.String())
	}
}

func TestPrintSettings_BadTimezone(t *testing.T) {
	ctx := setupTestContext(t, config.Config{App: config.App{Timezone: "Mars/Olympus"}})
	var buf bytes.Buffer
	if err := printSettings(&buf, ctx); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
