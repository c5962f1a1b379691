// Package config holds the settings shared by every workform command. The
// structs are embedded into the kong command tree, so each field is both a
// flag and an environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/workform/internal/constants"
	"github.com/julianstephens/workform/internal/keyring"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/mailer"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/utils"
)

// Database selects the storage backend.
type Database struct {
	DB string `name:"db" help:"SQLite database path or PostgreSQL connection string. Use \"keyring\" to read it from the OS keyring. PostgreSQL credentials must NOT be embedded on the command line." env:"WORKFORM_DB" default:"${default_db}"`
}

// Mail configures outgoing reminder mail.
type Mail struct {
	SMTPHost    string `name:"smtp-host" help:"SMTP server host." env:"SMTP_HOST"`
	SMTPPort    int    `name:"smtp-port" help:"SMTP server port." env:"SMTP_PORT" default:"${default_smtp_port}"`
	SMTPUser    string `name:"smtp-user" help:"SMTP username." env:"SMTP_USER"`
	SMTPPass    string `name:"smtp-pass" help:"SMTP password. Falls back to the keyring entry smtp-password." env:"SMTP_PASS"`
	SMTPSecure  bool   `name:"smtp-secure" help:"Use implicit TLS instead of STARTTLS." env:"SMTP_SECURE"`
	From        string `name:"from-email" help:"Sender address for reminders." env:"FROM_EMAIL" default:"${default_from}"`
	ChatMailbox string `name:"chat-mailbox" help:"Email address of the chat channel integration." env:"SLACK_WEBHOOK_EMAIL"`
	DryRun      bool   `name:"dry-run" help:"Log messages instead of sending them."`
}

// Server configures the HTTP API.
type Server struct {
	Addr          string `help:"Listen address." env:"WORKFORM_ADDR" default:"${default_addr}"`
	CronSecret    string `name:"cron-secret" help:"Bearer token required by the reminder endpoints." env:"CRON_SECRET"`
	SessionSecret string `name:"session-secret" help:"HMAC key for admin session tokens. Falls back to the keyring entry session-secret." env:"WORKFORM_SESSION_SECRET"`
	SecureCookies bool   `name:"secure-cookies" help:"Mark the session cookie Secure." env:"WORKFORM_SECURE_COOKIES"`
}

// App holds settings every command reads.
type App struct {
	Timezone string `help:"IANA timezone that defines \"today\"." env:"WORKFORM_TIMEZONE" default:"${default_timezone}"`
	BaseURL  string `name:"base-url" help:"Public URL of the submission form, linked from reminder mail." env:"WORKFORM_BASE_URL" default:"${default_base_url}"`
	Debug    bool   `help:"Enable debug logging." env:"WORKFORM_DEBUG"`
	LogJSON  bool   `name:"log-json" help:"Write logs as JSON lines." env:"WORKFORM_LOG_JSON"`
}

// Vars are the kong interpolation values for the defaults above.
func Vars() map[string]string {
	return map[string]string{
		"version":           constants.Version,
		"default_db":        constants.DefaultConfigPath,
		"default_from":      constants.DefaultFromMail,
		"default_smtp_port": strconv.Itoa(constants.DefaultSMTPPort),
		"default_addr":      constants.DefaultAddr,
		"default_timezone":  constants.DefaultTimezone,
		"default_base_url":  constants.DefaultBaseURL,
	}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// FromKeyring is the --db value that reads the connection string from the
// OS keyring.
const FromKeyring = "keyring"

// Conn returns the storage connection string. A SQLite path has "~"
// expanded; a PostgreSQL URL with an embedded password is rejected unless
// it came from the environment or the keyring.
func (d Database) Conn() (string, error) {
	conn := strings.TrimSpace(d.DB)
	switch conn {
	case FromKeyring:
		stored, err := keyring.GetConnectionString()
		if err != nil {
			return "", fmt.Errorf("reading connection string from keyring: %w", err)
		}
		return stored, nil
	case "":
		conn = constants.DefaultConfigPath
	}
	if !storage.IsPostgres(conn) {
		return ExpandPath(conn)
	}
	if storage.HasEmbeddedCredentials(conn) && os.Getenv("WORKFORM_DB") != conn {
		return "", storage.ErrEmbeddedCredentials
	}
	return conn, nil
}

// LogDir is where the rotated log file lives: next to the SQLite database,
// or under the default config directory for PostgreSQL.
func (d Database) LogDir() string {
	conn := d.DB
	if conn == "" || conn == FromKeyring || storage.IsPostgres(conn) {
		conn = constants.DefaultConfigPath
	}
	path, err := ExpandPath(conn)
	if err != nil {
		return os.TempDir()
	}
	return filepath.Dir(path)
}

// Password returns the SMTP password from the flag, env or keyring.
func (m Mail) Password() string {
	return keyring.Lookup(constants.KeyringSMTPPassword, m.SMTPPass)
}

// SMTPConfig converts the settings into transport options.
func (m Mail) SMTPConfig() mailer.Config {
	return mailer.Config{
		Host:     m.SMTPHost,
		Port:     m.SMTPPort,
		Username: m.SMTPUser,
		Password: m.Password(),
		SSL:      m.SMTPSecure,
		From:     m.From,
	}
}

// Sender returns the SMTP sender. Dry runs get a logging sender; without an
// SMTP host every send fails with mailer.ErrNotConfigured.
func (m Mail) Sender() (mailer.Sender, error) {
	if m.DryRun {
		return mailer.LogSender{}, nil
	}
	if m.SMTPHost == "" {
		logger.Warn("no SMTP host configured, reminder delivery will fail")
		return mailer.Unconfigured{}, nil
	}
	sender, err := mailer.NewSMTP(m.SMTPConfig())
	if err != nil {
		return nil, err
	}
	return sender, nil
}

// Secret returns the session signing key from the flag, env or keyring.
// Empty means a random per-process key.
func (s Server) Secret() []byte {
	return []byte(keyring.Lookup(constants.KeyringSessionSecret, s.SessionSecret))
}

func (a App) timezone() string {
	if a.Timezone == "" {
		return constants.DefaultTimezone
	}
	return a.Timezone
}

// Location loads the configured timezone.
func (a App) Location() (*time.Location, error) {
	loc, err := utils.LoadLocation(a.timezone())
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", a.timezone(), err)
	}
	return loc, nil
}

// Today returns the current civil date in the configured timezone.
func (a App) Today() (string, error) {
	return utils.GetTodayInTimezone(a.timezone())
}

// Config is every setting, embedded into the root command.
type Config struct {
	Database `embed:""`
	App      `embed:""`
	Mail     `embed:"" group:"Mail"`
	Server   `embed:"" group:"Server"`
}
