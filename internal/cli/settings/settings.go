package settings

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/config"
	"github.com/julianstephens/workform/internal/constants"
	"github.com/julianstephens/workform/internal/keyring"
)

// SettingsCmd prints the effective configuration. Secrets are reported by
// where they come from, never by value.
type SettingsCmd struct{}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	return printSettings(os.Stdout, ctx)
}

func printSettings(w io.Writer, ctx *cli.Context) error {
	cfg := ctx.Config
	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}
	today, err := cfg.App.Today()
	if err != nil {
		return err
	}

	storage := fmt.Sprintf("SQLite (%s)", ctx.Store.GetConfigPath())
	if !ctx.IsSQLite() {
		storage = "PostgreSQL"
	}
	if cfg.Database.DB == config.FromKeyring {
		storage += ", connection string from OS keyring"
	}

	fmt.Fprintln(w, "Current Settings:")
	fmt.Fprintf(w, "  Storage:          %s\n", storage)
	fmt.Fprintf(w, "  Timezone:         %s (today is %s)\n", loc, today)
	fmt.Fprintf(w, "  Base URL:         %s\n", cfg.App.BaseURL)

	fmt.Fprintln(w, "\nMail Settings:")
	host := cfg.Mail.SMTPHost
	if host == "" {
		host = "not set (reminder delivery will fail)"
	} else {
		host = fmt.Sprintf("%s:%d", host, cfg.Mail.SMTPPort)
	}
	fmt.Fprintf(w, "  SMTP Host:        %s\n", host)
	fmt.Fprintf(w, "  SMTP User:        %s\n", orNotSet(cfg.Mail.SMTPUser))
	fmt.Fprintf(w, "  SMTP Password:    %s\n", secretSource(constants.KeyringSMTPPassword, cfg.Mail.SMTPPass))
	fmt.Fprintf(w, "  Implicit TLS:     %v\n", cfg.Mail.SMTPSecure)
	fmt.Fprintf(w, "  From:             %s\n", cfg.Mail.From)
	fmt.Fprintf(w, "  Chat Mailbox:     %s\n", orNotSet(cfg.Mail.ChatMailbox))
	fmt.Fprintf(w, "  Dry Run:          %v\n", cfg.Mail.DryRun)

	fmt.Fprintln(w, "\nServer Settings:")
	fmt.Fprintf(w, "  Listen Address:   %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "  Cron Secret:      %s\n", setOrNot(cfg.Server.CronSecret))
	fmt.Fprintf(w, "  Session Secret:   %s\n", secretSource(constants.KeyringSessionSecret, cfg.Server.SessionSecret))
	fmt.Fprintf(w, "  Secure Cookies:   %v\n", cfg.Server.SecureCookies)

	return nil
}

func orNotSet(v string) string {
	if v == "" {
		return "not set"
	}
	return v
}

func setOrNot(v string) string {
	if v == "" {
		return "not set"
	}
	return "set"
}

// secretSource describes where a secret resolves from.
func secretSource(key, value string) string {
	if value != "" {
		return "set (flag or environment)"
	}
	if _, err := keyring.Get(key); err == nil {
		return "set (OS keyring)"
	}
	return "not set"
}
