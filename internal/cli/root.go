package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/workform/internal/activity"
	"github.com/julianstephens/workform/internal/backup"
	"github.com/julianstephens/workform/internal/calendar"
	"github.com/julianstephens/workform/internal/config"
	"github.com/julianstephens/workform/internal/dashboard"
	"github.com/julianstephens/workform/internal/directory"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/reminder"
	"github.com/julianstephens/workform/internal/report"
	"github.com/julianstephens/workform/internal/server"
	"github.com/julianstephens/workform/internal/session"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/storage/postgres"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

type Context struct {
	// Ctx is cancelled on SIGINT/SIGTERM.
	Ctx    context.Context
	Store  storage.Provider
	Config config.Config
}

// OpenStore returns the provider for conn without opening it.
func OpenStore(conn string) storage.Provider {
	if storage.IsPostgres(conn) {
		return postgres.New(conn)
	}
	return sqlite.NewStore(conn)
}

// IsSQLite reports whether the context store is a SQLite file.
func (c *Context) IsSQLite() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

// Today returns the current civil date in the configured timezone.
func (c *Context) Today() (string, error) {
	return c.Config.App.Today()
}

func (c *Context) Directory() *directory.Service {
	return directory.New(c.Store)
}

func (c *Context) Activities() *activity.Service {
	return activity.New(c.Store)
}

func (c *Context) Calendar() *calendar.Service {
	return calendar.New(c.Store)
}

func (c *Context) Reports() *report.Exporter {
	return report.New(c.Store)
}

func (c *Context) Dashboard() (*dashboard.Service, error) {
	loc, err := c.Config.App.Location()
	if err != nil {
		return nil, err
	}
	return dashboard.New(c.Store, loc), nil
}

func (c *Context) Sessions() (*session.Service, error) {
	return session.New(c.Store, c.Config.Server.Secret())
}

// Reminders builds the dispatcher with the configured mail transport.
func (c *Context) Reminders() (*reminder.Dispatcher, error) {
	loc, err := c.Config.App.Location()
	if err != nil {
		return nil, err
	}
	sender, err := c.Config.Mail.Sender()
	if err != nil {
		return nil, fmt.Errorf("configuring mail: %w", err)
	}
	return reminder.New(c.Calendar(), c.Store, sender, reminder.Config{
		ChatMailbox: c.Config.Mail.ChatMailbox,
		BaseURL:     c.Config.App.BaseURL,
		Location:    loc,
	}), nil
}

// Services wires every domain service for the HTTP server.
func (c *Context) Services() (server.Services, error) {
	dash, err := c.Dashboard()
	if err != nil {
		return server.Services{}, err
	}
	sessions, err := c.Sessions()
	if err != nil {
		return server.Services{}, err
	}
	reminders, err := c.Reminders()
	if err != nil {
		return server.Services{}, err
	}
	return server.Services{
		Store:      c.Store,
		Directory:  c.Directory(),
		Activities: c.Activities(),
		Calendar:   c.Calendar(),
		Sessions:   sessions,
		Dashboard:  dash,
		Reminders:  reminders,
		Reports:    c.Reports(),
	}, nil
}

// PerformAutomaticBackup snapshots a SQLite database and logs failures
// without interrupting the command.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(c.Ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
