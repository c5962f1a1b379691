package system

import (
	"fmt"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/server"
)

// ServeCmd runs the HTTP API until interrupted.
type ServeCmd struct {
	Release bool `help:"Run gin in release mode." env:"GIN_RELEASE"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	if c.Release {
		server.SetReleaseMode()
	}

	svc, err := ctx.Services()
	if err != nil {
		return err
	}

	cfg := ctx.Config.Server
	if cfg.CronSecret == "" {
		logger.Warn("CRON_SECRET is not set, reminder endpoints will reject every request")
	}

	srv := server.New(server.Config{
		Addr:          cfg.Addr,
		CronSecret:    cfg.CronSecret,
		SecureCookies: cfg.SecureCookies,
	}, svc)

	fmt.Printf("workform listening on %s\n", cfg.Addr)
	return srv.Run(ctx.Ctx)
}
