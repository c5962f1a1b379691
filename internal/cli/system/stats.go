package system

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/tui"
)

// StatsCmd shows the submission dashboard. Without a terminal, or with
// --json, it prints the snapshot instead.
type StatsCmd struct {
	JSON bool `help:"Print the statistics as JSON instead of opening the dashboard."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	dash, err := ctx.Dashboard()
	if err != nil {
		return err
	}

	if c.JSON || !isatty.IsTerminal(os.Stdout.Fd()) {
		stats, err := dash.Stats(ctx.Ctx)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	p := tea.NewProgram(tui.NewModel(ctx.Ctx, dash.Stats), tea.WithAltScreen(), tea.WithContext(ctx.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
