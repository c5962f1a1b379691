package reports

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/report"
)

type ReportExportCmd struct {
	From   string `help:"First date to include (YYYY-MM-DD)."`
	To     string `help:"Last date to include (YYYY-MM-DD)."`
	Output string `short:"o" help:"Output file or directory. Defaults to a dated name in the current directory."`
}

func (c *ReportExportCmd) Run(ctx *cli.Context) error {
	path := c.Output
	name := report.Filename(c.From, c.To)
	switch {
	case path == "":
		path = name
	default:
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, name)
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	rows, err := ctx.Reports().Export(ctx.Ctx, c.From, c.To, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to save report: %w", err)
	}

	fmt.Printf("✓ Exported %d task rows to %s\n", rows, path)
	return nil
}
