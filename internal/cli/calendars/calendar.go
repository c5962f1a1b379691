package calendars

import (
	"fmt"
	"time"

	"github.com/julianstephens/workform/internal/calendar"
	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/constants"
	"github.com/julianstephens/workform/internal/models"
)

type CalendarSetCmd struct {
	Date   string `arg:"" help:"Date (YYYY-MM-DD)."`
	Status string `arg:"" enum:"holiday,working" help:"holiday or working."`
}

func (c *CalendarSetCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Calendar().Set(ctx.Ctx, c.Date, models.DayStatus(c.Status))
	if err != nil {
		return err
	}
	fmt.Printf("✓ %s marked as %s\n", day.Date, day.Status)
	return nil
}

type CalendarShowCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarShowCmd) Run(ctx *cli.Context) error {
	month := c.Month
	if month == "" {
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		month = today[:7]
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}

	explicit, err := ctx.Calendar().Month(ctx.Ctx, first.Year(), int(first.Month()))
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", first.Format("January 2006"))
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		date := d.Format(constants.DateFormat)
		status, marker := explicit[date], " *"
		if status == "" {
			if status, err = calendar.DefaultStatus(date); err != nil {
				return err
			}
			marker = ""
		}
		fmt.Printf("  %s %s  %-7s%s\n", date, d.Format("Mon"), status, marker)
	}
	fmt.Println("\n* explicit entry")
	return nil
}
