package activities

import (
	"fmt"

	"github.com/julianstephens/workform/internal/activity"
	"github.com/julianstephens/workform/internal/cli"
)

type ActivityListCmd struct {
	Employee string `short:"e" help:"Only show this employee's submissions."`
	From     string `help:"First date to include (YYYY-MM-DD)."`
	To       string `help:"Last date to include (YYYY-MM-DD)."`
	ShowIDs  bool   `help:"Show activity IDs." name:"show-ids"`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Activities().List(ctx.Ctx, activity.Query{
		EmployeeName: c.Employee,
		From:         c.From,
		To:           c.To,
	})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No work activities found")
		return nil
	}

	for _, a := range list {
		idStr := ""
		if c.ShowIDs {
			idStr = fmt.Sprintf(" (ID: %s)", a.ID)
		}
		fmt.Printf("%s  %s%s - %d tasks\n", a.Date, a.EmployeeName, idStr, len(a.Tasks))
		for _, t := range a.Tasks {
			status := " "
			if t.IsUpdated {
				status = "~"
			}
			fmt.Printf("  %s [%s] %s\n", status, t.ProjectName, t.TaskName)
			if t.OldTaskName != "" {
				fmt.Printf("      was: %s\n", t.OldTaskName)
			}
		}
	}
	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Activity ID."`
}

func (c *ActivityDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Activities().Delete(ctx.Ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted work activity %s\n", c.ID)
	return nil
}
