package system

import (
	"fmt"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/reminder"
)

// RemindCmd runs one reminder round from the command line, for schedulers
// that invoke a binary instead of calling the HTTP endpoints.
type RemindCmd struct {
	Type      string `arg:"" help:"Reminder type (first, second, final) or slot (7pm, 10pm, 11-59pm)."`
	Pending   bool   `help:"List who would be reminded today without sending anything."`
	TestEmail string `name:"test-email" help:"Send a single test email to this address instead of the batch."`
	TestChat  bool   `name:"test-chat" help:"With --test-name, post a single test chat message instead of the batch."`
	TestName  string `name:"test-name" help:"Employee name used by the test sends." default:"Test Employee"`
}

// parseReminderArg accepts a type name or a slot label.
func parseReminderArg(arg string) (models.ReminderType, error) {
	if t, ok := models.ReminderSlots[arg]; ok {
		return t, nil
	}
	return models.ParseReminderType(arg)
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	t, err := parseReminderArg(c.Type)
	if err != nil {
		return err
	}

	d, err := ctx.Reminders()
	if err != nil {
		return err
	}

	switch {
	case c.Pending:
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		pending, err := d.Pending(ctx.Ctx, today)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Printf("Everyone has submitted for %s.\n", today)
			return nil
		}
		fmt.Printf("%d employee(s) pending for %s:\n", len(pending), today)
		for _, e := range pending {
			fmt.Printf("  %s (%s) <%s>\n", e.Name, e.Category, e.Email)
		}
		return nil

	case c.TestEmail != "":
		req := reminder.TestRequest{EmployeeEmail: c.TestEmail, EmployeeName: c.TestName, ReminderType: t}
		sent, err := d.SendTestEmail(ctx.Ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Test %s reminder email sent to %s\n", t, sent.EmployeeEmail)
		return nil

	case c.TestChat:
		req := reminder.TestRequest{EmployeeEmail: ctx.Config.Mail.From, EmployeeName: c.TestName, ReminderType: t}
		sent, err := d.SendTestChat(ctx.Ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Test %s chat reminder sent for %s\n", t, sent.EmployeeName)
		return nil
	}

	report, err := d.Send(ctx.Ctx, t)
	if err != nil {
		return err
	}
	printReminderReport(t, report)
	return nil
}

func printReminderReport(t models.ReminderType, report models.ReminderReport) {
	if report.Total == 0 {
		fmt.Printf("No %s reminders sent.\n", t)
		return
	}
	fmt.Printf("%s reminders for %d employee(s):\n", t, report.Total)
	for _, r := range report.Results {
		fmt.Printf("  %s\n", r.Employee)
		if r.Email {
			fmt.Printf("    ✓ email\n")
		} else {
			fmt.Printf("    ❌ email: %s\n", r.Errors.Email)
		}
		if r.Slack {
			fmt.Printf("    ✓ chat\n")
		} else {
			fmt.Printf("    ❌ chat: %s\n", r.Errors.Slack)
		}
	}
}
