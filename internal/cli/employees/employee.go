package employees

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/directory"
	"github.com/julianstephens/workform/internal/models"
)

type EmployeeListCmd struct {
	Category string `short:"c" help:"Only list employees in this category."`
	ShowIDs  bool   `help:"Show employee IDs." name:"show-ids"`
}

func (c *EmployeeListCmd) Run(ctx *cli.Context) error {
	groups, err := ctx.Directory().Grouped(ctx.Ctx)
	if err != nil {
		return err
	}

	var only models.Category
	if c.Category != "" {
		if only, err = models.ParseCategory(c.Category); err != nil {
			return err
		}
	}

	total := 0
	for _, g := range groups {
		if only != "" && g.Category != only {
			continue
		}
		fmt.Printf("%s (%d)\n", g.Category, len(g.Employees))
		for _, e := range g.Employees {
			email := e.Email
			if email == "" {
				email = "no email"
			}
			idStr := ""
			if c.ShowIDs {
				idStr = fmt.Sprintf(" (ID: %s)", e.ID)
			}
			fmt.Printf("  %s%s <%s>\n", e.Name, idStr, email)
		}
		total += len(g.Employees)
	}
	if total == 0 {
		fmt.Println("No employees found")
	}
	return nil
}

type EmployeeAddCmd struct {
	Name     string `arg:"" help:"Employee name."`
	Category string `short:"c" help:"Department (CEO, CMO, Marketing, Data, IT, Design, Accountant)." required:""`
	Email    string `short:"e" help:"Address that receives reminders."`
}

func (c *EmployeeAddCmd) Validate() error {
	if _, err := models.ParseCategory(c.Category); err != nil {
		return fmt.Errorf("%w (expected one of %s)", err, categoryList())
	}
	return nil
}

func (c *EmployeeAddCmd) Run(ctx *cli.Context) error {
	cat, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	e, err := ctx.Directory().Create(ctx.Ctx, c.Name, cat, c.Email)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added %s to %s (ID: %s)\n", e.Name, e.Category, e.ID)
	return nil
}

type EmployeeEmailCmd struct {
	Name     string `arg:"" help:"Employee name."`
	Email    string `arg:"" help:"New email address."`
	Category string `short:"c" help:"Department of the employee." required:""`
}

func (c *EmployeeEmailCmd) Run(ctx *cli.Context) error {
	cat, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	e, err := ctx.Directory().UpdateEmail(ctx.Ctx, c.Name, cat, c.Email)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Updated email for %s to %s\n", e.Name, e.Email)
	return nil
}

type EmployeeDeleteCmd struct {
	ID string `arg:"" help:"Employee ID."`
}

func (c *EmployeeDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Directory().Delete(ctx.Ctx, c.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted employee %s\n", c.ID)
	return nil
}

type EmployeeSeedCmd struct {
	File string `arg:"" type:"existingfile" help:"JSON roster: an array of {name, category, email}."`
}

func (c *EmployeeSeedCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()

	roster, err := directory.ReadRoster(f)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	result, err := ctx.Directory().Seed(ctx.Ctx, roster)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Seeded roster: %d created, %d updated\n", result.Created, result.Updated)
	if len(result.Errors) > 0 {
		fmt.Printf("⚠ %d entries failed:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}
	return nil
}

func categoryList() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
