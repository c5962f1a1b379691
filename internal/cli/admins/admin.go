package admins

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/workform/internal/cli"
	"github.com/julianstephens/workform/internal/constants"
)

type AdminCreateCmd struct {
	Email    string `short:"e" help:"Admin login email."`
	Name     string `short:"n" help:"Display name."`
	Password string `env:"WORKFORM_ADMIN_PASSWORD" help:"Password. Prompted for when omitted on a terminal."`
}

func (c *AdminCreateCmd) Run(ctx *cli.Context) error {
	if c.Email == "" || c.Name == "" || c.Password == "" {
		if !cli.Interactive() {
			return errors.New("--email, --name and --password (or WORKFORM_ADMIN_PASSWORD) are required without a terminal")
		}
		if err := c.prompt(); err != nil {
			return err
		}
	}

	sessions, err := ctx.Sessions()
	if err != nil {
		return err
	}
	admin, err := sessions.Signup(ctx.Ctx, c.Email, c.Password, c.Name)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created admin %s <%s>\n", admin.Name, admin.Email)
	return nil
}

func (c *AdminCreateCmd) prompt() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&c.Email),
			huh.NewInput().
				Title("Name").
				Value(&c.Name),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Validate(func(s string) error {
					if len(s) < constants.MinPasswordLength {
						return fmt.Errorf("must be at least %d characters", constants.MinPasswordLength)
					}
					return nil
				}).
				Value(&c.Password),
		),
	)
	return form.Run()
}
