// Package reminder nudges employees who have not submitted today's tasks,
// by email and through the chat channel's email relay.
package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/workform/internal/constants"
	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/mailer"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/validation"
)

// Calendar decides whether reminders go out on a date.
type Calendar interface {
	IsWorkingDay(ctx context.Context, date string) (bool, error)
}

type Store interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListActivities(ctx context.Context, f storage.ActivityFilter) ([]models.WorkActivity, error)
}

type Config struct {
	// ChatMailbox is the address of the chat channel's email integration.
	// Chat reminders are skipped when it is empty.
	ChatMailbox string
	// BaseURL, when set, adds a link to the submission form.
	BaseURL   string
	Signature string
	Location  *time.Location
}

type Dispatcher struct {
	cal   Calendar
	store Store
	mail  mailer.Sender
	cfg   Config
	now   func() time.Time
}

func New(cal Calendar, store Store, mail mailer.Sender, cfg Config) *Dispatcher {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Signature == "" {
		cfg.Signature = "Workform Team"
	}
	return &Dispatcher{cal: cal, store: store, mail: mail, cfg: cfg, now: time.Now}
}

func (d *Dispatcher) today() string {
	return d.now().In(d.cfg.Location).Format(constants.DateFormat)
}

// Pending returns the employees with an email address who have no activity
// dated date. Names are compared case-insensitively.
func (d *Dispatcher) Pending(ctx context.Context, date string) ([]models.Employee, error) {
	employees, err := d.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	activities, err := d.store.ListActivities(ctx, storage.ActivityFilter{From: date, To: date})
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	submitted := make(map[string]bool, len(activities))
	for _, a := range activities {
		submitted[strings.ToLower(a.EmployeeName)] = true
	}

	var pending []models.Employee
	for _, e := range employees {
		if e.HasEmail() && !submitted[strings.ToLower(e.Name)] {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

// Send dispatches one reminder round for today. Nothing is sent on a
// non-working day. Delivery failures are recorded per recipient and never
// stop the batch.
func (d *Dispatcher) Send(ctx context.Context, t models.ReminderType) (models.ReminderReport, error) {
	report := models.ReminderReport{Results: []models.ReminderResult{}}
	if _, err := models.ParseReminderType(string(t)); err != nil {
		return report, apperrors.Invalid("type", "%v", err)
	}

	today := d.today()
	working, err := d.cal.IsWorkingDay(ctx, today)
	if err != nil {
		return report, err
	}
	if !working {
		logger.Info("skipping reminders on non-working day", "date", today, "type", t)
		return report, nil
	}

	pending, err := d.Pending(ctx, today)
	if err != nil {
		return report, err
	}
	report.Total = len(pending)

	for _, e := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		var res models.ReminderResult
		res.Employee = e.Name
		if err := d.email(ctx, t, e.Name, e.Email); err != nil {
			res.Errors.Email = err.Error()
		} else {
			res.Email = true
		}
		if err := d.chat(ctx, t, e.Name); err != nil {
			res.Errors.Slack = err.Error()
		} else {
			res.Slack = true
		}
		report.Results = append(report.Results, res)
	}

	logger.Info("reminders dispatched", "date", today, "type", t, "recipients", report.Total)
	return report, nil
}

func (d *Dispatcher) email(ctx context.Context, t models.ReminderType, name, addr string) error {
	body, err := RenderEmail(t, name, d.cfg.BaseURL, d.cfg.Signature)
	if err != nil {
		return err
	}
	err = d.mail.Send(ctx, mailer.Message{To: addr, Subject: Subject(t), Body: body, HTML: true})
	if err != nil {
		logger.Warn("reminder email failed", "employee", name, "err", err)
	}
	return err
}

func (d *Dispatcher) chat(ctx context.Context, t models.ReminderType, name string) error {
	if d.cfg.ChatMailbox == "" {
		return fmt.Errorf("chat relay mailbox is not configured")
	}
	err := d.mail.Send(ctx, mailer.Message{To: d.cfg.ChatMailbox, Subject: ChatSubject(name), Body: ChatText(t, name)})
	if err != nil {
		logger.Warn("chat reminder failed", "employee", name, "err", err)
	}
	return err
}

// TestRequest addresses a single test send.
type TestRequest struct {
	EmployeeEmail string              `json:"employeeEmail"`
	EmployeeName  string              `json:"employeeName"`
	ReminderType  models.ReminderType `json:"reminderType"`
}

func (r *TestRequest) normalize() error {
	var verr apperrors.ValidationError
	r.EmployeeName = strings.TrimSpace(r.EmployeeName)
	r.EmployeeEmail = strings.TrimSpace(r.EmployeeEmail)
	if r.EmployeeName == "" {
		verr.Add("employeeName", "required")
	}
	if r.EmployeeEmail == "" {
		verr.Add("employeeEmail", "required")
	} else if !validation.Email(r.EmployeeEmail) {
		verr.Add("employeeEmail", "invalid email address %q", r.EmployeeEmail)
	}
	if r.ReminderType == "" {
		r.ReminderType = models.ReminderFirst
	} else if _, err := models.ParseReminderType(string(r.ReminderType)); err != nil {
		verr.Add("reminderType", "%v", err)
	}
	return verr.Err()
}

// SendTestEmail sends one reminder email regardless of calendar or
// submission state. It returns the request as normalized for sending.
func (d *Dispatcher) SendTestEmail(ctx context.Context, r TestRequest) (TestRequest, error) {
	if err := r.normalize(); err != nil {
		return r, err
	}
	if err := d.email(ctx, r.ReminderType, r.EmployeeName, r.EmployeeEmail); err != nil {
		return r, fmt.Errorf("sending test email: %w", err)
	}
	return r, nil
}

// SendTestChat posts one chat reminder regardless of calendar or submission
// state. It returns the request as normalized for sending.
func (d *Dispatcher) SendTestChat(ctx context.Context, r TestRequest) (TestRequest, error) {
	if err := r.normalize(); err != nil {
		return r, err
	}
	if err := d.chat(ctx, r.ReminderType, r.EmployeeName); err != nil {
		return r, fmt.Errorf("sending test chat message: %w", err)
	}
	return r, nil
}
