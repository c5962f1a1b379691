package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/workform/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// ActivityFilter narrows ListActivities. Empty fields do not filter.
// From and To are inclusive YYYY-MM-DD bounds; Before is exclusive.
type ActivityFilter struct {
	EmployeeName string
	EmployeeID   string
	From         string
	To           string
	Before       string
}

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Employees
	AddEmployee(ctx context.Context, e models.Employee) error
	GetEmployee(ctx context.Context, id string) (models.Employee, error)
	FindEmployee(ctx context.Context, name string, category models.Category) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, e models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error

	// Work activities. (employee_name, date) is unique; InsertActivity
	// returns ErrDuplicate when another writer got there first.
	GetActivity(ctx context.Context, employeeName, date string) (models.WorkActivity, error)
	InsertActivity(ctx context.Context, a models.WorkActivity) error
	UpdateActivity(ctx context.Context, a models.WorkActivity) error
	// ListActivities returns matches ordered by date descending, then
	// employee name ascending.
	ListActivities(ctx context.Context, f ActivityFilter) ([]models.WorkActivity, error)
	DeleteActivity(ctx context.Context, id string) error

	// Calendar
	GetCalendarDay(ctx context.Context, date string) (models.CalendarDay, error)
	// ListCalendarDays returns explicit entries with from <= date <= to.
	ListCalendarDays(ctx context.Context, from, to string) ([]models.CalendarDay, error)
	// UpsertCalendarDay writes the status for d.Date, keeping the existing
	// row id when one exists, and returns the stored row.
	UpsertCalendarDay(ctx context.Context, d models.CalendarDay) (models.CalendarDay, error)

	// Admins
	AddAdmin(ctx context.Context, a models.Admin) error
	GetAdmin(ctx context.Context, id string) (models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (models.Admin, error)

	// Utils
	GetConfigPath() string
}
