// Package activity stores daily work submissions and reconciles
// resubmissions against what was already recorded.
package activity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/utils"
)

// Store is the persistence the activity service needs.
type Store interface {
	GetActivity(ctx context.Context, employeeName, date string) (models.WorkActivity, error)
	InsertActivity(ctx context.Context, a models.WorkActivity) error
	UpdateActivity(ctx context.Context, a models.WorkActivity) error
	ListActivities(ctx context.Context, f storage.ActivityFilter) ([]models.WorkActivity, error)
	DeleteActivity(ctx context.Context, id string) error
}

// Submission is one employee's task list for one date.
type Submission struct {
	EmployeeName string             `json:"employeeName"`
	EmployeeID   string             `json:"employeeId,omitempty"`
	Date         string             `json:"date"`
	Tasks        []models.TaskInput `json:"tasks"`
}

// Query filters List. Empty fields do not filter.
type Query struct {
	EmployeeName string
	EmployeeID   string
	From         string
	To           string
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (sub *Submission) normalize() error {
	var verr apperrors.ValidationError

	sub.EmployeeName = strings.TrimSpace(sub.EmployeeName)
	if sub.EmployeeName == "" {
		verr.Add("employeeName", "required")
	}
	sub.EmployeeID = strings.TrimSpace(sub.EmployeeID)

	if !utils.ValidDate(sub.Date) {
		verr.Add("date", "must be YYYY-MM-DD, got %q", sub.Date)
	}

	if len(sub.Tasks) == 0 {
		verr.Add("tasks", "at least one task is required")
	}
	for i := range sub.Tasks {
		t := &sub.Tasks[i]
		t.TaskName = strings.TrimSpace(t.TaskName)
		t.ProjectName = strings.TrimSpace(t.ProjectName)
		t.OutcomeLink = strings.TrimSpace(t.OutcomeLink)
		if t.TaskName == "" {
			verr.Add(fmt.Sprintf("tasks[%d].taskName", i), "required")
		}
	}

	return verr.Err()
}

// Submit records sub. The first submission for (employee, date) creates a
// record with cross-day history flags; later ones are merged into it.
func (s *Service) Submit(ctx context.Context, sub Submission) (models.WorkActivity, error) {
	if err := sub.normalize(); err != nil {
		return models.WorkActivity{}, err
	}

	existing, err := s.store.GetActivity(ctx, sub.EmployeeName, sub.Date)
	switch {
	case err == nil:
		return s.resubmit(ctx, existing, sub)
	case errors.Is(err, storage.ErrNotFound):
	default:
		return models.WorkActivity{}, fmt.Errorf("loading activity: %w", err)
	}

	a, err := s.create(ctx, sub)
	if !errors.Is(err, storage.ErrDuplicate) {
		return a, err
	}

	// Another request created the record between our read and insert.
	logger.Debug("activity insert raced, merging instead", "employee", sub.EmployeeName, "date", sub.Date)
	existing, err = s.store.GetActivity(ctx, sub.EmployeeName, sub.Date)
	if err != nil {
		return models.WorkActivity{}, fmt.Errorf("reloading activity: %w", err)
	}
	return s.resubmit(ctx, existing, sub)
}

func (s *Service) create(ctx context.Context, sub Submission) (models.WorkActivity, error) {
	prior, err := s.store.ListActivities(ctx, storage.ActivityFilter{
		EmployeeName: sub.EmployeeName,
		Before:       sub.Date,
	})
	if err != nil {
		return models.WorkActivity{}, fmt.Errorf("loading prior activities: %w", err)
	}
	sort.SliceStable(prior, func(i, j int) bool { return prior[i].Date < prior[j].Date })

	now := s.now().UTC()
	a := models.WorkActivity{
		ID:           uuid.New().String(),
		EmployeeName: sub.EmployeeName,
		EmployeeID:   sub.EmployeeID,
		Date:         sub.Date,
		Tasks:        mergeFirstSubmission(sub.Tasks, prior, now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.InsertActivity(ctx, a); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.WorkActivity{}, err
		}
		return models.WorkActivity{}, fmt.Errorf("saving activity: %w", err)
	}

	logger.Info("activity created", "employee", a.EmployeeName, "date", a.Date, "tasks", len(a.Tasks))
	return a, nil
}

func (s *Service) resubmit(ctx context.Context, existing models.WorkActivity, sub Submission) (models.WorkActivity, error) {
	now := s.now().UTC()

	existing.Tasks = mergeResubmission(sub.Tasks, existing.Tasks, now)
	existing.UpdatedAt = now
	if existing.EmployeeID == "" {
		existing.EmployeeID = sub.EmployeeID
	}

	if err := s.store.UpdateActivity(ctx, existing); err != nil {
		return models.WorkActivity{}, fmt.Errorf("updating activity: %w", err)
	}

	logger.Info("activity updated", "employee", existing.EmployeeName, "date", existing.Date, "tasks", len(existing.Tasks))
	return existing, nil
}

// List returns activities newest first.
func (s *Service) List(ctx context.Context, q Query) ([]models.WorkActivity, error) {
	var verr apperrors.ValidationError
	if q.From != "" && !utils.ValidDate(q.From) {
		verr.Add("from", "must be YYYY-MM-DD, got %q", q.From)
	}
	if q.To != "" && !utils.ValidDate(q.To) {
		verr.Add("to", "must be YYYY-MM-DD, got %q", q.To)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	activities, err := s.store.ListActivities(ctx, storage.ActivityFilter{
		EmployeeName: strings.TrimSpace(q.EmployeeName),
		EmployeeID:   strings.TrimSpace(q.EmployeeID),
		From:         q.From,
		To:           q.To,
	})
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	if activities == nil {
		activities = []models.WorkActivity{}
	}
	return activities, nil
}

// Delete removes an activity by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Invalid("id", "required")
	}
	if err := s.store.DeleteActivity(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("activity %s", id)
		}
		return fmt.Errorf("deleting activity: %w", err)
	}
	logger.Info("activity deleted", "id", id)
	return nil
}

// Suggestions returns the distinct task names an employee used in the
// calendar month of date, sorted. The employee is matched by id when given,
// by exact name otherwise.
func (s *Service) Suggestions(ctx context.Context, employeeID, employeeName, date string) ([]string, error) {
	var verr apperrors.ValidationError
	if employeeID == "" && employeeName == "" {
		verr.Add("employeeId", "employeeId or employeeName is required")
	}
	if !utils.ValidDate(date) {
		verr.Add("date", "must be YYYY-MM-DD, got %q", date)
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	d, _ := utils.ParseDate(date)
	from, to, err := utils.MonthBounds(d.Year(), d.Month())
	if err != nil {
		return nil, err
	}

	f := storage.ActivityFilter{From: from, To: to}
	if employeeID != "" {
		f.EmployeeID = employeeID
	} else {
		f.EmployeeName = employeeName
	}
	activities, err := s.store.ListActivities(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, a := range activities {
		for _, t := range a.Tasks {
			if t.TaskName != "" && !seen[t.TaskName] {
				seen[t.TaskName] = true
				names = append(names, t.TaskName)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
