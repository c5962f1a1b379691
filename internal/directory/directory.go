// Package directory manages the employee roster.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/validation"
)

// Store is the persistence the directory needs.
type Store interface {
	AddEmployee(ctx context.Context, e models.Employee) error
	GetEmployee(ctx context.Context, id string) (models.Employee, error)
	FindEmployee(ctx context.Context, name string, category models.Category) (models.Employee, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	UpdateEmployee(ctx context.Context, e models.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// SeedError is one roster entry that could not be applied.
type SeedError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// SeedResult summarises a bulk seed.
type SeedResult struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Errors  []SeedError `json:"errors"`
}

func validate(name string, category models.Category, email string) (string, models.Category, string, error) {
	var verr apperrors.ValidationError

	name = strings.TrimSpace(name)
	if name == "" {
		verr.Add("name", "required")
	}

	cat, err := models.ParseCategory(string(category))
	if err != nil {
		verr.Add("category", "%v", err)
	}

	email = strings.TrimSpace(email)
	if email != "" && !validation.Email(email) {
		verr.Add("email", "invalid email address %q", email)
	}

	return name, cat, email, verr.Err()
}

// Create adds an employee. (name, category) must be unique.
func (s *Service) Create(ctx context.Context, name string, category models.Category, email string) (models.Employee, error) {
	name, cat, email, err := validate(name, category, email)
	if err != nil {
		return models.Employee{}, err
	}

	now := s.now().UTC()
	e := models.Employee{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  cat,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddEmployee(ctx, e); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Employee{}, apperrors.Conflict("employee %q already exists in %s", name, cat)
		}
		return models.Employee{}, fmt.Errorf("adding employee: %w", err)
	}

	logger.Info("employee created", "name", e.Name, "category", e.Category)
	return e, nil
}

// List returns every employee ordered by category, then name.
func (s *Service) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	sort.SliceStable(employees, func(i, j int) bool {
		ri, rj := employees[i].Category.Rank(), employees[j].Category.Rank()
		if ri != rj {
			// Unknown categories sort last.
			if ri < 0 {
				return false
			}
			if rj < 0 {
				return true
			}
			return ri < rj
		}
		return employees[i].Name < employees[j].Name
	})
	return employees, nil
}

// Grouped returns employees bucketed by category in category order.
// Categories without employees are omitted.
func (s *Service) Grouped(ctx context.Context) ([]models.CategoryGroup, error) {
	employees, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	byCat := make(map[models.Category][]models.Employee)
	for _, e := range employees {
		byCat[e.Category] = append(byCat[e.Category], e)
	}

	groups := make([]models.CategoryGroup, 0, len(byCat))
	for _, c := range models.Categories {
		if len(byCat[c]) > 0 {
			groups = append(groups, models.CategoryGroup{Category: c, Employees: byCat[c]})
		}
	}
	return groups, nil
}

// Delete removes an employee by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.Invalid("id", "required")
	}
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperrors.NotFound("employee %s", id)
		}
		return fmt.Errorf("deleting employee: %w", err)
	}
	logger.Info("employee deleted", "id", id)
	return nil
}

// UpdateEmail sets the email of the employee identified by (name, category).
func (s *Service) UpdateEmail(ctx context.Context, name string, category models.Category, email string) (models.Employee, error) {
	name, cat, email, err := validate(name, category, email)
	if err != nil {
		return models.Employee{}, err
	}
	if email == "" {
		return models.Employee{}, apperrors.Invalid("email", "required")
	}

	e, err := s.store.FindEmployee(ctx, name, cat)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Employee{}, apperrors.NotFound("employee %q in %s", name, cat)
		}
		return models.Employee{}, fmt.Errorf("finding employee: %w", err)
	}

	e.Email = email
	e.UpdatedAt = s.now().UTC()
	if err := s.store.UpdateEmployee(ctx, e); err != nil {
		return models.Employee{}, fmt.Errorf("updating employee: %w", err)
	}
	return e, nil
}

// Seed creates every roster entry, or updates the email of entries that
// already exist. A failing entry is recorded and the rest still run.
func (s *Service) Seed(ctx context.Context, roster []models.RosterEntry) (SeedResult, error) {
	result := SeedResult{Errors: []SeedError{}}

	for _, entry := range roster {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		_, err := s.Create(ctx, entry.Name, models.Category(entry.Category), entry.Email)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, apperrors.ErrConflict):
			if strings.TrimSpace(entry.Email) == "" {
				continue
			}
			if _, err := s.UpdateEmail(ctx, entry.Name, models.Category(entry.Category), entry.Email); err != nil {
				result.Errors = append(result.Errors, SeedError{Name: entry.Name, Error: err.Error()})
				continue
			}
			result.Updated++
		default:
			result.Errors = append(result.Errors, SeedError{Name: entry.Name, Error: err.Error()})
		}
	}

	logger.Info("roster seeded", "created", result.Created, "updated", result.Updated, "errors", len(result.Errors))
	return result, nil
}

// ReadRoster decodes a JSON array of roster entries.
func ReadRoster(r io.Reader) ([]models.RosterEntry, error) {
	var roster []models.RosterEntry
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&roster); err != nil {
		return nil, apperrors.Invalid("roster", "expected a JSON array of {name, category, email}: %v", err)
	}
	return roster, nil
}
