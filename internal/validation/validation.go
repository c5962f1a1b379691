package validation

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/utils"
)

// Email reports whether addr is a single bare address (no display name).
func Email(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return false
	}
	return parsed.Address == addr
}

// ConflictType represents the type of data integrity problem
type ConflictType string

const (
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictEmptyTaskName     ConflictType = "empty_task_name"
	ConflictDuplicateTaskID   ConflictType = "duplicate_task_id"
	ConflictUnknownEmployee   ConflictType = "unknown_employee"
	ConflictMissingEmail      ConflictType = "missing_email"
	ConflictInvalidCategory   ConflictType = "invalid_category"
	ConflictInvalidEmail      ConflictType = "invalid_email"
	ConflictFutureFirstWorked ConflictType = "first_worked_after_date"
)

// Conflict represents a detected problem in stored records
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD (if applicable)
	Items       []string // employee or task names involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Counts groups conflicts by type.
func (vr *ValidationResult) Counts() map[ConflictType]int {
	counts := make(map[ConflictType]int)
	for _, c := range vr.Conflicts {
		counts[c.Type]++
	}
	return counts
}

// Validator checks stored directory and activity records for problems the
// write paths should have prevented, or that only matter operationally
// (an employee without email never receives reminders).
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEmployees checks the directory.
func (v *Validator) ValidateEmployees(employees []models.Employee) ValidationResult {
	var result ValidationResult
	for _, e := range employees {
		if !e.Category.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidCategory,
				Description: fmt.Sprintf("Employee '%s' has unknown category '%s'", e.Name, e.Category),
				Items:       []string{e.Name},
			})
		}
		switch {
		case !e.HasEmail():
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingEmail,
				Description: fmt.Sprintf("Employee '%s' (%s) has no email and will not receive reminders", e.Name, e.Category),
				Items:       []string{e.Name},
			})
		case !Email(e.Email):
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidEmail,
				Description: fmt.Sprintf("Employee '%s' has malformed email '%s'", e.Name, e.Email),
				Items:       []string{e.Name},
			})
		}
	}
	return result
}

// ValidateActivities checks stored activities against each other and
// against the directory. Employee names are matched case-insensitively.
func (v *Validator) ValidateActivities(activities []models.WorkActivity, employees []models.Employee) ValidationResult {
	var result ValidationResult

	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		known[strings.ToLower(e.Name)] = true
	}

	unknown := make(map[string][]string)
	for _, a := range activities {
		if !utils.ValidDate(a.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Activity for '%s' has invalid date '%s'", a.EmployeeName, a.Date),
				Date:        a.Date,
				Items:       []string{a.EmployeeName},
			})
		}

		if !known[strings.ToLower(a.EmployeeName)] {
			unknown[a.EmployeeName] = append(unknown[a.EmployeeName], a.Date)
		}

		seen := make(map[string]bool, len(a.Tasks))
		for i, t := range a.Tasks {
			if strings.TrimSpace(t.TaskName) == "" {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictEmptyTaskName,
					Description: fmt.Sprintf("Activity for '%s' on %s has a task #%d without a name", a.EmployeeName, a.Date, i+1),
					Date:        a.Date,
					Items:       []string{a.EmployeeName},
				})
			}
			if t.ID != "" && seen[t.ID] {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateTaskID,
					Description: fmt.Sprintf("Activity for '%s' on %s repeats task id %s", a.EmployeeName, a.Date, t.ID),
					Date:        a.Date,
					Items:       []string{a.EmployeeName, t.TaskName},
				})
			}
			seen[t.ID] = true

			if t.FirstWorkedOnDate != "" && t.FirstWorkedOnDate >= a.Date {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictFutureFirstWorked,
					Description: fmt.Sprintf("Task '%s' for '%s' on %s claims first work on %s", t.TaskName, a.EmployeeName, a.Date, t.FirstWorkedOnDate),
					Date:        a.Date,
					Items:       []string{a.EmployeeName, t.TaskName},
				})
			}
		}
	}

	names := make([]string, 0, len(unknown))
	for name := range unknown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnknownEmployee,
			Description: fmt.Sprintf("'%s' has %d activit(ies) but is not in the employee directory", name, len(unknown[name])),
			Items:       []string{name},
		})
	}

	return result
}
