// Package dashboard folds the directory and the activity log into the
// admin statistics snapshot.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/workform/internal/constants"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/utils"
)

type Store interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListActivities(ctx context.Context, f storage.ActivityFilter) ([]models.WorkActivity, error)
}

type Service struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// New returns a Service that computes "today" in loc.
func New(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

// Today is the civil date the statistics are computed for.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(constants.DateFormat)
}

// Stats recomputes the dashboard from scratch.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	employees, err := s.store.ListEmployees(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("listing employees: %w", err)
	}
	activities, err := s.store.ListActivities(ctx, storage.ActivityFilter{})
	if err != nil {
		return models.Stats{}, fmt.Errorf("listing activities: %w", err)
	}
	return Compute(s.Today(), employees, activities), nil
}

// Compute builds the snapshot for today. activities must be ordered newest
// first, as storage returns them.
func Compute(today string, employees []models.Employee, activities []models.WorkActivity) models.Stats {
	st := models.Stats{
		Date:                 today,
		TotalEmployees:       len(employees),
		RecentActivities:     []models.RecentActivity{},
		CategoryDistribution: []models.CategoryCount{},
	}

	weekStart, _ := utils.AddDays(today, -(constants.RollingWeekDays - 1))
	monthStart, _ := utils.FirstOfMonth(today)

	submitted := make(map[string]bool)
	for _, a := range activities {
		n := len(a.Tasks)
		if a.Date == today {
			submitted[strings.ToLower(a.EmployeeName)] = true
			st.TasksToday += n
		}
		if a.Date >= weekStart && a.Date <= today {
			st.TasksThisWeek += n
		}
		if a.Date >= monthStart && a.Date <= today {
			st.TasksThisMonth += n
		}
		if len(st.RecentActivities) < constants.RecentActivityLimit {
			st.RecentActivities = append(st.RecentActivities, models.RecentActivity{
				EmployeeName: a.EmployeeName,
				Date:         a.Date,
				TaskCount:    n,
			})
		}
	}

	st.SubmittedToday = len(submitted)
	st.PendingToday = max(st.TotalEmployees-st.SubmittedToday, 0)
	if st.TotalEmployees > 0 {
		st.SubmissionRate = int(math.Round(float64(st.SubmittedToday) / float64(st.TotalEmployees) * 100))
	}

	counts := make(map[models.Category]int)
	for _, e := range employees {
		counts[e.Category]++
	}
	for _, c := range models.Categories {
		if counts[c] > 0 {
			st.CategoryDistribution = append(st.CategoryDistribution, models.CategoryCount{Category: c, Count: counts[c]})
		}
	}

	return st
}
