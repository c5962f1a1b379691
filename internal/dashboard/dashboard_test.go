package dashboard

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

func tasks(n int) []models.Task {
	out := make([]models.Task, n)
	for i := range out {
		out[i] = models.Task{ID: fmt.Sprintf("t%d", i), TaskName: fmt.Sprintf("task %d", i)}
	}
	return out
}

func roster(n int) []models.Employee {
	cats := []models.Category{models.CategoryIT, models.CategoryDesign, models.CategoryCEO}
	out := make([]models.Employee, n)
	for i := range out {
		out[i] = models.Employee{ID: fmt.Sprintf("e%d", i), Name: fmt.Sprintf("Emp %d", i), Category: cats[i%len(cats)]}
	}
	return out
}

func TestComputeSubmissionRate(t *testing.T) {
	employees := roster(10)
	activities := []models.WorkActivity{
		{EmployeeName: "Emp 0", Date: "2024-06-12", Tasks: tasks(2)},
		{EmployeeName: "Emp 1", Date: "2024-06-12", Tasks: tasks(1)},
		{EmployeeName: "emp 1", Date: "2024-06-12", Tasks: tasks(1)},
		{EmployeeName: "Emp 2", Date: "2024-06-12", Tasks: tasks(3)},
		{EmployeeName: "Emp 3", Date: "2024-06-12", Tasks: tasks(1)},
		{EmployeeName: "Emp 0", Date: "2024-06-10", Tasks: tasks(4)},
		{EmployeeName: "Emp 0", Date: "2024-06-06", Tasks: tasks(5)},
		{EmployeeName: "Emp 0", Date: "2024-06-01", Tasks: tasks(6)},
		{EmployeeName: "Emp 0", Date: "2024-05-31", Tasks: tasks(7)},
	}

	st := Compute("2024-06-12", employees, activities)

	assert.Equal(t, 10, st.TotalEmployees)
	assert.Equal(t, 4, st.SubmittedToday)
	assert.Equal(t, 6, st.PendingToday)
	assert.Equal(t, 40, st.SubmissionRate)
	assert.Equal(t, 8, st.TasksToday)
	assert.Equal(t, 8+4+5, st.TasksThisWeek)
	assert.Equal(t, 8+4+5+6, st.TasksThisMonth)

	require.Len(t, st.RecentActivities, 5)
	assert.Equal(t, "Emp 0", st.RecentActivities[0].EmployeeName)
	assert.Equal(t, 2, st.RecentActivities[0].TaskCount)

	assert.Equal(t, []models.CategoryCount{
		{Category: models.CategoryCEO, Count: 3},
		{Category: models.CategoryIT, Count: 4},
		{Category: models.CategoryDesign, Count: 3},
	}, st.CategoryDistribution)
}

func TestComputeEmptyDirectory(t *testing.T) {
	st := Compute("2024-06-12", nil, []models.WorkActivity{
		{EmployeeName: "Ghost", Date: "2024-06-12", Tasks: tasks(1)},
	})

	assert.Equal(t, 0, st.TotalEmployees)
	assert.Equal(t, 1, st.SubmittedToday)
	assert.Equal(t, 0, st.PendingToday)
	assert.Equal(t, 0, st.SubmissionRate)
	assert.Empty(t, st.CategoryDistribution)
}

func TestComputeRounding(t *testing.T) {
	st := Compute("2024-06-12", roster(3), []models.WorkActivity{
		{EmployeeName: "Emp 0", Date: "2024-06-12", Tasks: tasks(1)},
		{EmployeeName: "Emp 1", Date: "2024-06-12", Tasks: tasks(1)},
	})
	assert.Equal(t, 67, st.SubmissionRate)
}

func TestStatsUsesTimezone(t *testing.T) {
	ctx := context.Background()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "workform.db"))
	require.NoError(t, store.Init(ctx))
	t.Cleanup(func() { store.Close() })

	now := time.Now().UTC()
	for _, e := range roster(2) {
		e.CreatedAt, e.UpdatedAt = now, now
		require.NoError(t, store.AddEmployee(ctx, e))
	}
	require.NoError(t, store.InsertActivity(ctx, models.WorkActivity{
		ID: "a1", EmployeeName: "Emp 0", Date: "2024-06-13", Tasks: tasks(2), CreatedAt: now, UpdatedAt: now,
	}))

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	svc := New(store, loc)
	// 20:00 UTC on the 12th is already the 13th in India.
	svc.now = func() time.Time { return time.Date(2024, 6, 12, 20, 0, 0, 0, time.UTC) }

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-13", st.Date)
	assert.Equal(t, 1, st.SubmittedToday)
	assert.Equal(t, 50, st.SubmissionRate)
	assert.Equal(t, 2, st.TasksToday)
}
