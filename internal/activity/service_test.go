package activity

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newService(t *testing.T) (*Service, *sqlite.Store, *clock) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "workform.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { store.Close() })

	c := &clock{t: time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)}
	svc := New(store)
	svc.now = c.now
	return svc, store, c
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newService(t)

	_, err := svc.Submit(context.Background(), Submission{
		EmployeeName: " ",
		Date:         "03-06-2024",
		Tasks:        []models.TaskInput{{TaskName: "ok"}, {ProjectName: "P"}},
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	var fields []string
	for _, f := range apperrors.Fields(err) {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"employeeName", "date", "tasks[1].taskName"}, fields)

	_, err = svc.Submit(context.Background(), Submission{EmployeeName: "Aisha", Date: "2024-06-03"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRenameThenCrossDayHistory(t *testing.T) {
	svc, _, c := newService(t)
	ctx := context.Background()

	first, err := svc.Submit(ctx, Submission{
		EmployeeName: "Aisha",
		Date:         "2024-06-03",
		Tasks:        []models.TaskInput{{ID: "t1", ProjectName: "P1", TaskName: "Design mockup"}},
	})
	require.NoError(t, err)
	assert.False(t, first.Tasks[0].IsUpdated)

	c.advance(time.Hour)
	renamed, err := svc.Submit(ctx, Submission{
		EmployeeName: "Aisha",
		Date:         "2024-06-03",
		Tasks:        []models.TaskInput{{ID: "t1", ProjectName: "P1", TaskName: "Design mockup v2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, renamed.ID, "one record per employee and date")
	require.Len(t, renamed.Tasks, 1)
	assert.Equal(t, "Design mockup v2", renamed.Tasks[0].TaskName)
	assert.Equal(t, "Design mockup", renamed.Tasks[0].OldTaskName)
	assert.True(t, renamed.Tasks[0].IsUpdated)

	c.advance(7 * 24 * time.Hour)
	later, err := svc.Submit(ctx, Submission{
		EmployeeName: "Aisha",
		Date:         "2024-06-10",
		Tasks:        []models.TaskInput{{ProjectName: "P1", TaskName: "Design mockup v2"}},
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, later.ID)
	assert.True(t, later.Tasks[0].IsUpdated)
	assert.Equal(t, "2024-06-03", later.Tasks[0].FirstWorkedOnDate)
	assert.Empty(t, later.Tasks[0].OldTaskName)

	all, err := svc.List(ctx, Query{EmployeeName: "Aisha"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestIdempotentResubmission(t *testing.T) {
	svc, store, c := newService(t)
	ctx := context.Background()

	sub := Submission{
		EmployeeName: "Aisha",
		Date:         "2024-06-03",
		Tasks: []models.TaskInput{
			{ID: "t1", ProjectName: "P1", TaskName: "Mockup", OutcomeLink: "https://x.example"},
			{ID: "t2", ProjectName: "P2", TaskName: "Review"},
		},
	}
	_, err := svc.Submit(ctx, sub)
	require.NoError(t, err)
	before, err := store.GetActivity(ctx, "Aisha", "2024-06-03")
	require.NoError(t, err)

	c.advance(time.Hour)
	_, err = svc.Submit(ctx, sub)
	require.NoError(t, err)
	after, err := store.GetActivity(ctx, "Aisha", "2024-06-03")
	require.NoError(t, err)

	require.Len(t, after.Tasks, 2)
	for i := range after.Tasks {
		assert.False(t, after.Tasks[i].IsUpdated)
		assert.Nil(t, after.Tasks[i].UpdatedAt)
		assert.True(t, before.Tasks[i].CreatedAt.Equal(after.Tasks[i].CreatedAt))
	}
}

func TestSubmitFillsEmployeeID(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, Submission{EmployeeName: "Aisha", Date: "2024-06-03", Tasks: []models.TaskInput{{TaskName: "A"}}})
	require.NoError(t, err)

	a, err := svc.Submit(ctx, Submission{EmployeeName: "Aisha", EmployeeID: "emp-7", Date: "2024-06-03", Tasks: []models.TaskInput{{TaskName: "A"}}})
	require.NoError(t, err)
	assert.Equal(t, "emp-7", a.EmployeeID)

	byID, err := svc.List(ctx, Query{EmployeeID: "emp-7"})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
}

// racingStore reports no record on the first lookup and a duplicate on
// insert, as if a concurrent request created the record in between.
type racingStore struct {
	Store
	lookups int
}

func (r *racingStore) GetActivity(ctx context.Context, name, date string) (models.WorkActivity, error) {
	r.lookups++
	if r.lookups == 1 {
		return models.WorkActivity{}, storage.ErrNotFound
	}
	return r.Store.GetActivity(ctx, name, date)
}

func TestSubmitRetriesDuplicateInsertAsUpdate(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, Submission{
		EmployeeName: "Aisha",
		Date:         "2024-06-03",
		Tasks:        []models.TaskInput{{ID: "t1", ProjectName: "P1", TaskName: "Old"}},
	})
	require.NoError(t, err)

	racing := &racingStore{Store: store}
	svc.store = racing

	a, err := svc.Submit(ctx, Submission{
		EmployeeName: "Aisha",
		Date:         "2024-06-03",
		Tasks:        []models.TaskInput{{ID: "t1", ProjectName: "P1", TaskName: "New"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, racing.lookups)
	assert.Equal(t, "Old", a.Tasks[0].OldTaskName)

	all, err := store.ListActivities(ctx, storage.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	a, err := svc.Submit(ctx, Submission{EmployeeName: "Aisha", Date: "2024-06-03", Tasks: []models.TaskInput{{TaskName: "A"}}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), apperrors.ErrValidation)
}

func TestSuggestions(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	for _, sub := range []Submission{
		{EmployeeName: "Aisha", EmployeeID: "e1", Date: "2024-06-03", Tasks: []models.TaskInput{{TaskName: "Mockup"}, {TaskName: "Audit"}}},
		{EmployeeName: "Aisha", EmployeeID: "e1", Date: "2024-06-04", Tasks: []models.TaskInput{{TaskName: "Mockup"}}},
		{EmployeeName: "Aisha", EmployeeID: "e1", Date: "2024-05-31", Tasks: []models.TaskInput{{TaskName: "May task"}}},
		{EmployeeName: "Dev", EmployeeID: "e2", Date: "2024-06-03", Tasks: []models.TaskInput{{TaskName: "Deploy"}}},
	} {
		_, err := svc.Submit(ctx, sub)
		require.NoError(t, err)
	}

	names, err := svc.Suggestions(ctx, "e1", "", "2024-06-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"Audit", "Mockup"}, names)

	names, err = svc.Suggestions(ctx, "", "Dev", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Deploy"}, names)

	_, err = svc.Suggestions(ctx, "", "", "2024-06-01")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListValidatesRange(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.List(context.Background(), Query{From: "yesterday"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
