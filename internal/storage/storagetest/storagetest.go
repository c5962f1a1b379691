// Package storagetest holds behaviour checks shared by every storage.Provider
// implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/storage"
)

// Run exercises p, which must be initialised and empty.
func Run(t *testing.T, p storage.Provider) {
	t.Run("Employees", func(t *testing.T) { testEmployees(t, p) })
	t.Run("Activities", func(t *testing.T) { testActivities(t, p) })
	t.Run("Calendar", func(t *testing.T) { testCalendar(t, p) })
	t.Run("Admins", func(t *testing.T) { testAdmins(t, p) })
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func testEmployees(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	ts := now()

	e := models.Employee{
		ID:        uuid.NewString(),
		Name:      "Asha Rao",
		Category:  models.CategoryData,
		Email:     "asha@example.com",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := p.AddEmployee(ctx, e); err != nil {
		t.Fatalf("AddEmployee: %v", err)
	}

	dup := e
	dup.ID = uuid.NewString()
	if err := p.AddEmployee(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("AddEmployee duplicate: got %v, want ErrDuplicate", err)
	}

	// Same name in another category is a different employee.
	other := e
	other.ID = uuid.NewString()
	other.Category = models.CategoryIT
	other.Email = ""
	if err := p.AddEmployee(ctx, other); err != nil {
		t.Fatalf("AddEmployee other category: %v", err)
	}

	got, err := p.GetEmployee(ctx, e.ID)
	if err != nil {
		t.Fatalf("GetEmployee: %v", err)
	}
	if got.Name != e.Name || got.Category != e.Category || got.Email != e.Email {
		t.Errorf("GetEmployee = %+v, want %+v", got, e)
	}
	if !got.CreatedAt.Equal(ts) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, ts)
	}

	found, err := p.FindEmployee(ctx, "Asha Rao", models.CategoryIT)
	if err != nil {
		t.Fatalf("FindEmployee: %v", err)
	}
	if found.ID != other.ID {
		t.Errorf("FindEmployee returned %s, want %s", found.ID, other.ID)
	}
	if _, err := p.FindEmployee(ctx, "Nobody", models.CategoryIT); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("FindEmployee missing: got %v, want ErrNotFound", err)
	}

	found.Email = "asha.it@example.com"
	found.UpdatedAt = now()
	if err := p.UpdateEmployee(ctx, found); err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}
	updated, _ := p.GetEmployee(ctx, found.ID)
	if updated.Email != "asha.it@example.com" {
		t.Errorf("email after update = %q", updated.Email)
	}

	list, err := p.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListEmployees returned %d, want 2", len(list))
	}

	if err := p.DeleteEmployee(ctx, other.ID); err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}
	if err := p.DeleteEmployee(ctx, other.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteEmployee twice: got %v, want ErrNotFound", err)
	}
	if _, err := p.GetEmployee(ctx, other.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetEmployee deleted: got %v, want ErrNotFound", err)
	}
}

func testActivities(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	ts := now()

	mk := func(name, date string, tasks ...string) models.WorkActivity {
		a := models.WorkActivity{
			ID:           uuid.NewString(),
			EmployeeName: name,
			Date:         date,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		for _, tn := range tasks {
			a.Tasks = append(a.Tasks, models.Task{ID: uuid.NewString(), ProjectName: "P", TaskName: tn, CreatedAt: ts})
		}
		return a
	}

	first := mk("Asha Rao", "2024-06-03", "Build report")
	if err := p.InsertActivity(ctx, first); err != nil {
		t.Fatalf("InsertActivity: %v", err)
	}
	if err := p.InsertActivity(ctx, mk("Asha Rao", "2024-06-03", "Other")); !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("InsertActivity duplicate: got %v, want ErrDuplicate", err)
	}
	for _, a := range []models.WorkActivity{
		mk("Asha Rao", "2024-06-01", "Kickoff"),
		mk("Vikram", "2024-06-03", "Ship"),
		mk("Vikram", "2024-06-04", "Ship"),
	} {
		if err := p.InsertActivity(ctx, a); err != nil {
			t.Fatalf("InsertActivity %s/%s: %v", a.EmployeeName, a.Date, err)
		}
	}

	got, err := p.GetActivity(ctx, "Asha Rao", "2024-06-03")
	if err != nil {
		t.Fatalf("GetActivity: %v", err)
	}
	if got.ID != first.ID || len(got.Tasks) != 1 || got.Tasks[0].TaskName != "Build report" {
		t.Errorf("GetActivity = %+v", got)
	}
	if _, err := p.GetActivity(ctx, "asha rao", "2024-06-03"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetActivity is keyed on the exact name, got %v", err)
	}

	upd := now()
	got.EmployeeID = "emp-1"
	got.Tasks[0].IsUpdated = true
	got.Tasks[0].OldTaskName = "Draft report"
	got.Tasks[0].UpdatedAt = &upd
	got.UpdatedAt = upd
	if err := p.UpdateActivity(ctx, got); err != nil {
		t.Fatalf("UpdateActivity: %v", err)
	}
	reloaded, _ := p.GetActivity(ctx, "Asha Rao", "2024-06-03")
	if reloaded.EmployeeID != "emp-1" || !reloaded.Tasks[0].IsUpdated || reloaded.Tasks[0].OldTaskName != "Draft report" {
		t.Errorf("UpdateActivity not persisted: %+v", reloaded)
	}
	if reloaded.Tasks[0].UpdatedAt == nil || !reloaded.Tasks[0].UpdatedAt.Equal(upd) {
		t.Errorf("task UpdatedAt = %v, want %v", reloaded.Tasks[0].UpdatedAt, upd)
	}

	all, err := p.ListActivities(ctx, storage.ActivityFilter{})
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	wantOrder := []string{"2024-06-04/Vikram", "2024-06-03/Asha Rao", "2024-06-03/Vikram", "2024-06-01/Asha Rao"}
	if len(all) != len(wantOrder) {
		t.Fatalf("ListActivities returned %d, want %d", len(all), len(wantOrder))
	}
	for i, a := range all {
		if key := a.Date + "/" + a.EmployeeName; key != wantOrder[i] {
			t.Errorf("ListActivities[%d] = %s, want %s", i, key, wantOrder[i])
		}
	}

	prior, _ := p.ListActivities(ctx, storage.ActivityFilter{EmployeeName: "Asha Rao", Before: "2024-06-03"})
	if len(prior) != 1 || prior[0].Date != "2024-06-01" {
		t.Errorf("Before filter returned %+v", prior)
	}

	byID, _ := p.ListActivities(ctx, storage.ActivityFilter{EmployeeID: "emp-1"})
	if len(byID) != 1 || byID[0].ID != first.ID {
		t.Errorf("EmployeeID filter returned %+v", byID)
	}

	ranged, _ := p.ListActivities(ctx, storage.ActivityFilter{From: "2024-06-02", To: "2024-06-03"})
	if len(ranged) != 2 {
		t.Errorf("From/To filter returned %d, want 2", len(ranged))
	}

	if err := p.DeleteActivity(ctx, first.ID); err != nil {
		t.Fatalf("DeleteActivity: %v", err)
	}
	if err := p.DeleteActivity(ctx, first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteActivity twice: got %v, want ErrNotFound", err)
	}
}

func testCalendar(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	ts := now()

	if _, err := p.GetCalendarDay(ctx, "2024-08-15"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetCalendarDay unset: got %v, want ErrNotFound", err)
	}

	d, err := p.UpsertCalendarDay(ctx, models.CalendarDay{
		ID: uuid.NewString(), Date: "2024-08-15", Status: models.DayHoliday, CreatedAt: ts, UpdatedAt: ts,
	})
	if err != nil {
		t.Fatalf("UpsertCalendarDay: %v", err)
	}
	if d.Status != models.DayHoliday {
		t.Errorf("status = %s, want holiday", d.Status)
	}

	again, err := p.UpsertCalendarDay(ctx, models.CalendarDay{
		ID: uuid.NewString(), Date: "2024-08-15", Status: models.DayWorking, CreatedAt: now(), UpdatedAt: now(),
	})
	if err != nil {
		t.Fatalf("UpsertCalendarDay again: %v", err)
	}
	if again.ID != d.ID {
		t.Errorf("upsert replaced row id %s with %s", d.ID, again.ID)
	}
	if again.Status != models.DayWorking {
		t.Errorf("status after upsert = %s, want working", again.Status)
	}

	if _, err := p.UpsertCalendarDay(ctx, models.CalendarDay{
		ID: uuid.NewString(), Date: "2024-09-01", Status: models.DayWorking, CreatedAt: ts, UpdatedAt: ts,
	}); err != nil {
		t.Fatalf("UpsertCalendarDay september: %v", err)
	}

	days, err := p.ListCalendarDays(ctx, "2024-08-01", "2024-08-31")
	if err != nil {
		t.Fatalf("ListCalendarDays: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2024-08-15" {
		t.Errorf("ListCalendarDays = %+v", days)
	}
}

func testAdmins(t *testing.T, p storage.Provider) {
	ctx := context.Background()
	ts := now()

	a := models.Admin{
		ID:           uuid.NewString(),
		Email:        "ops@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Ops",
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := p.AddAdmin(ctx, a); err != nil {
		t.Fatalf("AddAdmin: %v", err)
	}

	dup := a
	dup.ID = uuid.NewString()
	if err := p.AddAdmin(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
		t.Fatalf("AddAdmin duplicate: got %v, want ErrDuplicate", err)
	}

	byEmail, err := p.GetAdminByEmail(ctx, "ops@example.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if byEmail.ID != a.ID || byEmail.PasswordHash != a.PasswordHash {
		t.Errorf("GetAdminByEmail = %+v", byEmail)
	}

	if _, err := p.GetAdmin(ctx, uuid.NewString()); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetAdmin missing: got %v, want ErrNotFound", err)
	}
}
