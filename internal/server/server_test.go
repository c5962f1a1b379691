package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/workform/internal/activity"
	"github.com/julianstephens/workform/internal/calendar"
	"github.com/julianstephens/workform/internal/dashboard"
	"github.com/julianstephens/workform/internal/directory"
	"github.com/julianstephens/workform/internal/mailer"
	"github.com/julianstephens/workform/internal/reminder"
	"github.com/julianstephens/workform/internal/report"
	"github.com/julianstephens/workform/internal/session"
	"github.com/julianstephens/workform/internal/storage/sqlite"
)

const cronSecret = "cron-secret"

type testEnv struct {
	router http.Handler
	mail   *mailer.Recorder
	cookie *http.Cookie
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "workform.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { store.Close() })

	sessions, err := session.New(store, []byte("test-secret"))
	require.NoError(t, err)

	cal := calendar.New(store)
	rec := &mailer.Recorder{}
	srv := New(Config{CronSecret: cronSecret}, Services{
		Store:      store,
		Directory:  directory.New(store),
		Activities: activity.New(store),
		Calendar:   cal,
		Sessions:   sessions,
		Dashboard:  dashboard.New(store, time.UTC),
		Reminders:  reminder.New(cal, store, rec, reminder.Config{ChatMailbox: "relay@example.com"}),
		Reports:    report.New(store),
	})

	return &testEnv{router: srv.Handler(), mail: rec}
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, headers map[string]string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// login signs up an admin and stores the session cookie on env.
func (env *testEnv) login(t *testing.T) {
	t.Helper()
	w := doRequest(t, env.router, http.MethodPost, "/api/admin/signup",
		map[string]string{"email": "boss@example.com", "password": "hunter22", "name": "Boss"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, env.router, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "boss@example.com", "password": "hunter22"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env.cookie = sessionCookie(w)
	require.NotNil(t, env.cookie)
}

func TestHealthz(t *testing.T) {
	env := setupTestEnv(t)
	w := doRequest(t, env.router, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestSessionFlow(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router, http.MethodGet, "/api/admin/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.login(t)
	assert.True(t, env.cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, env.cookie.SameSite)

	w = doRequest(t, env.router, http.MethodGet, "/api/admin/me", nil, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code)
	admin := decode(t, w)["admin"].(map[string]any)
	assert.Equal(t, "boss@example.com", admin["email"])
	assert.NotContains(t, admin, "passwordHash")

	w = doRequest(t, env.router, http.MethodPost, "/api/admin/login",
		map[string]string{"email": "boss@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", decode(t, w)["error"])

	w = doRequest(t, env.router, http.MethodPost, "/api/admin/signup",
		map[string]string{"email": "boss@example.com", "password": "hunter22", "name": "Again"}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, env.router, http.MethodPost, "/api/admin/logout", nil, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestEmployees(t *testing.T) {
	env := setupTestEnv(t)
	body := map[string]string{"name": "Aisha", "category": "Design", "email": "aisha@example.com"}

	w := doRequest(t, env.router, http.MethodPost, "/api/admin/employees", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.login(t)
	w = doRequest(t, env.router, http.MethodPost, "/api/admin/employees", body, nil, env.cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["employee"].(map[string]any)["id"].(string)

	w = doRequest(t, env.router, http.MethodPost, "/api/admin/employees", body, nil, env.cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(t, env.router, http.MethodPost, "/api/admin/employees",
		map[string]string{"name": "Ravi", "category": "Sales"}, nil, env.cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	out := decode(t, w)
	assert.Equal(t, "Validation error", out["error"])
	assert.NotEmpty(t, out["details"])

	w = doRequest(t, env.router, http.MethodPatch, "/api/admin/employees/email",
		map[string]string{"name": "Aisha", "category": "Design", "email": "a@example.com"}, nil, env.cookie)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The grouped listing is public.
	w = doRequest(t, env.router, http.MethodGet, "/api/admin/employees", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	groups := decode(t, w)["employees"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, "Design", groups[0].(map[string]any)["category"])

	w = doRequest(t, env.router, http.MethodDelete, "/api/admin/employees", nil, nil, env.cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doRequest(t, env.router, http.MethodDelete, "/api/admin/employees?id=nope", nil, nil, env.cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(t, env.router, http.MethodDelete, "/api/admin/employees?id="+id, nil, nil, env.cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSeedEmployees(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)

	roster := []map[string]string{
		{"name": "Aisha", "category": "Design", "email": "aisha@example.com"},
		{"name": "Ravi", "category": "IT"},
		{"name": "Bad", "category": "Sales"},
	}
	w := doRequest(t, env.router, http.MethodPost, "/api/admin/employees/seed", roster, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.EqualValues(t, 2, out["created"])
	assert.Len(t, out["errors"], 1)
}

func TestWorkActivities(t *testing.T) {
	env := setupTestEnv(t)

	sub := map[string]any{
		"employeeName": "Aisha",
		"date":         "2024-06-03",
		"tasks":        []map[string]string{{"id": "t1", "projectName": "Web", "taskName": "Mockup"}},
	}
	w := doRequest(t, env.router, http.MethodPost, "/api/work-activities", sub, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["activity"].(map[string]any)["id"].(string)

	sub["tasks"] = []map[string]string{{"id": "t1", "projectName": "Web", "taskName": "Mockup v2"}}
	w = doRequest(t, env.router, http.MethodPost, "/api/work-activities", sub, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	task := decode(t, w)["activity"].(map[string]any)["tasks"].([]any)[0].(map[string]any)
	assert.Equal(t, "Mockup", task["oldTaskName"])
	assert.Equal(t, true, task["isUpdated"])

	w = doRequest(t, env.router, http.MethodPost, "/api/work-activities",
		map[string]any{"employeeName": "Aisha", "date": "2024-06-03", "tasks": []any{}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/work-activities?employeeName=Aisha", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["activities"], 1)

	w = doRequest(t, env.router, http.MethodGet, "/api/work-activities/suggestions?employeeName=Aisha&date=2024-06-20", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"Mockup v2"}, decode(t, w)["suggestions"])

	w = doRequest(t, env.router, http.MethodDelete, "/api/work-activities?id="+id, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.login(t)
	w = doRequest(t, env.router, http.MethodDelete, "/api/work-activities?id="+id, nil, nil, env.cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(t, env.router, http.MethodDelete, "/api/work-activities?id="+id, nil, nil, env.cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalendar(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router, http.MethodGet, "/api/admin/calendar/resolve?date=2024-06-15", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, "holiday", out["status"])
	assert.Equal(t, false, out["explicit"])

	day := map[string]string{"date": "2024-06-15", "status": "working"}
	w = doRequest(t, env.router, http.MethodPost, "/api/admin/calendar", day, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.login(t)
	w = doRequest(t, env.router, http.MethodPost, "/api/admin/calendar", day, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, env.router, http.MethodPost, "/api/admin/calendar",
		map[string]string{"date": "2024-06-15", "status": "vacation"}, nil, env.cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/admin/calendar?year=2024&month=6", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"2024-06-15": "working"}, decode(t, w)["days"])

	w = doRequest(t, env.router, http.MethodGet, "/api/admin/calendar?year=2024&month=13", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/admin/calendar?year=abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReminderEndpointsRequireCronSecret(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router, http.MethodGet, "/api/reminders/7pm", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/reminders/10pm", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, env.router, http.MethodGet, "/api/reminders/11-59pm", nil, map[string]string{"Authorization": "Bearer " + cronSecret})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode(t, w)
	assert.Equal(t, "11:59 PM reminders sent", out["message"])
	assert.EqualValues(t, 0, out["total"])
}

func TestTestReminderEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	req := map[string]string{"employeeEmail": "ravi@example.com", "employeeName": "Ravi"}

	w := doRequest(t, env.router, http.MethodPost, "/api/reminders/test-email", req, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.login(t)
	w = doRequest(t, env.router, http.MethodPost, "/api/reminders/test-email", req, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doRequest(t, env.router, http.MethodPost, "/api/reminders/test-slack", req, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Len(t, env.mail.To("ravi@example.com"), 1)
	assert.Len(t, env.mail.To("relay@example.com"), 1)

	w = doRequest(t, env.router, http.MethodPost, "/api/reminders/test-email",
		map[string]string{"employeeName": "Ravi"}, nil, env.cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTestReminderEndpointsEchoTrimmedRecipient(t *testing.T) {
	env := setupTestEnv(t)
	env.login(t)
	req := map[string]string{"employeeEmail": "  ravi@example.com ", "employeeName": " Ravi  "}

	for _, path := range []string{"/api/reminders/test-email", "/api/reminders/test-slack"} {
		w := doRequest(t, env.router, http.MethodPost, path, req, nil, env.cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		out := decode(t, w)
		assert.Equal(t, "ravi@example.com", out["employeeEmail"], path)
		assert.Equal(t, "Ravi", out["employeeName"], path)
	}
	assert.Len(t, env.mail.To("ravi@example.com"), 1)
}

func TestStatsAndReport(t *testing.T) {
	env := setupTestEnv(t)

	w := doRequest(t, env.router, http.MethodGet, "/api/admin/stats", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.login(t)
	w = doRequest(t, env.router, http.MethodGet, "/api/admin/stats", nil, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w), "submissionRate")

	w = doRequest(t, env.router, http.MethodGet, "/api/admin/reports/activities.xlsx?from=2024-06-01&to=2024-06-30", nil, nil, env.cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "activities-2024-06-01-to-2024-06-30.xlsx")
	assert.NotZero(t, w.Body.Len())

	w = doRequest(t, env.router, http.MethodGet, "/api/admin/reports/activities.xlsx?from=bad", nil, nil, env.cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBearerMatches(t *testing.T) {
	assert.True(t, bearerMatches("Bearer s3cret", "s3cret"))
	assert.False(t, bearerMatches("Bearer s3cret", ""))
	assert.False(t, bearerMatches("Bearer ", ""))
	assert.False(t, bearerMatches("s3cret", "s3cret"))
	assert.False(t, bearerMatches("Bearer s3cre", "s3cret"))
}
