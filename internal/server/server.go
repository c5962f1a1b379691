// Package server exposes workform over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/workform/internal/activity"
	"github.com/julianstephens/workform/internal/calendar"
	"github.com/julianstephens/workform/internal/dashboard"
	"github.com/julianstephens/workform/internal/directory"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/reminder"
	"github.com/julianstephens/workform/internal/report"
	"github.com/julianstephens/workform/internal/session"
)

const shutdownTimeout = 10 * time.Second

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Addr string
	// CronSecret guards the reminder endpoints. When empty every reminder
	// request is rejected.
	CronSecret string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
}

// Services are the domain services the handlers call into.
type Services struct {
	Store      Pinger
	Directory  *directory.Service
	Activities *activity.Service
	Calendar   *calendar.Service
	Sessions   *session.Service
	Dashboard  *dashboard.Service
	Reminders  *reminder.Dispatcher
	Reports    *report.Exporter
}

type Server struct {
	cfg    Config
	svc    Services
	engine *gin.Engine
}

// SetReleaseMode silences gin's debug output. Call before New.
func SetReleaseMode() {
	gin.SetMode(gin.ReleaseMode)
}

func New(cfg Config, svc Services) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{cfg: cfg, svc: svc, engine: engine}
	s.registerRoutes()
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) registerRoutes() {
	r := s.engine
	admin := s.requireAdmin()

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")

	emp := api.Group("/admin/employees")
	emp.GET("", s.handleListEmployees)
	emp.POST("", admin, s.handleCreateEmployee)
	emp.PATCH("/email", admin, s.handleUpdateEmployeeEmail)
	emp.DELETE("", admin, s.handleDeleteEmployee)
	emp.POST("/seed", admin, s.handleSeedEmployees)

	api.POST("/admin/signup", s.handleSignup)
	api.POST("/admin/login", s.handleLogin)
	api.POST("/admin/logout", s.handleLogout)
	api.GET("/admin/me", s.handleMe)

	cal := api.Group("/admin/calendar")
	cal.GET("", s.handleCalendarMonth)
	cal.POST("", admin, s.handleSetCalendarDay)
	cal.GET("/resolve", s.handleResolveDay)

	api.GET("/admin/stats", admin, s.handleStats)
	api.GET("/admin/reports/activities.xlsx", admin, s.handleReport)

	wa := api.Group("/work-activities")
	wa.GET("", s.handleListActivities)
	wa.POST("", s.handleSubmitActivity)
	wa.GET("/suggestions", s.handleSuggestions)
	wa.DELETE("", admin, s.handleDeleteActivity)

	rem := api.Group("/reminders")
	cron := s.requireCronSecret()
	for slot := range reminderSlots() {
		rem.GET("/"+slot, cron, s.handleReminder(slot))
	}
	rem.POST("/test-email", admin, s.handleTestEmail)
	rem.POST("/test-slack", admin, s.handleTestChat)
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.svc.Store.Ping(c.Request.Context()); err != nil {
		logger.Error("health check failed", "err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
