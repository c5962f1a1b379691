package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/models"
)

func (s *Server) handleCalendarMonth(c *gin.Context) {
	now := s.svc.Dashboard.Today()
	year, month := now[:4], now[5:7]
	if v := c.Query("year"); v != "" {
		year = v
	}
	if v := c.Query("month"); v != "" {
		month = v
	}

	var verr apperrors.ValidationError
	y, err := strconv.Atoi(year)
	if err != nil {
		verr.Add("year", "must be a number, got %q", year)
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		verr.Add("month", "must be a number, got %q", month)
	}
	if err := verr.Err(); err != nil {
		writeError(c, err)
		return
	}

	days, err := s.svc.Calendar.Month(c.Request.Context(), y, m)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (s *Server) handleSetCalendarDay(c *gin.Context) {
	var req struct {
		Date   string           `json:"date"`
		Status models.DayStatus `json:"status"`
	}
	if !bindJSON(c, &req) {
		return
	}
	day, err := s.svc.Calendar.Set(c.Request.Context(), req.Date, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calendar day updated successfully", "day": day})
}

func (s *Server) handleResolveDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = s.svc.Dashboard.Today()
	}
	day, err := s.svc.Calendar.Resolve(c.Request.Context(), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}
