package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/workform/internal/models"
	"github.com/julianstephens/workform/internal/reminder"
)

var slotLabels = map[string]string{
	"7pm":     "7 PM",
	"10pm":    "10 PM",
	"11-59pm": "11:59 PM",
}

func reminderSlots() map[string]models.ReminderType {
	return models.ReminderSlots
}

func (s *Server) handleReminder(slot string) gin.HandlerFunc {
	t := models.ReminderSlots[slot]
	return func(c *gin.Context) {
		rep, err := s.svc.Reminders.Send(c.Request.Context(), t)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": slotLabels[slot] + " reminders sent",
			"total":   rep.Total,
			"results": rep.Results,
		})
	}
}

func (s *Server) handleTestEmail(c *gin.Context) {
	var req reminder.TestRequest
	if !bindJSON(c, &req) {
		return
	}
	sent, err := s.svc.Reminders.SendTestEmail(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Test email sent successfully",
		"employeeEmail": sent.EmployeeEmail,
		"employeeName":  sent.EmployeeName,
	})
}

func (s *Server) handleTestChat(c *gin.Context) {
	var req reminder.TestRequest
	if !bindJSON(c, &req) {
		return
	}
	sent, err := s.svc.Reminders.SendTestChat(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Test chat message sent successfully",
		"employeeEmail": sent.EmployeeEmail,
		"employeeName":  sent.EmployeeName,
	})
}
