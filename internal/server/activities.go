package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/workform/internal/activity"
)

func (s *Server) handleListActivities(c *gin.Context) {
	activities, err := s.svc.Activities.List(c.Request.Context(), activity.Query{
		EmployeeName: c.Query("employeeName"),
		EmployeeID:   c.Query("employeeId"),
		From:         c.Query("from"),
		To:           c.Query("to"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}

func (s *Server) handleSubmitActivity(c *gin.Context) {
	var sub activity.Submission
	if !bindJSON(c, &sub) {
		return
	}
	a, err := s.svc.Activities.Submit(c.Request.Context(), sub)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Work activity saved successfully", "activity": a})
}

func (s *Server) handleSuggestions(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = s.svc.Dashboard.Today()
	}
	names, err := s.svc.Activities.Suggestions(c.Request.Context(), c.Query("employeeId"), c.Query("employeeName"), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": names})
}

func (s *Server) handleDeleteActivity(c *gin.Context) {
	if err := s.svc.Activities.Delete(c.Request.Context(), c.Query("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Work activity deleted successfully"})
}
