package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/workform/internal/models"
)

type employeeRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Email    string `json:"email"`
}

func (s *Server) handleListEmployees(c *gin.Context) {
	groups, err := s.svc.Directory.Grouped(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": groups})
}

func (s *Server) handleCreateEmployee(c *gin.Context) {
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := s.svc.Directory.Create(c.Request.Context(), req.Name, models.Category(req.Category), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Employee created successfully", "employee": e})
}

func (s *Server) handleUpdateEmployeeEmail(c *gin.Context) {
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := s.svc.Directory.UpdateEmail(c.Request.Context(), req.Name, models.Category(req.Category), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee email updated successfully", "employee": e})
}

func (s *Server) handleDeleteEmployee(c *gin.Context) {
	if err := s.svc.Directory.Delete(c.Request.Context(), c.Query("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

func (s *Server) handleSeedEmployees(c *gin.Context) {
	var roster []models.RosterEntry
	if !bindJSON(c, &roster) {
		return
	}
	res, err := s.svc.Directory.Seed(c.Request.Context(), roster)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Employees seeded",
		"created": res.Created,
		"updated": res.Updated,
		"errors":  res.Errors,
	})
}
