package server

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/workform/internal/report"
	"github.com/julianstephens/workform/internal/session"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, maxAge, "/", "", s.cfg.SecureCookies, true)
}

func (s *Server) handleSignup(c *gin.Context) {
	var req credentials
	if !bindJSON(c, &req) {
		return
	}
	admin, err := s.svc.Sessions.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin created successfully", "admin": admin})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req credentials
	if !bindJSON(c, &req) {
		return
	}
	admin, token, err := s.svc.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	s.setSessionCookie(c, token, int(session.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "admin": admin})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (s *Server) handleMe(c *gin.Context) {
	token, _ := c.Cookie(session.CookieName)
	admin, err := s.svc.Sessions.Me(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

func (s *Server) handleStats(c *gin.Context) {
	st, err := s.svc.Dashboard.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) handleReport(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	var buf bytes.Buffer
	if _, err := s.svc.Reports.Export(c.Request.Context(), from, to, &buf); err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(from, to)+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
