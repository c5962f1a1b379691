package server

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/logger"
	"github.com/julianstephens/workform/internal/session"
)

const adminKey = "admin"

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= 500:
			logger.Error("request", kv...)
		case status >= 400:
			logger.Warn("request", kv...)
		default:
			logger.Info("request", kv...)
		}
	}
}

// requireAdmin rejects requests without a valid session cookie and stores
// the token claims under adminKey.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.CookieName)
		claims, err := s.svc.Sessions.Verify(token)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(adminKey, claims)
		c.Next()
	}
}

// requireCronSecret checks the bearer token of externally triggered jobs.
func (s *Server) requireCronSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !bearerMatches(c.GetHeader("Authorization"), s.cfg.CronSecret) {
			abort(c, apperrors.Unauthorized("invalid or missing cron secret"))
			return
		}
		c.Next()
	}
}

func bearerMatches(header, secret string) bool {
	if secret == "" {
		return false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
