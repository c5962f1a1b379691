package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/julianstephens/workform/internal/errors"
	"github.com/julianstephens/workform/internal/logger"
)

// writeError renders err as {"error", "details"} with the status the error
// taxonomy assigns it.
func writeError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	body := gin.H{"error": message(err, status)}
	if fields := apperrors.Fields(err); fields != nil {
		body["details"] = fields
	} else if status == http.StatusInternalServerError {
		body["details"] = err.Error()
		logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, body)
}

func abort(c *gin.Context, err error) {
	writeError(c, err)
	c.Abort()
}

func message(err error, status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Validation error"
	case http.StatusInternalServerError:
		return "Internal server error"
	}
	// Drop the sentinel suffix added by the taxonomy constructors.
	msg := err.Error()
	for _, sentinel := range []error{apperrors.ErrNotFound, apperrors.ErrConflict, apperrors.ErrUnauthorized} {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	return msg
}

// bindJSON decodes the request body or writes a validation error.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, apperrors.Invalid("body", "invalid JSON: %v", err))
		return false
	}
	return true
}
