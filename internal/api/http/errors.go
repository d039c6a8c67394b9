package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/aurora/internal/domain/settings"
	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, vfs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vfs.ErrPermission), errors.Is(err, vfs.ErrNotPermitted):
		return http.StatusForbidden
	case errors.Is(err, vfs.ErrExists), errors.Is(err, vfs.ErrProtected):
		return http.StatusConflict
	case errors.Is(err, vfs.ErrNotDirectory), errors.Is(err, vfs.ErrIsDirectory),
		errors.Is(err, vfs.ErrInvalidName), errors.Is(err, vfs.ErrInvalidMode),
		errors.Is(err, vfs.ErrInvalidMove), errors.Is(err, vfs.ErrUnknownUser),
		errors.Is(err, settings.ErrUnknownCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes {"success": false, "error": reason} and attaches err to the context
// so tracing and request logs see it.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	reason := vfs.Reason(err)
	if errors.Is(err, settings.ErrUnknownCategory) {
		reason = err.Error()
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"success": false, "error": reason})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
