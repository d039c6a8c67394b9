package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxLogBatch caps how many entries one request may carry.
const maxLogBatch = 200

// ClientLogEntry is one log line from a desktop or terminal front end.
type ClientLogEntry struct {
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context"`
	Timestamp string         `json:"timestamp"`
}

// ClientLogBatch is a batch of front-end log lines.
type ClientLogBatch struct {
	Source  string           `json:"source" binding:"required"`
	Entries []ClientLogEntry `json:"entries"`
}

// IngestLogs forwards front-end log lines into the server log
func (h *Handlers) IngestLogs(c *gin.Context) {
	var req ClientLogBatch
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid log batch")
		return
	}
	if len(req.Entries) == 0 {
		badRequest(c, "no log entries provided")
		return
	}
	if len(req.Entries) > maxLogBatch {
		badRequest(c, "too many log entries")
		return
	}

	logger := h.logger.Named("client").With(zap.String("source", req.Source))
	for _, e := range req.Entries {
		fields := make([]zap.Field, 0, len(e.Context)+1)
		fields = append(fields, zap.String("client_ts", e.Timestamp))
		for k, v := range e.Context {
			fields = append(fields, zap.Any(k, v))
		}
		switch e.Level {
		case "error":
			logger.Error(e.Message, fields...)
		case "warn":
			logger.Warn(e.Message, fields...)
		case "debug", "verbose":
			logger.Debug(e.Message, fields...)
		default:
			logger.Info(e.Message, fields...)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "received": len(req.Entries)})
}
