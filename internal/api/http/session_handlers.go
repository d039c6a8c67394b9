package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/shared/id"
	"github.com/GriffinCanCode/aurora/internal/shell"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

// CreateSession authenticates and opens a terminal session
func (h *Handlers) CreateSession(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !h.store.Authenticate(req.Username, req.Password) {
		h.logger.Warn("login failed", zap.String("username", req.Username), zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid username or password"})
		return
	}
	s, err := h.sessions.Create(req.Username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"session": s.Info(),
		"line":    h.shell.Line(s),
	})
}

// ListSessions returns every open session
func (h *Handlers) ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": h.sessions.List()})
}

// CloseSession ends a session
func (h *Handlers) CloseSession(c *gin.Context) {
	if !h.sessions.Close(id.SessionID(c.Param("id"))) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handlers) session(c *gin.Context) (*shell.Session, bool) {
	s, ok := h.sessions.Get(id.SessionID(c.Param("id")))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return nil, false
	}
	return s, true
}

type execRequest struct {
	Line string `json:"line"`
}

// Execute runs one command line in a session
func (h *Handlers) Execute(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req execRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	span, _ := h.tracer.StartSpan(c.Request.Context(), "shell.execute")
	span.SetTag("session", s.ID.String())
	res := h.shell.Execute(s, req.Line)
	if res.IsError {
		span.SetTag("failed", "true")
	}
	span.Finish()
	h.tracer.Submit(span)

	c.JSON(http.StatusOK, gin.H{
		"result":  res,
		"history": s.History(),
		"line":    h.shell.Line(s),
	})
}

// HandleKey feeds one key press to the session's line editor
func (h *Handlers) HandleKey(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var ev shell.KeyEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.shell.HandleKey(s, ev))
}
