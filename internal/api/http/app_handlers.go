package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/aurora/internal/domain/app"
)

// ListApps returns open windows, optionally filtered by ?state=
func (h *Handlers) ListApps(c *gin.Context) {
	var filter *app.State
	if s := c.Query("state"); s != "" {
		st := app.State(s)
		filter = &st
	}
	c.JSON(http.StatusOK, gin.H{
		"apps":  h.apps.List(filter),
		"stats": h.apps.Stats(),
	})
}

// FocusApp brings a window to the front
func (h *Handlers) FocusApp(c *gin.Context) {
	if !h.apps.Focus(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "app not found"})
		return
	}
	w, _ := h.apps.Get(c.Param("id"))
	c.JSON(http.StatusOK, w)
}

// CloseApp closes a window
func (h *Handlers) CloseApp(c *gin.Context) {
	if !h.apps.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "app not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
