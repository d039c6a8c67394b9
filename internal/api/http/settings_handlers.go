package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/aurora/internal/domain/settings"
)

// GetVolume returns every channel's level and the mute flag
func (h *Handlers) GetVolume(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"volumes": h.volume.All(),
		"muted":   h.volume.Muted(),
	})
}

type volumeRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// SetVolume stores one channel's level, clamped to [0, 1]
func (h *Handlers) SetVolume(c *gin.Context) {
	category, err := settings.ParseCategory(c.Param("category"))
	if err != nil {
		fail(c, err)
		return
	}
	var req volumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	v, err := h.volume.Set(category, *req.Value)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "value": v})
}
