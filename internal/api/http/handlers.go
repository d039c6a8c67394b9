package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/aurora/internal/domain/app"
	"github.com/GriffinCanCode/aurora/internal/domain/settings"
	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/aurora/internal/shell"
)

// Version is reported by the root endpoint.
const Version = "0.3.0"

// Deps are the services the handlers expose.
type Deps struct {
	Store    *vfs.Store
	Sessions *shell.Manager
	Shell    *shell.Interpreter
	Apps     *app.Manager
	Volume   *settings.Manager
	Tracer   *tracing.Tracer
	Logger   *logging.Logger
}

// Handlers contains all HTTP handlers
type Handlers struct {
	store    *vfs.Store
	sessions *shell.Manager
	shell    *shell.Interpreter
	apps     *app.Manager
	volume   *settings.Manager
	tracer   *tracing.Tracer
	logger   *logging.Logger
	started  time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(d Deps) *Handlers {
	logger := d.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	tracer := d.Tracer
	if tracer == nil {
		tracer = tracing.New("aurora", logger)
	}
	return &Handlers{
		store:    d.Store,
		sessions: d.Sessions,
		shell:    d.Shell,
		apps:     d.Apps,
		volume:   d.Volume,
		tracer:   tracer,
		logger:   logger.Named("api"),
		started:  time.Now(),
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	fs := r.Group("/fs")
	fs.GET("/ls", h.ListDirectory)
	fs.GET("/node", h.GetNode)
	fs.GET("/resolve", h.ResolvePath)
	fs.GET("/raw", h.RawFile)
	fs.POST("/file", h.CreateFile)
	fs.PUT("/file", h.WriteFile)
	fs.POST("/dir", h.CreateDirectory)
	fs.POST("/move", h.MoveNode)
	fs.POST("/trash", h.MoveToTrash)
	fs.DELETE("/trash", h.EmptyTrash)
	fs.POST("/chmod", h.Chmod)
	fs.POST("/chown", h.Chown)
	fs.POST("/reset", h.ResetFileSystem)

	r.GET("/users", h.Users)

	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions", h.ListSessions)
	r.DELETE("/sessions/:id", h.CloseSession)
	r.POST("/sessions/:id/exec", h.Execute)
	r.POST("/sessions/:id/key", h.HandleKey)

	r.GET("/apps", h.ListApps)
	r.POST("/apps/:id/focus", h.FocusApp)
	r.DELETE("/apps/:id", h.CloseApp)

	r.POST("/logs", h.IngestLogs)

	r.GET("/settings/volume", h.GetVolume)
	r.PUT("/settings/volume/:category", h.SetVolume)
}

// Root identifies the service
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "aurora",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"uptime":      time.Since(h.started).Round(time.Second).String(),
		"sessions":    h.sessions.Count(),
		"apps":        h.apps.Stats(),
		"currentUser": h.store.CurrentUser().Username,
	})
}
