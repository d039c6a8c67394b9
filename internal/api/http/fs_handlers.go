package http

import (
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/shared/id"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// actor returns the permission-checked view for the request. A "session" query
// parameter acts as that session's user; otherwise the store's current user acts.
func (h *Handlers) actor(c *gin.Context) (*vfs.Guard, bool) {
	if sid := c.Query("session"); sid != "" {
		s, ok := h.sessions.Get(id.SessionID(sid))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
			return nil, false
		}
		return h.store.As(s.User), true
	}
	return h.store.As(h.store.CurrentUser()), true
}

// target resolves the "path" query parameter against the acting user's home.
func target(c *gin.Context, g *vfs.Guard) string {
	return paths.Resolve(c.DefaultQuery("path", paths.Root), paths.Root, g.User().HomeDir)
}

// ListDirectory returns a directory's children in display order
func (h *Handlers) ListDirectory(c *gin.Context) {
	g, ok := h.actor(c)
	if !ok {
		return
	}
	path := target(c, g)
	entries, err := g.List(path)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path, "entries": entries})
}

// GetNode returns one node
func (h *Handlers) GetNode(c *gin.Context) {
	g, ok := h.actor(c)
	if !ok {
		return
	}
	n, err := g.Stat(target(c, g))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// ResolvePath normalizes "path" against "cwd" for the acting user
func (h *Handlers) ResolvePath(c *gin.Context) {
	g, ok := h.actor(c)
	if !ok {
		return
	}
	home := g.User().HomeDir
	cwd := c.DefaultQuery("cwd", home)
	c.JSON(http.StatusOK, gin.H{
		"path": paths.Resolve(c.Query("path"), cwd, home),
		"home": home,
	})
}

// RawFile serves file content with a sniffed content type
func (h *Handlers) RawFile(c *gin.Context) {
	g, ok := h.actor(c)
	if !ok {
		return
	}
	content, err := g.ReadFile(target(c, g))
	if err != nil {
		fail(c, err)
		return
	}
	data := []byte(content)
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}

type createRequest struct {
	Parent  string `json:"parent" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Content string `json:"content"`
}

// CreateFile adds a file under parent
func (h *Handlers) CreateFile(c *gin.Context) {
	h.create(c, false)
}

// CreateDirectory adds a directory under parent
func (h *Handlers) CreateDirectory(c *gin.Context) {
	h.create(c, true)
}

func (h *Handlers) create(c *gin.Context, dir bool) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, ok := h.actor(c)
	if !ok {
		return
	}
	parent := paths.Resolve(req.Parent, paths.Root, g.User().HomeDir)

	var err error
	if dir {
		err = g.CreateDirectory(parent, req.Name)
	} else {
		err = g.CreateFile(parent, req.Name, req.Content)
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "path": paths.Child(parent, req.Name)})
}

type writeRequest struct {
	Path    string `json:"path" binding:"required"`
	Content string `json:"content"`
}

// WriteFile replaces an existing file's content
func (h *Handlers) WriteFile(c *gin.Context) {
	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, ok := h.actor(c)
	if !ok {
		return
	}
	if err := g.WriteFile(paths.Resolve(req.Path, paths.Root, g.User().HomeDir), req.Content); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type moveRequest struct {
	Source string `json:"source" binding:"required"`
	Dest   string `json:"dest" binding:"required"`
}

// MoveNode relocates or renames a node
func (h *Handlers) MoveNode(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, ok := h.actor(c)
	if !ok {
		return
	}
	home := g.User().HomeDir
	moved, err := g.Move(paths.Resolve(req.Source, paths.Root, home), paths.Resolve(req.Dest, paths.Root, home))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": moved})
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

// MoveToTrash soft-deletes a node into the acting user's trash
func (h *Handlers) MoveToTrash(c *gin.Context) {
	var req pathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, ok := h.actor(c)
	if !ok {
		return
	}
	moved, err := g.Trash(paths.Resolve(req.Path, paths.Root, g.User().HomeDir))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "path": moved})
}

// EmptyTrash destroys everything in the acting user's trash
func (h *Handlers) EmptyTrash(c *gin.Context) {
	g, ok := h.actor(c)
	if !ok {
		return
	}
	removed, err := g.EmptyTrash()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "removed": removed})
}

type chmodRequest struct {
	Path string `json:"path" binding:"required"`
	Mode string `json:"mode" binding:"required"`
}

// Chmod changes a node's mode; owner or root only
func (h *Handlers) Chmod(c *gin.Context) {
	var req chmodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, ok := h.actor(c)
	if !ok {
		return
	}
	if err := g.Chmod(paths.Resolve(req.Path, paths.Root, g.User().HomeDir), req.Mode); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type chownRequest struct {
	Path  string `json:"path" binding:"required"`
	Owner string `json:"owner" binding:"required"`
	Group string `json:"group"`
}

// Chown changes a node's owner and optionally its group; root only
func (h *Handlers) Chown(c *gin.Context) {
	var req chownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	g, ok := h.actor(c)
	if !ok {
		return
	}
	if err := g.Chown(paths.Resolve(req.Path, paths.Root, g.User().HomeDir), req.Owner, req.Group); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResetFileSystem restores the factory tree
func (h *Handlers) ResetFileSystem(c *gin.Context) {
	h.store.ResetFileSystem()
	h.logger.Info("filesystem reset", zap.String("client_ip", c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Users lists accounts plus the current user and their home
func (h *Handlers) Users(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"users":       h.store.Users(),
		"currentUser": h.store.CurrentUser(),
		"homePath":    h.store.HomePath(),
	})
}
