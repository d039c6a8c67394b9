package app

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is a window's visibility.
type State string

const (
	StateActive     State = "active"
	StateBackground State = "background"
	StateMinimized  State = "minimized"
)

// ErrUnknownApp is returned for empty or malformed app ids.
var ErrUnknownApp = errors.New("unknown application")

// Position is a window's top-left corner.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a window's extent.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Window is one launched application instance.
type Window struct {
	ID        string    `json:"id"`
	AppID     string    `json:"appId"`
	Title     string    `json:"title"`
	Args      []string  `json:"args"`
	State     State     `json:"state"`
	Maximized bool      `json:"maximized"`
	Position  Position  `json:"position"`
	Size      Size      `json:"size"`
	ZIndex    int       `json:"zIndex"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats summarizes the window table.
type Stats struct {
	Total      int     `json:"total"`
	Active     int     `json:"active"`
	Background int     `json:"background"`
	Minimized  int     `json:"minimized"`
	FocusedID  *string `json:"focusedId"`
}

// Recorder receives launch events.
type Recorder interface {
	RecordAppLaunch(appID string)
}

var titles = map[string]string{
	"finder":   "Finder",
	"settings": "System Settings",
	"photos":   "Photos",
	"music":    "Music",
	"messages": "Messages",
	"browser":  "Browser",
	"terminal": "Terminal",
}

// DefaultSize is the size of a freshly opened window.
var DefaultSize = Size{Width: 900, Height: 600}

const (
	baseZIndex  = 100
	cascadeStep = 30
)

// Title returns the display title for an app id.
func Title(appID string) string {
	if t, ok := titles[appID]; ok {
		return t
	}
	if appID == "" {
		return ""
	}
	return strings.ToUpper(appID[:1]) + appID[1:]
}

// Manager owns the window table.
type Manager struct {
	mu        sync.RWMutex
	windows   map[string]*Window
	focusedID *string
	topZ      int
	metrics   Recorder
	now       func() time.Time
}

// NewManager creates an empty window table.
func NewManager() *Manager {
	return &Manager{
		windows: make(map[string]*Window),
		topZ:    baseZIndex,
		now:     time.Now,
	}
}

// WithMetrics records launches on r.
func (m *Manager) WithMetrics(r Recorder) *Manager {
	m.metrics = r
	return m
}

// Launch opens a new focused window for appID.
func (m *Manager) Launch(appID string, args []string) (*Window, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" || strings.ContainsAny(appID, " \t/") {
		return nil, ErrUnknownApp
	}
	if args == nil {
		args = []string{}
	}

	m.mu.Lock()
	n := len(m.windows)
	m.topZ++
	w := &Window{
		ID:        uuid.New().String(),
		AppID:     appID,
		Title:     Title(appID),
		Args:      append([]string{}, args...),
		State:     StateActive,
		Position:  Position{X: 100 + n*cascadeStep, Y: 80 + n*cascadeStep},
		Size:      DefaultSize,
		ZIndex:    m.topZ,
		CreatedAt: m.now(),
	}
	m.backgroundFocusedLocked(w.ID)
	m.windows[w.ID] = w
	m.focusedID = &w.ID
	out := *w
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordAppLaunch(appID)
	}
	return &out, nil
}

// Get returns a copy of a window.
func (m *Manager) Get(id string) (*Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, ok := m.windows[id]
	if !ok {
		return nil, false
	}
	out := *w
	return &out, true
}

// List returns copies of all windows in z-order, optionally filtered by state.
func (m *Manager) List(state *State) []*Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Window, 0, len(m.windows))
	for _, w := range m.windows {
		if state == nil || w.State == *state {
			c := *w
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Focus raises a window to the top and restores it if minimized.
func (m *Manager) Focus(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}
	m.backgroundFocusedLocked(id)
	m.topZ++
	w.ZIndex = m.topZ
	w.State = StateActive
	m.focusedID = &w.ID
	return true
}

// Minimize hides a window and passes focus to the highest remaining one.
func (m *Manager) Minimize(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}
	w.State = StateMinimized
	if m.focusedID != nil && *m.focusedID == id {
		m.refocusLocked()
	}
	return true
}

// ToggleMaximize flips a window's maximized flag.
func (m *Manager) ToggleMaximize(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}
	w.Maximized = !w.Maximized
	return true
}

// Move updates a window's position.
func (m *Manager) Move(id string, pos Position) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[id]
	if !ok {
		return false
	}
	w.Position = pos
	return true
}

// Close removes a window. Focus passes to the highest remaining visible window.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.windows[id]; !ok {
		return false
	}
	delete(m.windows, id)
	if m.focusedID != nil && *m.focusedID == id {
		m.refocusLocked()
	}
	return true
}

// Stats returns window counts and the focused window id.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Stats
	for _, w := range m.windows {
		s.Total++
		switch w.State {
		case StateActive:
			s.Active++
		case StateBackground:
			s.Background++
		case StateMinimized:
			s.Minimized++
		}
	}
	if m.focusedID != nil {
		id := *m.focusedID
		s.FocusedID = &id
	}
	return s
}

func (m *Manager) backgroundFocusedLocked(except string) {
	if m.focusedID == nil || *m.focusedID == except {
		return
	}
	if cur, ok := m.windows[*m.focusedID]; ok && cur.State == StateActive {
		cur.State = StateBackground
	}
}

// refocusLocked focuses the top-most non-minimized window, if any.
func (m *Manager) refocusLocked() {
	m.focusedID = nil
	var top *Window
	for _, w := range m.windows {
		if w.State != StateMinimized && (top == nil || w.ZIndex > top.ZIndex) {
			top = w
		}
	}
	if top != nil {
		top.State = StateActive
		m.focusedID = &top.ID
	}
}
