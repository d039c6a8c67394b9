package shell

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/shared/id"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// DefaultPath is the executable search path of a new session.
const DefaultPath = "/bin:/usr/bin"

// ErrUnknownUser is returned when a session is opened for a missing account.
var ErrUnknownUser = errors.New("unknown user")

// Session is one terminal: its user, working directory, environment, aliases,
// history and line editor state. Sessions share the filesystem but nothing else.
type Session struct {
	ID        id.SessionID
	User      vfs.User
	CreatedAt time.Time

	mu           sync.Mutex
	cwd          string
	env          map[string]string
	aliases      map[string]string
	history      []string
	historyIndex int
	input        string
	closed       bool
	lastActive   time.Time
}

// Info is a point-in-time view of a session.
type Info struct {
	ID         id.SessionID `json:"id"`
	User       string       `json:"user"`
	Cwd        string       `json:"cwd"`
	History    []string     `json:"history"`
	Closed     bool         `json:"closed"`
	CreatedAt  time.Time    `json:"createdAt"`
	LastActive time.Time    `json:"lastActive"`
}

func newSession(user vfs.User, cwd, searchPath string, now time.Time) *Session {
	return &Session{
		ID:        id.NewSessionID(),
		User:      user,
		CreatedAt: now,
		cwd:       cwd,
		env: map[string]string{
			"PATH":  searchPath,
			"HOME":  user.HomeDir,
			"USER":  user.Username,
			"SHELL": user.Shell,
			"PWD":   cwd,
		},
		aliases:      make(map[string]string),
		historyIndex: -1,
		lastActive:   now,
	}
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:         s.ID,
		User:       s.User.Username,
		Cwd:        s.cwd,
		History:    append([]string{}, s.history...),
		Closed:     s.closed,
		CreatedAt:  s.CreatedAt,
		LastActive: s.lastActive,
	}
}

// Cwd returns the working directory.
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// History returns a copy of the executed lines, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.history...)
}

// Closed reports whether exit or logout ran in this session.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Getenv reads a session variable.
func (s *Session) Getenv(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.env[name]
}

// record appends line to history unless it repeats the previous entry.
func (s *Session) record(line string) {
	if n := len(s.history); n == 0 || s.history[n-1] != line {
		s.history = append(s.history, line)
	}
	s.historyIndex = -1
}

func (s *Session) searchPath() []string {
	var dirs []string
	for _, d := range strings.Split(s.env["PATH"], ":") {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, paths.Clean(d))
		}
	}
	return dirs
}

// SessionRecorder receives the live session count.
type SessionRecorder interface {
	SetSessionsActive(count int)
}

// Manager tracks open sessions.
type Manager struct {
	sessions   sync.Map // map[id.SessionID]*Session
	count      atomic.Int64
	store      *vfs.Store
	searchPath string
	metrics    SessionRecorder
	now        func() time.Time
}

// NewManager creates a session manager over store. An empty searchPath means DefaultPath.
func NewManager(store *vfs.Store, searchPath string) *Manager {
	if searchPath == "" {
		searchPath = DefaultPath
	}
	return &Manager{store: store, searchPath: searchPath, now: time.Now}
}

// WithMetrics reports the session count to r.
func (m *Manager) WithMetrics(r SessionRecorder) *Manager {
	m.metrics = r
	return m
}

// Create opens a session for username starting in their home directory, or in
// "/" when the home is missing.
func (m *Manager) Create(username string) (*Session, error) {
	user, ok := m.store.LookupUser(username)
	if !ok {
		return nil, ErrUnknownUser
	}
	cwd := paths.Clean(user.HomeDir)
	if n := m.store.GetNodeAtPath(cwd); n == nil || !n.IsDir() {
		cwd = paths.Root
	}

	s := newSession(user, cwd, m.searchPath, m.now())
	m.sessions.Store(s.ID, s)
	m.report(m.count.Add(1))
	return s, nil
}

// Get finds a session by id.
func (m *Manager) Get(sid id.SessionID) (*Session, bool) {
	v, ok := m.sessions.Load(sid)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// List returns all sessions, oldest first.
func (m *Manager) List() []Info {
	var out []Info
	m.sessions.Range(func(_, v any) bool {
		out = append(out, v.(*Session).Info())
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Close removes a session.
func (m *Manager) Close(sid id.SessionID) bool {
	v, ok := m.sessions.LoadAndDelete(sid)
	if !ok {
		return false
	}
	s := v.(*Session)
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	m.report(m.count.Add(-1))
	return true
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	return int(m.count.Load())
}

func (m *Manager) report(n int64) {
	if m.metrics != nil {
		m.metrics.SetSessionsActive(int(n))
	}
}
