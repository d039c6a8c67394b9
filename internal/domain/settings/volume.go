package settings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/storage"
)

// StorageKey holds the persisted volume levels.
const StorageKey = "aurora.sound"

const ioTimeout = 5 * time.Second

// Category is a volume channel.
type Category string

const (
	Master   Category = "master"
	System   Category = "system"
	UI       Category = "ui"
	Feedback Category = "feedback"
)

// Categories lists every channel in display order.
var Categories = []Category{Master, System, UI, Feedback}

// ErrUnknownCategory is returned for names outside Categories.
var ErrUnknownCategory = errors.New("unknown volume category")

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Sound names a UI sound effect.
type Sound string

// soundCategories maps each effect to the channel that scales it.
var soundCategories = map[Sound]Category{
	"success":      System,
	"warning":      System,
	"error":        System,
	"folder":       UI,
	"window-open":  UI,
	"window-close": UI,
	"click":        Feedback,
	"hover":        Feedback,
}

// Sounds returns the known effects sorted by name.
func Sounds() []Sound {
	out := make([]Sound, 0, len(soundCategories))
	for s := range soundCategories {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Volumes is the persisted level set.
type Volumes struct {
	Master   float64 `json:"master"`
	System   float64 `json:"system"`
	UI       float64 `json:"ui"`
	Feedback float64 `json:"feedback"`
}

// Defaults are the factory levels.
var Defaults = Volumes{Master: 1, System: 1, UI: 0.75, Feedback: 0.5}

func (v *Volumes) field(c Category) *float64 {
	switch c {
	case Master:
		return &v.Master
	case System:
		return &v.System
	case UI:
		return &v.UI
	case Feedback:
		return &v.Feedback
	}
	return nil
}

// Get returns the level of c, or zero for unknown categories.
func (v Volumes) Get(c Category) float64 {
	if f := v.field(c); f != nil {
		return *f
	}
	return 0
}

func (v Volumes) clamped() Volumes {
	for _, c := range Categories {
		f := v.field(c)
		*f = Clamp(*f)
	}
	return v
}

// Clamp limits v to [0,1].
func Clamp(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Manager owns the volume levels and the mute switch.
type Manager struct {
	mu        sync.RWMutex
	volumes   Volumes
	muted     bool
	listeners map[int]func(Volumes)
	nextID    int

	backend storage.Backend
	logger  *logging.Logger
}

// NewManager loads stored levels, filling missing or unreadable values with Defaults.
func NewManager(backend storage.Backend, logger *logging.Logger) *Manager {
	if backend == nil {
		backend = storage.NewMemory()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		volumes:   Defaults,
		listeners: make(map[int]func(Volumes)),
		backend:   backend,
		logger:    logger.Named("settings"),
	}
	m.load()
	return m
}

func (m *Manager) load() {
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()

	data, err := m.backend.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("failed to load sound settings", zap.Error(err))
		}
		return
	}
	loaded := Defaults
	if err := sonic.Unmarshal(data, &loaded); err != nil {
		m.logger.Warn("failed to load sound settings", zap.Error(err))
		return
	}
	m.volumes = loaded.clamped()
}

func (m *Manager) saveLocked() {
	data, err := sonic.Marshal(m.volumes)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		err = m.backend.Set(ctx, StorageKey, data)
		cancel()
	}
	if err != nil {
		m.logger.Warn("failed to save sound settings", zap.Error(err))
	}
}

// Get returns one category's level.
func (m *Manager) Get(c Category) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f := m.volumes.field(c)
	if f == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return *f, nil
}

// Set stores a clamped level and returns the value actually applied.
func (m *Manager) Set(c Category, value float64) (float64, error) {
	m.mu.Lock()
	f := m.volumes.field(c)
	if f == nil {
		m.mu.Unlock()
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	*f = Clamp(value)
	applied := *f
	m.saveLocked()
	snapshot, listeners := m.volumes, m.listenersLocked()
	m.mu.Unlock()

	m.logger.Debug("volume changed", zap.String("category", string(c)), zap.Float64("value", applied))
	notify(listeners, snapshot)
	return applied, nil
}

// All returns every level.
func (m *Manager) All() Volumes {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volumes
}

// Reset restores Defaults and persists them.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.volumes = Defaults
	m.saveLocked()
	snapshot, listeners := m.volumes, m.listenersLocked()
	m.mu.Unlock()
	notify(listeners, snapshot)
}

// SetMuted toggles the mute switch. Mute state is not persisted.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	snapshot, listeners := m.volumes, m.listenersLocked()
	m.mu.Unlock()
	notify(listeners, snapshot)
}

// Muted reports the mute switch.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// Effective returns the playback volume for a sound. Unknown sounds are silent.
func (m *Manager) Effective(s Sound) float64 {
	c, ok := soundCategories[s]
	if !ok {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.muted {
		return 0
	}
	return m.volumes.Master * m.volumes.Get(c)
}

// Subscribe registers fn for change notifications. The returned func unregisters it.
func (m *Manager) Subscribe(fn func(Volumes)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) listenersLocked() []func(Volumes) {
	out := make([]func(Volumes), 0, len(m.listeners))
	for _, fn := range m.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(Volumes), v Volumes) {
	for _, fn := range listeners {
		fn(v)
	}
}
