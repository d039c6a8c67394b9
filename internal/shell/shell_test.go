package shell

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/aurora/internal/domain/vfs"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/storage"
)

const home = "/home/user"

type launch struct {
	app  string
	args []string
}

type commandRecorder struct {
	mu       sync.Mutex
	commands map[string]int
	failures map[string]int
}

func (r *commandRecorder) RecordCommand(command string, failed bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[command]++
	if failed {
		r.failures[command]++
	}
}

type fixture struct {
	store    *vfs.Store
	shell    *Interpreter
	sessions *Manager
	launches []launch
	metrics  *commandRecorder
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		now:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		metrics: &commandRecorder{commands: map[string]int{}, failures: map[string]int{}},
	}
	f.store = vfs.NewStore(storage.NewMemory(), logging.NewNop())
	f.shell = NewInterpreter(f.store, logging.NewNop(),
		WithLauncher(func(app string, args []string) {
			f.launches = append(f.launches, launch{app: app, args: args})
		}),
		WithClock(func() time.Time { return f.now }),
		WithMetrics(f.metrics),
	)
	f.sessions = NewManager(f.store, "")
	return f
}

func (f *fixture) login(t *testing.T, username string) *Session {
	t.Helper()
	s, err := f.sessions.Create(username)
	require.NoError(t, err)
	return s
}

func (f *fixture) run(s *Session, line string) Result {
	return f.shell.Execute(s, line)
}

// write creates a file through the trusted store, owned by the current user.
func (f *fixture) write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.True(t, f.store.CreateFile(dir, name, content))
}
