package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/aurora/internal/shared/id"
)

type gauge struct{ value int }

func (g *gauge) SetSessionsActive(n int) { g.value = n }

func TestManagerLifecycle(t *testing.T) {
	f := newFixture(t)
	g := &gauge{}
	f.sessions.WithMetrics(g)

	a := f.login(t, "user")
	b := f.login(t, "guest")
	assert.Equal(t, 2, f.sessions.Count())
	assert.Equal(t, 2, g.value)

	assert.Equal(t, home, a.Cwd())
	assert.Equal(t, "/home/guest", b.Cwd())
	assert.Equal(t, "/bin:/usr/bin", a.Getenv("PATH"))
	assert.Equal(t, "guest", b.Getenv("USER"))

	got, ok := f.sessions.Get(a.ID)
	require.True(t, ok)
	assert.Same(t, a, got)

	infos := f.sessions.List()
	require.Len(t, infos, 2)
	assert.Equal(t, "user", infos[0].User)

	assert.True(t, f.sessions.Close(a.ID))
	assert.False(t, f.sessions.Close(a.ID))
	assert.True(t, a.Closed())
	assert.Equal(t, 1, f.sessions.Count())
	assert.Equal(t, 1, g.value)

	_, ok = f.sessions.Get(id.NewSessionID())
	assert.False(t, ok)
}

func TestCreateUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.sessions.Create("mallory")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestSessionsNavigateIndependently(t *testing.T) {
	f := newFixture(t)
	a := f.login(t, "user")
	b := f.login(t, "user")

	f.run(a, "cd Documents")
	assert.Equal(t, home+"/Documents", a.Cwd())
	assert.Equal(t, home, b.Cwd())

	f.run(a, "touch shared.txt")
	assert.Equal(t, []string{"shared.txt"}, f.run(b, "ls Documents").Output, "store is shared")
}

func TestHistorySkipsConsecutiveDuplicates(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")

	for _, line := range []string{"pwd", "pwd", "  ", "whoami", "pwd"} {
		f.run(s, line)
	}
	assert.Equal(t, []string{"pwd", "whoami", "pwd"}, s.History())
	assert.Equal(t, s.History(), s.Info().History)
}
