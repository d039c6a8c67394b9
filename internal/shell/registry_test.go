package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	noop := func(*Context) Result { return output() }

	require.NoError(t, r.Register(builtin("zeta", "last", "", noop)))
	require.NoError(t, r.Register(builtin("alpha", "first", "", noop)))
	assert.Error(t, r.Register(builtin("zeta", "again", "", noop)))
	assert.Error(t, r.Register(builtin("", "nameless", "", noop)))

	hidden := builtin("secret", "", "", noop)
	hidden.Def.Hidden = true
	require.NoError(t, r.Register(hidden))

	assert.True(t, r.Has("alpha"))
	assert.False(t, r.Has("beta"))
	assert.Equal(t, []string{"alpha", "secret", "zeta"}, r.Names())

	var visible []string
	for _, d := range r.List(false) {
		visible = append(visible, d.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha"}, visible, "registration order")
	assert.Len(t, r.List(true), 3)
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	cmd := builtin("x", "", "", func(*Context) Result { return output() })
	assert.Panics(t, func() { NewRegistry().MustRegister(cmd, cmd) })
}

func TestBuiltinsTable(t *testing.T) {
	r := Builtins()
	for _, name := range []string{
		"help", "ls", "cd", "pwd", "cat", "mkdir", "touch", "rm", "mv", "cp", "echo", "grep",
		"chmod", "chown", "whoami", "hostname", "who", "date", "uptime", "clear", "exit",
		"logout", "reset", "export", "alias", "history",
	} {
		assert.True(t, r.Has(name), name)
	}

	cmd, ok := r.Get("history")
	require.True(t, ok)
	assert.True(t, cmd.Definition().Hidden)
}
