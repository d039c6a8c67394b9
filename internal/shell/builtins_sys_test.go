package shell

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")

	res := f.run(s, "help")
	require.False(t, res.IsError)
	assert.Equal(t, "Available commands:", res.Output[0])
	assert.Contains(t, res.Output, "  ls        - List directory contents (usage: ls [-l] [path...])")
	assert.Equal(t, "", res.Output[len(res.Output)-1])
	assert.True(t, strings.HasPrefix(res.Output[len(res.Output)-2], "  [app]     - "))
	for _, line := range res.Output {
		assert.NotContains(t, line, "history")
	}
}

func TestIdentityCommands(t *testing.T) {
	f := newFixture(t)
	guest := f.login(t, "guest")

	runSteps(t, f, guest, []step{
		{"whoami", []string{"guest"}, false},
		{"who", []string{"user"}, false},
		{"hostname", []string{"aurora"}, false},
		{"echo hello   world", []string{"hello world"}, false},
		{"echo", []string{""}, false},
	})

	sh := NewInterpreter(f.store, nil, WithHostname("desk"))
	assert.Equal(t, []string{"desk"}, sh.Execute(guest, "hostname").Output)
}

func TestDateAndUptime(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")
	boot := f.now

	assert.Equal(t, []string{boot.Format(time.UnixDate)}, f.run(s, "date").Output)

	f.now = boot.Add(65*time.Minute + 12*time.Second)
	assert.Equal(t, []string{"up 1h 5m"}, f.run(s, "uptime").Output)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "up 0s"},
		{42 * time.Second, "up 42s"},
		{5*time.Minute + 30*time.Second, "up 5m"},
		{time.Hour, "up 1h"},
		{2*time.Hour + 7*time.Minute, "up 2h 7m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.d), tt.d.String())
	}
}

func TestSessionControl(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")

	res := f.run(s, "clear")
	assert.True(t, res.Clear)
	assert.Empty(t, res.Output)

	res = f.run(s, "logout")
	assert.Equal(t, []string{"Logging out..."}, res.Output)
	assert.True(t, res.Closed)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")
	f.run(s, "mkdir scratch")
	f.run(s, "cd scratch")

	res := f.run(s, "reset")
	assert.Equal(t, []string{"System reset initiated..."}, res.Output)
	assert.Equal(t, home, res.Cwd)
	assert.Nil(t, f.store.GetNodeAtPath(home+"/scratch"))
}

func TestExport(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")

	runSteps(t, f, s, []step{
		{"export EDITOR=vi PAGER", []string{}, false},
		{"export 1x=2", []string{"export: `1x=2': not a valid identifier"}, true},
	})
	assert.Equal(t, "vi", s.Getenv("EDITOR"))

	res := f.run(s, "export")
	assert.Equal(t, []string{
		"EDITOR=vi",
		"HOME=/home/user",
		"PAGER=",
		"PATH=/bin:/usr/bin",
		"PWD=/home/user",
		"SHELL=/bin/sh",
		"USER=user",
	}, res.Output)
}

func TestHistoryCommand(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")

	f.run(s, "pwd")
	f.run(s, "pwd")
	f.run(s, "whoami")
	assert.Equal(t, []string{"    1  pwd", "    2  whoami", "    3  history"}, f.run(s, "history").Output)
}
