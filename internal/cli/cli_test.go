package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type output struct {
	stdout string
	stderr string
}

// run executes the root command against badger storage in dir.
func run(t *testing.T, dir, stdin string, args ...string) (output, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs(append([]string{"--storage", "badger", "--data-dir", dir}, args...))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return output{stdout: stdout.String(), stderr: stderr.String()}, err
}

func TestExec(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "exec", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/home/user\n", out.stdout)

	out, err = run(t, dir, "", "exec", "--cwd", "/tmp", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "/tmp\n", out.stdout)

	out, err = run(t, dir, "", "-u", "root", "exec", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "root\n", out.stdout)

	out, err = run(t, dir, "", "exec", "cat", "/nope")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Empty(t, out.stdout)
	assert.Equal(t, "cat: /nope: No such file or directory\n", out.stderr)
}

func TestExecPersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "", "exec", "touch", "/tmp/notes.txt")
	require.NoError(t, err)

	out, err := run(t, dir, "", "exec", "ls", "/tmp")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt\n", out.stdout)

	out, err = run(t, dir, "", "reset")
	require.NoError(t, err)
	assert.Contains(t, out.stdout, "restored")

	out, err = run(t, dir, "", "exec", "ls", "/tmp")
	require.NoError(t, err)
	assert.Empty(t, out.stdout)
}

func TestShellReadsStdin(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "cd /tmp\npwd\nexit\necho never\n", "shell")
	require.NoError(t, err)
	assert.Equal(t, "/tmp\nlogout\n", out.stdout)

	out, err = run(t, dir, "nope\n", "shell")
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Equal(t, "nope: command not found\n", out.stderr)
}

func TestVolume(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "", "volume")
	require.NoError(t, err)
	assert.Equal(t, "master    1.00\nsystem    1.00\nui        0.75\nfeedback  0.50\n", out.stdout)

	out, err = run(t, dir, "", "volume", "ui", "1.7")
	require.NoError(t, err)
	assert.Equal(t, "ui 1.00\n", out.stdout)

	out, err = run(t, dir, "", "volume", "ui")
	require.NoError(t, err)
	assert.Equal(t, "ui 1.00\n", out.stdout)

	_, err = run(t, dir, "", "volume", "bass")
	assert.Error(t, err)

	_, err = run(t, dir, "", "volume", "ui", "loud")
	assert.Error(t, err)
}

func TestInvalidStorageFlag(t *testing.T) {
	var stderr bytes.Buffer
	root := NewRootCommand()
	root.SetArgs([]string{"--storage", "redis", "exec", "pwd"})
	root.SetErr(&stderr)
	assert.Error(t, root.Execute())
}
