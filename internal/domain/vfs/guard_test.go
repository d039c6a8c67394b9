package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
)

func guardFor(t *testing.T, s *Store, username string) *Guard {
	t.Helper()
	u, ok := s.LookupUser(username)
	require.True(t, ok)
	return s.As(u)
}

func TestGuardWriteBitOnParent(t *testing.T) {
	s := newTestStore(t)
	guest := guardFor(t, s, "guest")
	root := guardFor(t, s, "root")

	assert.ErrorIs(t, guest.CreateFile(desktop, "x.txt", ""), ErrPermission)
	assert.ErrorIs(t, guest.CreateDirectory(desktop, "x"), ErrPermission)
	assert.Nil(t, s.GetNodeAtPath(desktop+"/x.txt"))

	require.NoError(t, guardFor(t, s, "user").CreateFile(desktop, "mine.txt", ""))
	_, err := guest.Trash(desktop + "/mine.txt")
	assert.ErrorIs(t, err, ErrPermission)
	assert.NotNil(t, s.GetNodeAtPath(desktop+"/mine.txt"))

	require.NoError(t, root.CreateFile("/root", "secret", "s"))
	require.NoError(t, root.CreateFile("/etc", "issue", ""))
}

func TestGuardTraversal(t *testing.T) {
	s := newTestStore(t)
	user := guardFor(t, s, "user")
	root := guardFor(t, s, "root")
	require.NoError(t, root.CreateFile("/root", "secret", "s"))

	_, err := user.List("/root")
	assert.ErrorIs(t, err, ErrPermission)

	_, err = user.Stat("/root/secret")
	assert.ErrorIs(t, err, ErrPermission)

	_, err = user.ReadFile("/root/secret")
	assert.ErrorIs(t, err, ErrPermission)

	n, err := user.Stat("/root")
	require.NoError(t, err)
	assert.Equal(t, "root", n.Owner)

	content, err := root.ReadFile("/root/secret")
	require.NoError(t, err)
	assert.Equal(t, "s", content)
}

func TestGuardFileBits(t *testing.T) {
	s := newTestStore(t)
	user := guardFor(t, s, "user")
	guest := guardFor(t, s, "guest")
	path := desktop + "/private.txt"

	require.NoError(t, user.CreateFile(desktop, "private.txt", "data"))
	n, err := user.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "user", n.Owner)
	assert.Equal(t, "users", n.Group)

	content, err := guest.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", content)
	assert.ErrorIs(t, guest.WriteFile(path, "x"), ErrPermission)

	require.NoError(t, user.Chmod(path, "000"))
	_, err = user.ReadFile(path)
	assert.ErrorIs(t, err, ErrPermission)
	assert.ErrorIs(t, user.Can(path, permissions.ActionWrite), ErrPermission)

	content, err = guardFor(t, s, "root").ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", content)

	assert.ErrorIs(t, user.WriteFile("/etc/hostname", "pwned"), ErrPermission)
	_, err = user.ReadFile(desktop)
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestGuardChmodChown(t *testing.T) {
	s := newTestStore(t)
	user := guardFor(t, s, "user")
	guest := guardFor(t, s, "guest")
	root := guardFor(t, s, "root")
	path := desktop + "/a.txt"
	require.NoError(t, user.CreateFile(desktop, "a.txt", ""))

	assert.ErrorIs(t, guest.Chmod(path, "777"), ErrNotPermitted)
	require.NoError(t, user.Chmod(path, "u+x"))
	assert.Equal(t, "-rwxr--r--", s.GetNodeAtPath(path).Permissions.String())
	assert.ErrorIs(t, user.Chmod(path, "q+z"), ErrInvalidMode)

	assert.ErrorIs(t, user.Chown(path, "guest", ""), ErrNotPermitted)
	require.NoError(t, root.Chown(path, "guest", "users"))
	assert.Equal(t, "guest", s.GetNodeAtPath(path).Owner)
	assert.ErrorIs(t, root.Chown(path, "mallory", ""), ErrUnknownUser)
}

func TestGuardMoveAndDelete(t *testing.T) {
	s := newTestStore(t)
	user := guardFor(t, s, "user")
	require.NoError(t, user.CreateFile(desktop, "a.txt", ""))

	moved, err := user.Move(desktop+"/a.txt", "/home/user/Documents")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/Documents/a.txt", moved)

	_, err = user.Move("/home/user/Documents/a.txt", "/etc")
	assert.ErrorIs(t, err, ErrPermission)

	_, err = user.Move("/home/user/Documents/ghost", "/tmp")
	assert.ErrorIs(t, err, ErrNotFound)

	moved, err = user.Move("/home/user/Documents/a.txt", "/tmp/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/b.txt", moved)

	assert.ErrorIs(t, user.Delete("/etc/hostname"), ErrPermission)
	assert.ErrorIs(t, user.Delete("/home/user"), ErrProtected)
	require.NoError(t, user.Delete("/tmp/b.txt"))
	assert.Nil(t, s.GetNodeAtPath("/tmp/b.txt"))
}

func TestGuardTrashUsesActingUsersTrash(t *testing.T) {
	s := newTestStore(t)
	guest := guardFor(t, s, "guest")
	require.NoError(t, guest.CreateFile("/tmp", "g.txt", ""))

	moved, err := guest.Trash("/tmp/g.txt")
	require.NoError(t, err)
	assert.Equal(t, "/home/guest/.Trash/g.txt", moved)

	removed, err := guest.EmptyTrash()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NotNil(t, s.GetNodeAtPath("/home/guest/.Trash"))
}

func TestGuardTouch(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestStore(t, WithClock(func() time.Time { return now }))
	user := guardFor(t, s, "user")
	require.NoError(t, user.CreateFile(desktop, "a.txt", ""))

	now = now.Add(time.Hour)
	require.NoError(t, user.Touch(desktop+"/a.txt"))
	assert.Equal(t, now, s.GetNodeAtPath(desktop+"/a.txt").Modified)

	assert.ErrorIs(t, user.Touch("/etc/hostname"), ErrPermission)
	assert.ErrorIs(t, user.Touch(desktop+"/missing"), ErrNotFound)
}

func TestReason(t *testing.T) {
	s := newTestStore(t)
	guest := guardFor(t, s, "guest")

	assert.Equal(t, "Permission denied", Reason(guest.CreateFile(desktop, "x", "")))
	assert.Equal(t, "No such file or directory", Reason(guest.CreateFile("/nope", "x", "")))
	require.NoError(t, guest.CreateDirectory("/tmp", "x"))
	assert.Equal(t, "File exists", Reason(guest.CreateDirectory("/tmp", "x")))
	assert.Equal(t, "Operation failed", Reason(assert.AnError))
}

func TestGuardRootCannotRemoveHomes(t *testing.T) {
	s := newTestStore(t)
	root := guardFor(t, s, "root")

	assert.ErrorIs(t, root.Delete("/home"), ErrProtected)
	_, err := root.Move("/home", "/gone")
	assert.ErrorIs(t, err, ErrProtected)
	_, err = root.Trash("/home")
	assert.ErrorIs(t, err, ErrProtected)

	assert.NotNil(t, s.GetNodeAtPath("/home/user/.Trash"))
	assert.Nil(t, s.GetNodeAtPath("/root/.Trash/home"))
}
