package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trash = "/home/user/.Trash"

func TestMoveToTrash(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.CreateFile(desktop, "junk.txt", "junk"))

	require.True(t, s.MoveToTrash(desktop+"/junk.txt"))
	assert.Nil(t, s.GetNodeAtPath(desktop+"/junk.txt"))

	content, ok := s.ReadFile(trash + "/junk.txt")
	require.True(t, ok)
	assert.Equal(t, "junk", content)

	assert.False(t, s.MoveToTrash(desktop+"/junk.txt"))
}

func TestMoveToTrashRenamesOnCollision(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{"file.txt", []string{"file.txt", "file 1.txt", "file 2.txt"}},
		{"archive", []string{"archive", "archive 1", "archive 2"}},
		{".bashrc", []string{".bashrc", ".bashrc 1", ".bashrc 2"}},
		{"photo.tar.gz", []string{"photo.tar.gz", "photo.tar 1.gz", "photo.tar 2.gz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			for range tt.want {
				require.True(t, s.CreateFile(desktop, tt.name, ""))
				require.True(t, s.MoveToTrash(desktop+"/"+tt.name))
			}
			assert.Equal(t, tt.want, names(s.ListDirectory(trash)))
		})
	}
}

func TestMoveToTrashDirectory(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.CreateDirectory(desktop, "old"))
	require.True(t, s.CreateFile(desktop+"/old", "a.txt", "a"))

	require.True(t, s.MoveToTrash(desktop+"/old"))
	content, ok := s.ReadFile(trash + "/old/a.txt")
	require.True(t, ok)
	assert.Equal(t, "a", content)
}

func TestMoveToTrashRefusesProtectedNodes(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.CreateFile(desktop, "a.txt", ""))
	require.True(t, s.MoveToTrash(desktop+"/a.txt"))

	assert.False(t, s.MoveToTrash(trash))
	assert.False(t, s.MoveToTrash("/home/user"))
	assert.False(t, s.MoveToTrash("/"))
	assert.False(t, s.MoveToTrash(trash+"/a.txt"), "already in the trash")
}

func TestMoveToTrashRecreatesMissingTrash(t *testing.T) {
	s := newTestStore(t)
	s.mu.Lock()
	bin, err := s.tree.lookup(trash)
	require.NoError(t, err)
	s.tree.destroy(bin)
	s.mu.Unlock()
	require.Nil(t, s.GetNodeAtPath(trash))

	require.True(t, s.CreateFile(desktop, "a.txt", ""))
	require.True(t, s.MoveToTrash(desktop+"/a.txt"))

	n := s.GetNodeAtPath(trash)
	require.NotNil(t, n)
	assert.Equal(t, "drwx------", n.Permissions.String())
	assert.Equal(t, "user", n.Owner)
	assert.NotNil(t, s.GetNodeAtPath(trash+"/a.txt"))
}

func TestEmptyTrash(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.CreateFile(desktop, "rubbish.txt", ""))
	require.True(t, s.CreateDirectory(desktop, "dir"))
	require.True(t, s.CreateFile(desktop+"/dir", "inner.txt", ""))
	require.True(t, s.MoveToTrash(desktop+"/rubbish.txt"))
	require.True(t, s.MoveToTrash(desktop+"/dir"))
	require.NotNil(t, s.GetNodeAtPath(trash+"/rubbish.txt"))

	assert.Equal(t, 3, s.EmptyTrash())

	bin := s.GetNodeAtPath(trash)
	require.NotNil(t, bin)
	assert.Equal(t, 0, bin.ChildCount)
	assert.Empty(t, s.ListDirectory(trash))

	assert.Equal(t, 0, s.EmptyTrash())
}

func TestInTrash(t *testing.T) {
	u := User{Username: "user", HomeDir: "/home/user"}

	assert.True(t, InTrash(u, "/home/user/.Trash/a.txt"))
	assert.True(t, InTrash(u, "/home/user/.Trash/dir/b"))
	assert.False(t, InTrash(u, "/home/user/.Trash"))
	assert.False(t, InTrash(u, "/home/user/.Trashcan/a"))
	assert.False(t, InTrash(u, "/home/user/Desktop"))
}

func TestDeniedTrashLeavesNoTrashBehind(t *testing.T) {
	s := newTestStore(t)
	guestTrash := "/home/guest/.Trash"
	s.mu.Lock()
	bin, err := s.tree.lookup(guestTrash)
	require.NoError(t, err)
	s.tree.destroy(bin)
	s.mu.Unlock()
	require.True(t, s.CreateFile(desktop, "a.txt", ""))

	guest := guardFor(t, s, "guest")
	_, err = guest.Trash(desktop + "/a.txt")
	assert.ErrorIs(t, err, ErrPermission)
	assert.Nil(t, s.GetNodeAtPath(guestTrash))
	assert.NotNil(t, s.GetNodeAtPath(desktop+"/a.txt"))
}
