package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	r := NewResolver("/home/user")

	tests := []struct {
		name string
		path string
		cwd  string
		want string
	}{
		{"home", "~", "/", "/home/user"},
		{"home child", "~/Desktop", "/", "/home/user/Desktop"},
		{"alias desktop", "/Desktop", "/", "/home/user/Desktop"},
		{"alias documents", "/Documents", "/etc", "/home/user/Documents"},
		{"alias downloads", "/Downloads", "/", "/home/user/Downloads"},
		{"alias subpath", "/Desktop/test.txt", "/", "/home/user/Desktop/test.txt"},
		{"system bin", "/bin", "/home/user", "/bin"},
		{"system usr bin", "/usr/bin", "/home/user", "/usr/bin"},
		{"system etc", "/etc", "/home/user", "/etc"},
		{"non alias prefix", "/Desktopish", "/", "/Desktopish"},
		{"relative", "test.txt", "/home/user", "/home/user/test.txt"},
		{"relative after cd", "ls", "/bin", "/bin/ls"},
		{"dot segments", "./a/./b", "/tmp", "/tmp/a/b"},
		{"parent", "..", "/home/user", "/home"},
		{"excess parent", "../../../..", "/home/user", "/"},
		{"empty segments", "a//b/", "/", "/a/b"},
		{"root", "/", "/home/user", "/"},
		{"empty input", "", "/home/user", "/home/user"},
		{"absolute with dots", "/usr/../etc", "/", "/etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.path, tt.cwd))
		})
	}
}

func TestResolveCustomAliases(t *testing.T) {
	r := NewResolverWithAliases("/home/guest", []string{"/Music"})

	assert.Equal(t, "/home/guest/Music/a.mp3", r.Resolve("/Music/a.mp3", "/"))
	assert.Equal(t, "/Desktop", r.Resolve("/Desktop", "/"))
	assert.Equal(t, "/home/guest", r.Home())
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "/home", Parent("/home/user"))
	assert.Equal(t, "/", Parent("/home"))
	assert.Equal(t, "/", Parent("/"))
	assert.Equal(t, "user", Base("/home/user/"))
	assert.Equal(t, "/", Base("/"))
	assert.Equal(t, "/a", Child("/", "a"))
	assert.Equal(t, "/a/b", Child("/a", "b"))
	assert.Equal(t, []string{"a", "b"}, Split("/a/b/"))
	assert.Empty(t, Split("/"))
	assert.True(t, IsWithin("/home/user/.Trash/x", "/home/user/.Trash"))
	assert.True(t, IsWithin("/home/user/.Trash", "/home/user/.Trash"))
	assert.False(t, IsWithin("/home/user/.Trashy", "/home/user/.Trash"))
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name, stem, ext string
	}{
		{"file.txt", "file", ".txt"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".bashrc", ".bashrc", ""},
		{"trailing.", "trailing", "."},
	}
	for _, tt := range tests {
		stem, ext := SplitName(tt.name)
		assert.Equal(t, tt.stem, stem, tt.name)
		assert.Equal(t, tt.ext, ext, tt.name)
	}
}
