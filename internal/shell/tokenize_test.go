package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"ls", "-l", "/tmp"}, Tokenize("  ls   -l\t/tmp  "))
	assert.Equal(t, []string{"echo", `"a`, `b"`}, Tokenize(`echo "a b"`), "no quoting")
	assert.Empty(t, Tokenize("   "))
}

func TestIsGlob(t *testing.T) {
	assert.True(t, IsGlob("*.txt"))
	assert.True(t, IsGlob("a*"))
	assert.False(t, IsGlob("notes.txt"))
	assert.False(t, IsGlob("docs/*.txt"))
}

func TestExpandGlobs(t *testing.T) {
	names := []string{"b.txt", "c.md", "a.txt", "[x].txt", "a.txt.bak"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"directory order", []string{"*.txt"}, []string{"b.txt", "a.txt", "[x].txt"}},
		{"no match stays literal", []string{"*.zz"}, []string{"*.zz"}},
		{"plain args untouched", []string{"-l", "c.md"}, []string{"-l", "c.md"}},
		{"dot is literal", []string{"a*txt"}, []string{"a.txt"}},
		{"brackets are literal", []string{"[x]*"}, []string{"[x].txt"}},
		{"slash disables expansion", []string{"dir/*.txt"}, []string{"dir/*.txt"}},
		{"several globs", []string{"*.md", "a*"}, []string{"c.md", "a.txt", "a.txt.bak"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandGlobs(tt.args, names))
		})
	}
}

func TestGlobExpansionThroughShell(t *testing.T) {
	f := newFixture(t)
	s := f.login(t, "user")
	dir := home + "/Documents"
	f.write(t, dir, "a.txt", "")
	f.write(t, dir, "b.txt", "")
	f.write(t, dir, "c.md", "")

	f.run(s, "cd Documents")
	assert.Equal(t, []string{"a.txt b.txt"}, f.run(s, "echo *.txt").Output)
	assert.Equal(t, []string{"*.zz"}, f.run(s, "echo *.zz").Output)
}
