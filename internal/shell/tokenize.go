package shell

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Tokenize splits a line on runs of whitespace. There is no quoting.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// IsGlob reports whether an argument is subject to expansion: it contains '*'
// and no '/'.
func IsGlob(arg string) bool {
	return strings.Contains(arg, "*") && !strings.Contains(arg, "/")
}

// globPattern turns a shell word into a doublestar pattern in which only '*' is
// special.
func globPattern(arg string) string {
	var b strings.Builder
	for _, r := range arg {
		switch r {
		case '?', '[', ']', '{', '}', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ExpandGlobs replaces each glob argument with the matching names, in the order
// given. An argument that matches nothing is kept literally.
func ExpandGlobs(args, names []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !IsGlob(arg) {
			out = append(out, arg)
			continue
		}
		pattern := globPattern(arg)
		matched := false
		for _, name := range names {
			if ok, err := doublestar.Match(pattern, name); err == nil && ok {
				out = append(out, name)
				matched = true
			}
		}
		if !matched {
			out = append(out, arg)
		}
	}
	return out
}
