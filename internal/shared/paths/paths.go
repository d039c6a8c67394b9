package paths

import "strings"

// Root is the filesystem root.
const Root = "/"

// Separator joins path segments.
const Separator = "/"

// DefaultAliases are absolute paths that resolve under the user's home.
var DefaultAliases = []string{"Desktop", "Documents", "Downloads"}

// Resolver turns user-supplied paths into absolute ones for a single home directory.
type Resolver struct {
	home    string
	aliases map[string]struct{}
}

// NewResolver creates a resolver for home with the default alias table.
func NewResolver(home string) *Resolver {
	return NewResolverWithAliases(home, DefaultAliases)
}

// NewResolverWithAliases creates a resolver with a custom alias allow-list.
// Alias entries are single top-level names without slashes.
func NewResolverWithAliases(home string, aliases []string) *Resolver {
	set := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		set[strings.Trim(a, Separator)] = struct{}{}
	}
	return &Resolver{home: Clean(home), aliases: set}
}

// Home returns the resolver's home directory.
func (r *Resolver) Home() string {
	return r.home
}

// Resolve returns the absolute form of path relative to cwd.
func (r *Resolver) Resolve(path, cwd string) string {
	switch {
	case path == "~":
		return r.home
	case strings.HasPrefix(path, "~/"):
		return Join(r.home, path[2:])
	case strings.HasPrefix(path, Separator):
		return r.rewriteAlias(Clean(path))
	default:
		return Join(cwd, path)
	}
}

func (r *Resolver) rewriteAlias(abs string) string {
	segments := Split(abs)
	if len(segments) == 0 {
		return Root
	}
	if _, ok := r.aliases[segments[0]]; !ok {
		return abs
	}
	return Join(r.home, strings.Join(segments, Separator))
}

// Resolve is a convenience wrapper for one-off resolution with the default aliases.
func Resolve(path, cwd, home string) string {
	return NewResolver(home).Resolve(path, cwd)
}

// Split returns the non-empty segments of p after applying "." and "..".
func Split(p string) []string {
	return apply(nil, p)
}

// Join appends rel to base segment by segment and returns an absolute path.
// ".." above the root is a no-op.
func Join(base, rel string) string {
	return build(apply(apply(nil, base), rel))
}

// Clean normalizes p to an absolute path.
func Clean(p string) string {
	return build(Split(p))
}

// Parent returns the directory containing p. The parent of the root is the root.
func Parent(p string) string {
	segments := Split(p)
	if len(segments) == 0 {
		return Root
	}
	return build(segments[:len(segments)-1])
}

// Base returns the last segment of p, or "/" for the root.
func Base(p string) string {
	segments := Split(p)
	if len(segments) == 0 {
		return Root
	}
	return segments[len(segments)-1]
}

// Child joins a single name under dir.
func Child(dir, name string) string {
	if dir == Root || dir == "" {
		return Root + name
	}
	return dir + Separator + name
}

// SplitName separates a file name into stem and extension. A leading dot does
// not start an extension, so ".bashrc" has no extension.
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// IsWithin reports whether p is dir or lies underneath it.
func IsWithin(p, dir string) bool {
	p, dir = Clean(p), Clean(dir)
	if dir == Root {
		return true
	}
	return p == dir || strings.HasPrefix(p, dir+Separator)
}

func apply(segments []string, p string) []string {
	for _, part := range strings.Split(p, Separator) {
		switch part {
		case "", ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, part)
		}
	}
	return segments
}

func build(segments []string) string {
	if len(segments) == 0 {
		return Root
	}
	return Root + strings.Join(segments, Separator)
}
