package vfs

import (
	"strconv"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// TrashName is the per-user trash directory name.
const TrashName = ".Trash"

var trashMode = permissions.Mode{Dir: true, Owner: permissions.All}

func trashPath(home string) string {
	return paths.Child(paths.Clean(home), TrashName)
}

// ensureTrash returns the actor's trash directory, creating it under their home when absent.
func (s *Store) ensureTrash(u User) (*node, error) {
	home, err := s.tree.lookupDir(u.HomeDir)
	if err != nil {
		return nil, err
	}
	if t := s.tree.child(home, TrashName); t != nil {
		if !t.isDir() {
			return nil, ErrNotDirectory
		}
		return t, nil
	}
	t := newNode(TrashName, TypeDirectory, "", trashMode, u.Username, u.Group)
	t.modified = s.now()
	s.tree.attach(home, t)
	return t, nil
}

// trashName picks the first free name in dir: "file.txt", "file 1.txt", "file 2.txt", ...
func (s *Store) trashName(dir *node, name string) string {
	if s.tree.child(dir, name) == nil {
		return name
	}
	stem, ext := paths.SplitName(name)
	for i := 1; ; i++ {
		candidate := stem + " " + strconv.Itoa(i) + ext
		if s.tree.child(dir, candidate) == nil {
			return candidate
		}
	}
}

// trash moves path into the actor's trash and returns its new path.
func (s *Store) trash(p policy, path string) (string, error) {
	u := p.actor()
	src, err := s.resolve(p, path)
	if err != nil {
		return "", err
	}
	if s.isProtected(src) {
		return "", ErrProtected
	}
	from := s.tree.nodes[src.parent]
	if err := p.traverse(from); err != nil {
		return "", err
	}
	if err := p.allow(from, permissions.ActionWrite); err != nil {
		return "", err
	}

	bin, err := s.ensureTrash(u)
	if err != nil {
		return "", err
	}
	if s.tree.isAncestor(bin, src) {
		return "", ErrInvalidMove
	}
	return s.relocate(p, src, bin, s.trashName(bin, src.name))
}

func (s *Store) emptyTrash(p policy) (int, error) {
	bin, err := s.ensureTrash(p.actor())
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, c := range s.tree.childrenOf(bin) {
		removed += s.tree.destroy(c)
	}
	bin.modified = s.now()
	return removed, nil
}

// InTrash reports whether path lies inside user's trash directory.
func InTrash(u User, path string) bool {
	trash := u.TrashDir()
	return paths.Clean(path) != trash && paths.IsWithin(path, trash)
}
