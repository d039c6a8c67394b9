package vfs

import (
	"fmt"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// The functions below run with s.mu held and report failures as sentinel errors.

func (s *Store) resolve(p policy, path string) (*node, error) {
	return s.tree.walk(path, p.traverse)
}

// enter resolves a directory the actor may descend into.
func (s *Store) enter(p policy, path string) (*node, error) {
	dir, err := s.resolve(p, path)
	if err != nil {
		return nil, err
	}
	if !dir.isDir() {
		return nil, ErrNotDirectory
	}
	if err := p.traverse(dir); err != nil {
		return nil, err
	}
	return dir, nil
}

func (s *Store) create(p policy, parentPath, name string, kind NodeType, content string) (*node, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	parent, err := s.enter(p, parentPath)
	if err != nil {
		return nil, err
	}
	if err := p.allow(parent, permissions.ActionWrite); err != nil {
		return nil, err
	}
	if s.tree.child(parent, name) != nil {
		return nil, ErrExists
	}

	mode := permissions.FileDefault
	if kind == TypeDirectory {
		mode = permissions.DirDefault
	}
	u := p.actor()
	n := newNode(name, kind, content, mode, u.Username, u.Group)
	n.modified = s.now()
	parent.modified = n.modified
	s.tree.attach(parent, n)
	return n, nil
}

func (s *Store) read(p policy, path string) (string, error) {
	n, err := s.resolve(p, path)
	if err != nil {
		return "", err
	}
	if n.isDir() {
		return "", ErrIsDirectory
	}
	if err := p.allow(n, permissions.ActionRead); err != nil {
		return "", err
	}
	return n.content, nil
}

func (s *Store) write(p policy, path, content string) error {
	n, err := s.resolve(p, path)
	if err != nil {
		return err
	}
	if n.isDir() {
		return ErrIsDirectory
	}
	if err := p.allow(n, permissions.ActionWrite); err != nil {
		return err
	}
	n.content = content
	n.modified = s.now()
	return nil
}

func (s *Store) list(p policy, path string) ([]Node, error) {
	dir, err := s.resolve(p, path)
	if err != nil {
		return nil, err
	}
	if !dir.isDir() {
		return nil, ErrNotDirectory
	}
	if err := p.allow(dir, permissions.ActionRead); err != nil {
		return nil, err
	}
	children := s.tree.childrenOf(dir)
	out := make([]Node, 0, len(children))
	for _, c := range children {
		out = append(out, *s.tree.info(c))
	}
	return out, nil
}

// move implements mv semantics and returns the node's new path.
func (s *Store) move(p policy, sourcePath, destPath string) (string, error) {
	src, err := s.resolve(p, sourcePath)
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

	target, name := destPath, src.name
	if dst, err := s.tree.lookup(destPath); err != nil || !dst.isDir() {
		target, name = paths.Parent(destPath), paths.Base(destPath)
	}
	to, err := s.enter(p, target)
	if err != nil {
		return "", err
	}
	return s.relocate(p, src, to, name)
}

// relocate moves src under dir as name.
func (s *Store) relocate(p policy, src, dir *node, name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if s.tree.isAncestor(src, dir) {
		return "", ErrInvalidMove
	}
	if err := p.allow(dir, permissions.ActionWrite); err != nil {
		return "", err
	}
	if existing := s.tree.child(dir, name); existing != nil {
		if existing.id == src.id {
			return s.tree.pathOf(src), nil
		}
		return "", ErrExists
	}

	now := s.now()
	if from := s.tree.nodes[src.parent]; from != nil {
		from.modified = now
	}
	s.tree.detach(src)
	src.name = name
	s.tree.attach(dir, src)
	dir.modified = now
	return s.tree.pathOf(src), nil
}

func (s *Store) chmod(p policy, path, spec string) error {
	n, err := s.resolve(p, path)
	if err != nil {
		return err
	}
	if err := p.chmod(n); err != nil {
		return err
	}
	mode, err := permissions.ApplySpec(n.mode, spec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMode, err)
	}
	n.mode = mode
	n.modified = s.now()
	return nil
}

func (s *Store) chown(p policy, path, owner, group string) error {
	n, err := s.resolve(p, path)
	if err != nil {
		return err
	}
	if err := p.chown(); err != nil {
		return err
	}
	if _, ok := s.findUserLocked(owner); !ok {
		return fmt.Errorf("%q: %w", owner, ErrUnknownUser)
	}
	if group != "" && !s.knownGroupLocked(group) {
		return fmt.Errorf("%q: %w", group, ErrUnknownUser)
	}
	n.owner = owner
	if group != "" {
		n.group = group
	}
	n.modified = s.now()
	return nil
}

// remove destroys path permanently and returns the number of nodes dropped.
func (s *Store) remove(p policy, path string) (int, error) {
	n, err := s.resolve(p, path)
	if err != nil {
		return 0, err
	}
	if s.isProtected(n) {
		return 0, ErrProtected
	}
	parent := s.tree.nodes[n.parent]
	if err := p.traverse(parent); err != nil {
		return 0, err
	}
	if err := p.allow(parent, permissions.ActionWrite); err != nil {
		return 0, err
	}
	parent.modified = s.now()
	return s.tree.destroy(n), nil
}

// isProtected reports nodes that must survive every move and delete: the root,
// user homes, their trash directories and every directory holding one of them.
func (s *Store) isProtected(n *node) bool {
	if n.id == s.tree.root {
		return true
	}
	path := s.tree.pathOf(n)
	for _, u := range s.users {
		if paths.IsWithin(u.HomeDir, path) || paths.IsWithin(u.TrashDir(), path) {
			return true
		}
	}
	return false
}

func (s *Store) touch(p policy, path string) error {
	n, err := s.resolve(p, path)
	if err != nil {
		return err
	}
	if err := p.allow(n, permissions.ActionWrite); err != nil {
		return err
	}
	n.modified = s.now()
	return nil
}
