package vfs

import (
	"fmt"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
)

// Guard is a Store view that enforces permissions for one acting user. Errors wrap
// the package sentinels so callers can use errors.Is.
type Guard struct {
	store *Store
	user  User
}

// User returns the acting user.
func (g *Guard) User() User {
	return g.user
}

// Store returns the underlying store.
func (g *Guard) Store() *Store {
	return g.store
}

func (g *Guard) policy() policy {
	return checked{user: g.user}
}

func (g *Guard) mutate(op, path string, fn func(policy) error) error {
	if err := g.store.mutate(op, g.policy(), fn); err != nil {
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
	return nil
}

// Stat returns the node at path. Every directory on the way must be searchable.
func (g *Guard) Stat(path string) (*Node, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	n, err := g.store.resolve(g.policy(), path)
	if err != nil {
		return nil, err
	}
	return g.store.tree.info(n), nil
}

// Can reports whether the user may perform action on the node at path.
func (g *Guard) Can(path string, action permissions.Action) error {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	p := g.policy()
	n, err := g.store.resolve(p, path)
	if err != nil {
		return err
	}
	return p.allow(n, action)
}

// List returns a readable directory's children.
func (g *Guard) List(path string) ([]Node, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	return g.store.list(g.policy(), path)
}

// ReadFile returns a readable file's content.
func (g *Guard) ReadFile(path string) (string, error) {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	return g.store.read(g.policy(), path)
}

// WriteFile replaces the content of an existing writable file.
func (g *Guard) WriteFile(path, content string) error {
	return g.mutate("write_file", path, func(p policy) error {
		return g.store.write(p, path, content)
	})
}

// CreateFile adds a file owned by the acting user.
func (g *Guard) CreateFile(parentPath, name, content string) error {
	return g.mutate("create_file", parentPath, func(p policy) error {
		_, err := g.store.create(p, parentPath, name, TypeFile, content)
		return err
	})
}

// CreateDirectory adds a directory owned by the acting user.
func (g *Guard) CreateDirectory(parentPath, name string) error {
	return g.mutate("create_directory", parentPath, func(p policy) error {
		_, err := g.store.create(p, parentPath, name, TypeDirectory, "")
		return err
	})
}

// Move relocates or renames sourcePath and returns the resulting path.
func (g *Guard) Move(sourcePath, destPath string) (string, error) {
	var moved string
	err := g.mutate("move", sourcePath, func(p policy) error {
		var err error
		moved, err = g.store.move(p, sourcePath, destPath)
		return err
	})
	return moved, err
}

// Trash moves path into the acting user's trash and returns its new path.
func (g *Guard) Trash(path string) (string, error) {
	var moved string
	err := g.mutate("trash", path, func(p policy) error {
		var err error
		moved, err = g.store.trash(p, path)
		return err
	})
	return moved, err
}

// EmptyTrash destroys the contents of the acting user's trash.
func (g *Guard) EmptyTrash() (int, error) {
	var removed int
	err := g.mutate("empty_trash", g.user.TrashDir(), func(p policy) error {
		var err error
		removed, err = g.store.emptyTrash(p)
		return err
	})
	return removed, err
}

// Delete permanently removes path.
func (g *Guard) Delete(path string) error {
	return g.mutate("delete", path, func(p policy) error {
		_, err := g.store.remove(p, path)
		return err
	})
}

// Chmod changes the mode of path. Only the owner and root may do so.
func (g *Guard) Chmod(path, spec string) error {
	return g.mutate("chmod", path, func(p policy) error {
		return g.store.chmod(p, path, spec)
	})
}

// Chown changes ownership of path. Only root may do so.
func (g *Guard) Chown(path, owner, group string) error {
	return g.mutate("chown", path, func(p policy) error {
		return g.store.chown(p, path, owner, group)
	})
}

// Touch updates the modification time of an existing writable node.
func (g *Guard) Touch(path string) error {
	return g.mutate("touch", path, func(p policy) error {
		return g.store.touch(p, path)
	})
}
