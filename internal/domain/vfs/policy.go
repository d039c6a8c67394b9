package vfs

import "github.com/GriffinCanCode/aurora/internal/domain/permissions"

// policy decides whether an actor may perform an operation on a node.
type policy interface {
	actor() User
	traverse(dir *node) error
	allow(n *node, action permissions.Action) error
	chmod(n *node) error
	chown() error
}

// trusted performs no checks. Store methods run under it.
type trusted struct {
	user User
}

func (p trusted) actor() User                         { return p.user }
func (trusted) traverse(*node) error                  { return nil }
func (trusted) allow(*node, permissions.Action) error { return nil }
func (trusted) chmod(*node) error                     { return nil }
func (trusted) chown() error                          { return nil }

// checked enforces owner/group/other bits for one user.
type checked struct {
	user User
}

func (p checked) actor() User { return p.user }

func (p checked) traverse(dir *node) error {
	return p.allow(dir, permissions.ActionExecute)
}

func (p checked) allow(n *node, action permissions.Action) error {
	if !permissions.Check(n.object(), p.user.Subject(), action) {
		return ErrPermission
	}
	return nil
}

func (p checked) chmod(n *node) error {
	if !permissions.CanChmod(n.object(), p.user.Subject()) {
		return ErrNotPermitted
	}
	return nil
}

func (p checked) chown() error {
	if !permissions.CanChown(p.user.Subject()) {
		return ErrNotPermitted
	}
	return nil
}
