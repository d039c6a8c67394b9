package vfs

import (
	"time"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
	"github.com/GriffinCanCode/aurora/internal/shared/id"
)

// NodeType distinguishes files from directories.
type NodeType string

const (
	TypeFile      NodeType = "file"
	TypeDirectory NodeType = "directory"
)

// node is the arena record. Only the Store touches it.
type node struct {
	id       id.NodeID
	name     string
	kind     NodeType
	content  string
	mode     permissions.Mode
	owner    string
	group    string
	parent   id.NodeID
	children []id.NodeID
	modified time.Time
}

func (n *node) isDir() bool {
	return n.kind == TypeDirectory
}

func (n *node) object() permissions.Object {
	return permissions.Object{Owner: n.owner, Group: n.group, Mode: n.mode}
}

// Node is an immutable copy of a node handed to callers.
type Node struct {
	ID          id.NodeID        `json:"id"`
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	Type        NodeType         `json:"type"`
	Content     string           `json:"content,omitempty"`
	Size        int              `json:"size"`
	Permissions permissions.Mode `json:"permissions"`
	Owner       string           `json:"owner"`
	Group       string           `json:"group"`
	ChildCount  int              `json:"childCount"`
	Modified    time.Time        `json:"modified"`
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool {
	return n.Type == TypeDirectory
}

// Object returns the node's ownership and mode for permission checks.
func (n Node) Object() permissions.Object {
	return permissions.Object{Owner: n.Owner, Group: n.Group, Mode: n.Permissions}
}

// User is an account known to the filesystem.
type User struct {
	Username     string `json:"username"`
	UID          int    `json:"uid"`
	GID          int    `json:"gid"`
	Group        string `json:"group"`
	FullName     string `json:"fullName"`
	HomeDir      string `json:"homeDir"`
	Shell        string `json:"shell"`
	PasswordHash string `json:"-"`
}

// Subject adapts the user for permission checks.
func (u User) Subject() permissions.Subject {
	return permissions.Subject{Username: u.Username, UID: u.UID, Groups: []string{u.Group}}
}

// IsRoot reports superuser status.
func (u User) IsRoot() bool {
	return u.Subject().IsRoot()
}

// TrashDir is the user's trash directory.
func (u User) TrashDir() string {
	return trashPath(u.HomeDir)
}

// Nobody is the fallback identity for unknown usernames.
var Nobody = User{Username: "nobody", UID: 65534, GID: 65534, Group: "nogroup", FullName: "Nobody", HomeDir: "/", Shell: ""}
