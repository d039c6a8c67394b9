package vfs

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
	"github.com/GriffinCanCode/aurora/internal/shared/id"
)

const snapshotVersion = 1

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

var errCorrupt = errors.New("corrupt snapshot")

type snapshot struct {
	Version     int          `json:"version"`
	Root        id.NodeID    `json:"root"`
	CurrentUser string       `json:"currentUser"`
	Users       []userRecord `json:"users"`
	Nodes       []nodeRecord `json:"nodes"`
}

type nodeRecord struct {
	ID       id.NodeID        `json:"id"`
	Name     string           `json:"name"`
	Type     NodeType         `json:"type"`
	Content  string           `json:"content,omitempty"`
	Mode     permissions.Mode `json:"permissions"`
	Owner    string           `json:"owner"`
	Group    string           `json:"group"`
	Parent   id.NodeID        `json:"parent,omitempty"`
	Children []id.NodeID      `json:"children,omitempty"`
	Modified time.Time        `json:"modified"`
}

type userRecord struct {
	Username     string `json:"username"`
	UID          int    `json:"uid"`
	GID          int    `json:"gid"`
	Group        string `json:"group"`
	FullName     string `json:"fullName"`
	HomeDir      string `json:"homeDir"`
	Shell        string `json:"shell"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// codec serializes the tree as JSON, optionally zstd-compressed. Decoding accepts
// both forms regardless of the compression setting.
type codec struct {
	compress bool
}

func newCodec(compress bool) *codec {
	return &codec{compress: compress}
}

func (c *codec) encode(t *tree, users []User, current string) ([]byte, error) {
	snap := snapshot{
		Version:     snapshotVersion,
		Root:        t.root,
		CurrentUser: current,
		Users:       make([]userRecord, 0, len(users)),
		Nodes:       make([]nodeRecord, 0, len(t.nodes)),
	}
	for _, u := range users {
		snap.Users = append(snap.Users, userRecord(u))
	}
	var visit func(n *node)
	visit = func(n *node) {
		snap.Nodes = append(snap.Nodes, nodeRecord{
			ID:       n.id,
			Name:     n.name,
			Type:     n.kind,
			Content:  n.content,
			Mode:     n.mode,
			Owner:    n.owner,
			Group:    n.group,
			Parent:   n.parent,
			Children: n.children,
			Modified: n.modified,
		})
		for _, c := range t.childrenOf(n) {
			visit(c)
		}
	}
	if root := t.rootNode(); root != nil {
		visit(root)
	}

	data, err := sonic.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if c.compress {
		return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/4)), nil
	}
	return data, nil
}

func (c *codec) decode(data []byte) (*tree, []User, string, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		raw, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, nil, "", fmt.Errorf("decompress snapshot: %w", err)
		}
		data = raw
	}

	var snap snapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return nil, nil, "", fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, nil, "", fmt.Errorf("%w: unsupported version %d", errCorrupt, snap.Version)
	}

	t := newTree()
	t.root = snap.Root
	for _, r := range snap.Nodes {
		if r.ID == "" {
			return nil, nil, "", fmt.Errorf("%w: node without id", errCorrupt)
		}
		if _, dup := t.nodes[r.ID]; dup {
			return nil, nil, "", fmt.Errorf("%w: duplicate node %s", errCorrupt, r.ID)
		}
		mode := r.Mode
		mode.Dir = r.Type == TypeDirectory
		t.nodes[r.ID] = &node{
			id:       r.ID,
			name:     r.Name,
			kind:     r.Type,
			content:  r.Content,
			mode:     mode,
			owner:    r.Owner,
			group:    r.Group,
			parent:   r.Parent,
			children: r.Children,
			modified: r.Modified,
		}
	}
	if err := validateTree(t); err != nil {
		return nil, nil, "", err
	}

	users := make([]User, 0, len(snap.Users))
	for _, u := range snap.Users {
		users = append(users, User(u))
	}
	if len(users) == 0 {
		users = factory().users()
	}
	return t, users, snap.CurrentUser, nil
}

// validateTree checks the structural invariants: one root, matching parent links,
// only directories with children, unique sibling names and no unreachable nodes.
func validateTree(t *tree) error {
	root := t.rootNode()
	if root == nil || !root.isDir() || root.parent != "" {
		return fmt.Errorf("%w: missing root directory", errCorrupt)
	}
	seen := make(map[id.NodeID]bool, len(t.nodes))
	var check func(n *node) error
	check = func(n *node) error {
		if seen[n.id] {
			return fmt.Errorf("%w: cycle at %s", errCorrupt, n.id)
		}
		seen[n.id] = true
		if n.kind != TypeFile && n.kind != TypeDirectory {
			return fmt.Errorf("%w: unknown type %q", errCorrupt, n.kind)
		}
		if !n.isDir() && len(n.children) > 0 {
			return fmt.Errorf("%w: file %s has children", errCorrupt, n.id)
		}
		names := make(map[string]bool, len(n.children))
		for _, cid := range n.children {
			c := t.nodes[cid]
			if c == nil || c.parent != n.id {
				return fmt.Errorf("%w: broken link %s -> %s", errCorrupt, n.id, cid)
			}
			if validateName(c.name) != nil || names[c.name] {
				return fmt.Errorf("%w: bad or duplicate name %q", errCorrupt, c.name)
			}
			names[c.name] = true
			if err := check(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(root); err != nil {
		return err
	}
	if len(seen) != len(t.nodes) {
		return fmt.Errorf("%w: %d unreachable nodes", errCorrupt, len(t.nodes)-len(seen))
	}
	return nil
}
