package vfs

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
	"github.com/GriffinCanCode/aurora/internal/shared/id"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// tree is the node arena. It is not safe for concurrent use; Store serializes access.
type tree struct {
	nodes map[id.NodeID]*node
	root  id.NodeID
}

func newTree() *tree {
	return &tree{nodes: make(map[id.NodeID]*node)}
}

func (t *tree) rootNode() *node {
	return t.nodes[t.root]
}

// walk resolves an absolute path, calling visit on every directory it descends through.
func (t *tree) walk(path string, visit func(dir *node) error) (*node, error) {
	cur := t.rootNode()
	if cur == nil {
		return nil, ErrNotFound
	}
	for _, seg := range paths.Split(path) {
		if !cur.isDir() {
			return nil, ErrNotDirectory
		}
		if visit != nil {
			if err := visit(cur); err != nil {
				return nil, err
			}
		}
		next := t.child(cur, seg)
		if next == nil {
			return nil, ErrNotFound
		}
		cur = next
	}
	return cur, nil
}

func (t *tree) lookup(path string) (*node, error) {
	return t.walk(path, nil)
}

func (t *tree) lookupDir(path string) (*node, error) {
	n, err := t.lookup(path)
	if err != nil {
		return nil, err
	}
	if !n.isDir() {
		return nil, ErrNotDirectory
	}
	return n, nil
}

func (t *tree) child(dir *node, name string) *node {
	for _, cid := range dir.children {
		if c := t.nodes[cid]; c != nil && c.name == name {
			return c
		}
	}
	return nil
}

func (t *tree) childrenOf(dir *node) []*node {
	out := make([]*node, 0, len(dir.children))
	for _, cid := range dir.children {
		if c := t.nodes[cid]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (t *tree) pathOf(n *node) string {
	var segments []string
	for cur := n; cur != nil && cur.id != t.root; cur = t.nodes[cur.parent] {
		segments = append(segments, cur.name)
	}
	if len(segments) == 0 {
		return paths.Root
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return paths.Root + strings.Join(segments, paths.Separator)
}

// attach adds n as the last child of dir. The caller has already checked the name.
func (t *tree) attach(dir, n *node) {
	n.parent = dir.id
	dir.children = append(dir.children, n.id)
	t.nodes[n.id] = n
}

func (t *tree) detach(n *node) {
	parent := t.nodes[n.parent]
	if parent == nil {
		return
	}
	for i, cid := range parent.children {
		if cid == n.id {
			parent.children = append(parent.children[:i:i], parent.children[i+1:]...)
			break
		}
	}
	n.parent = ""
}

// destroy detaches n and drops it and its whole subtree from the arena.
func (t *tree) destroy(n *node) int {
	t.detach(n)
	return t.drop(n)
}

func (t *tree) drop(n *node) int {
	count := 1
	for _, cid := range n.children {
		if c := t.nodes[cid]; c != nil {
			count += t.drop(c)
		}
	}
	delete(t.nodes, n.id)
	return count
}

// isAncestor reports whether a is n or one of n's ancestors.
func (t *tree) isAncestor(a, n *node) bool {
	for cur := n; cur != nil; cur = t.nodes[cur.parent] {
		if cur.id == a.id {
			return true
		}
		if cur.parent == "" {
			break
		}
	}
	return false
}

func (t *tree) info(n *node) *Node {
	size := 0
	if !n.isDir() {
		size = len(n.content)
	}
	return &Node{
		ID:          n.id,
		Name:        n.name,
		Path:        t.pathOf(n),
		Type:        n.kind,
		Content:     n.content,
		Size:        size,
		Permissions: n.mode,
		Owner:       n.owner,
		Group:       n.group,
		ChildCount:  len(n.children),
		Modified:    n.modified,
	}
}

func newNode(name string, kind NodeType, content string, mode permissions.Mode, owner, group string) *node {
	mode.Dir = kind == TypeDirectory
	return &node{
		id:      id.NewNodeID(),
		name:    name,
		kind:    kind,
		content: content,
		mode:    mode,
		owner:   owner,
		group:   group,
	}
}

func validateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	case strings.Contains(name, paths.Separator):
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
