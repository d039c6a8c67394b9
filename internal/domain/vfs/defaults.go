package vfs

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/aurora/internal/domain/permissions"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type manifest struct {
	CurrentUser string       `yaml:"currentUser"`
	Users       []userEntry  `yaml:"users"`
	Tree        manifestNode `yaml:"tree"`

	hashed []User
}

type userEntry struct {
	Username string `yaml:"username"`
	UID      int    `yaml:"uid"`
	GID      int    `yaml:"gid"`
	Group    string `yaml:"group"`
	FullName string `yaml:"fullName"`
	Home     string `yaml:"home"`
	Shell    string `yaml:"shell"`
	Password string `yaml:"password"`
}

type manifestNode struct {
	Name     string         `yaml:"name"`
	Type     NodeType       `yaml:"type"`
	Mode     string         `yaml:"mode"`
	Owner    string         `yaml:"owner"`
	Group    string         `yaml:"group"`
	Content  string         `yaml:"content"`
	Children []manifestNode `yaml:"children"`
}

var (
	factoryOnce sync.Once
	factoryDef  *manifest
)

// factory parses the embedded manifest and hashes its passwords once per process.
func factory() *manifest {
	factoryOnce.Do(func() {
		m, err := parseManifest(defaultsYAML)
		if err != nil {
			panic(fmt.Sprintf("vfs: embedded defaults: %v", err))
		}
		factoryDef = m
	})
	return factoryDef
}

func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for _, e := range m.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(e.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", e.Username, err)
		}
		m.hashed = append(m.hashed, User{
			Username:     e.Username,
			UID:          e.UID,
			GID:          e.GID,
			Group:        e.Group,
			FullName:     e.FullName,
			HomeDir:      e.Home,
			Shell:        e.Shell,
			PasswordHash: string(hash),
		})
	}
	return &m, nil
}

func (m *manifest) users() []User {
	out := make([]User, len(m.hashed))
	copy(out, m.hashed)
	return out
}

// build creates a fresh tree with new node ids.
func (m *manifest) build(now time.Time) *tree {
	t := newTree()
	root := m.Tree
	root.Type = TypeDirectory
	r := m.node(root, "/", "root", "root", now)
	t.root = r.id
	t.nodes[r.id] = r
	m.attach(t, r, root.Children, now)
	return t
}

func (m *manifest) attach(t *tree, parent *node, entries []manifestNode, now time.Time) {
	for _, e := range entries {
		n := m.node(e, e.Name, parent.owner, parent.group, now)
		t.attach(parent, n)
		m.attach(t, n, e.Children, now)
	}
}

func (m *manifest) node(e manifestNode, name, owner, group string, now time.Time) *node {
	kind := e.Type
	if kind == "" {
		kind = TypeDirectory
		if e.Content != "" {
			kind = TypeFile
		}
	}
	mode := permissions.FileDefault
	if kind == TypeDirectory {
		mode = permissions.DirDefault
	}
	if e.Mode != "" {
		mode = permissions.MustParseMode(e.Mode)
	}
	if e.Owner != "" {
		owner = e.Owner
	}
	if e.Group != "" {
		group = e.Group
	}
	n := newNode(name, kind, e.Content, mode, owner, group)
	n.modified = now
	return n
}
