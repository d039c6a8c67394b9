package vfs

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/logging"
	"github.com/GriffinCanCode/aurora/internal/infrastructure/storage"
	"github.com/GriffinCanCode/aurora/internal/shared/paths"
)

// SnapshotKey is the storage key holding the serialized tree.
const SnapshotKey = "aurora.filesystem"

const persistTimeout = 5 * time.Second

// Recorder receives mutation and persistence outcomes.
type Recorder interface {
	RecordMutation(op string, ok bool)
	RecordPersistenceFailure(key string)
}

type nopRecorder struct{}

func (nopRecorder) RecordMutation(string, bool)     {}
func (nopRecorder) RecordPersistenceFailure(string) {}

// Option configures a Store.
type Option func(*Store)

// WithMetrics reports mutations to r.
func WithMetrics(r Recorder) Option {
	return func(s *Store) {
		if r != nil {
			s.metrics = r
		}
	}
}

// WithCompression zstd-compresses snapshots before they are stored.
func WithCompression(enabled bool) Option {
	return func(s *Store) {
		s.codec = newCodec(enabled)
	}
}

// WithCurrentUser selects the desktop user after loading.
func WithCurrentUser(username string) Option {
	return func(s *Store) {
		s.wantUser = username
	}
}

// WithClock overrides the modification time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store owns the filesystem tree and the users table.
type Store struct {
	mu       sync.RWMutex
	tree     *tree
	users    []User
	current  string
	wantUser string

	backend storage.Backend
	codec   *codec
	logger  *logging.Logger
	metrics Recorder
	now     func() time.Time
}

// NewStore loads the persisted tree from backend, or seeds the factory tree when
// nothing usable is stored. A nil backend keeps everything in memory.
func NewStore(backend storage.Backend, logger *logging.Logger, opts ...Option) *Store {
	if backend == nil {
		backend = storage.NewMemory()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Store{
		backend: backend,
		codec:   newCodec(false),
		logger:  logger.Named("vfs"),
		metrics: nopRecorder{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()
	if s.wantUser != "" {
		if _, ok := s.findUserLocked(s.wantUser); ok {
			s.current = s.wantUser
		} else {
			s.logger.Warn("unknown current user, keeping default",
				zap.String("requested", s.wantUser),
				zap.String("current", s.current))
		}
	}
	return s
}

func (s *Store) load() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := s.backend.Get(ctx, SnapshotKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Info("no snapshot stored, seeding factory tree")
		s.seed()
		return
	case err != nil:
		s.logger.Warn("failed to read snapshot, seeding factory tree", zap.Error(err))
		s.seed()
		return
	}

	t, users, current, err := s.codec.decode(data)
	if err != nil {
		s.logger.Warn("snapshot unreadable, seeding factory tree", zap.Error(err))
		s.seed()
		return
	}
	s.tree, s.users, s.current = t, users, current
	s.logger.Info("snapshot loaded",
		zap.Int("nodes", len(t.nodes)),
		zap.Int("bytes", len(data)))
}

func (s *Store) seed() {
	f := factory()
	s.tree = f.build(s.now())
	s.users = f.users()
	s.current = f.CurrentUser
}

// persistLocked writes the snapshot. Failures leave the in-memory state intact.
func (s *Store) persistLocked() {
	data, err := s.codec.encode(s.tree, s.users, s.current)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		err = s.backend.Set(ctx, SnapshotKey, data)
		cancel()
	}
	if err != nil {
		s.metrics.RecordPersistenceFailure(SnapshotKey)
		s.logger.Warn("failed to persist snapshot", zap.Error(err))
	}
}

// mutate runs fn under the write lock and persists on success. A nil policy acts
// as the current user without permission checks.
func (s *Store) mutate(op string, p policy, fn func(policy) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == nil {
		p = trusted{user: s.currentLocked()}
	}
	err := fn(p)
	s.metrics.RecordMutation(op, err == nil)
	if err != nil {
		s.logger.Debug("mutation rejected",
			zap.String("op", op),
			zap.String("user", p.actor().Username),
			zap.Error(err))
		return err
	}
	s.logger.Debug("mutation applied", zap.String("op", op), zap.String("user", p.actor().Username))
	s.persistLocked()
	return nil
}

func (s *Store) trustedLocked() policy {
	return trusted{user: s.currentLocked()}
}

// CreateFile adds a file under parentPath.
func (s *Store) CreateFile(parentPath, name, content string) bool {
	return s.mutate("create_file", nil, func(p policy) error {
		_, err := s.create(p, parentPath, name, TypeFile, content)
		return err
	}) == nil
}

// CreateDirectory adds an empty directory under parentPath.
func (s *Store) CreateDirectory(parentPath, name string) bool {
	return s.mutate("create_directory", nil, func(p policy) error {
		_, err := s.create(p, parentPath, name, TypeDirectory, "")
		return err
	}) == nil
}

// ReadFile returns a file's content. ok is false for missing paths and directories.
func (s *Store) ReadFile(path string) (content string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, err := s.read(s.trustedLocked(), path)
	return content, err == nil
}

// WriteFile replaces the content of an existing file.
func (s *Store) WriteFile(path, content string) bool {
	return s.mutate("write_file", nil, func(p policy) error {
		return s.write(p, path, content)
	}) == nil
}

// GetNodeAtPath returns a copy of the node at path, or nil.
func (s *Store) GetNodeAtPath(path string) *Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, err := s.tree.lookup(path)
	if err != nil {
		return nil
	}
	return s.tree.info(n)
}

// ListDirectory returns the children of a directory in insertion order. It returns
// nil when path is missing or not a directory, and an empty slice for empty ones.
func (s *Store) ListDirectory(path string) []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	nodes, err := s.list(s.trustedLocked(), path)
	if err != nil {
		return nil
	}
	return nodes
}

// MoveNode relocates or renames sourcePath.
func (s *Store) MoveNode(sourcePath, destPath string) bool {
	return s.mutate("move", nil, func(p policy) error {
		_, err := s.move(p, sourcePath, destPath)
		return err
	}) == nil
}

// Chmod applies a mode spec (octal, symbolic or literal) to path.
func (s *Store) Chmod(path, modeSpec string) bool {
	return s.mutate("chmod", nil, func(p policy) error {
		return s.chmod(p, path, modeSpec)
	}) == nil
}

// Chown changes the owner and, when group is non-empty, the group of path.
func (s *Store) Chown(path, owner, group string) bool {
	return s.mutate("chown", nil, func(p policy) error {
		return s.chown(p, path, owner, group)
	}) == nil
}

// MoveToTrash relocates path into the current user's trash.
func (s *Store) MoveToTrash(path string) bool {
	return s.mutate("trash", nil, func(p policy) error {
		_, err := s.trash(p, path)
		return err
	}) == nil
}

// EmptyTrash permanently removes everything in the current user's trash and
// returns how many nodes were destroyed.
func (s *Store) EmptyTrash() int {
	var removed int
	_ = s.mutate("empty_trash", nil, func(p policy) error {
		var err error
		removed, err = s.emptyTrash(p)
		return err
	})
	return removed
}

// DeleteNode permanently removes path and its subtree.
func (s *Store) DeleteNode(path string) bool {
	return s.mutate("delete", nil, func(p policy) error {
		_, err := s.remove(p, path)
		return err
	}) == nil
}

// ResetFileSystem restores the factory tree and users, then persists them.
func (s *Store) ResetFileSystem() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seed()
	s.metrics.RecordMutation("reset", true)
	s.logger.Info("filesystem reset to factory defaults")
	s.persistLocked()
}

// ResolvePath resolves path against cwd using the current user's home.
func (s *Store) ResolvePath(path, cwd string) string {
	return paths.Resolve(path, cwd, s.HomePath())
}

// HomePath returns the current user's home directory.
func (s *Store) HomePath() string {
	return s.CurrentUser().HomeDir
}

// As returns a permission-checking view of the store for user.
func (s *Store) As(user User) *Guard {
	return &Guard{store: s, user: user}
}
