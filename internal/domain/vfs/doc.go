// Package vfs implements the in-memory virtual filesystem behind the desktop.
//
// # Model
//
// Nodes live in an arena keyed by id.NodeID. Directories hold their children as an
// ordered list of ids (insertion order is display order) and every non-root node
// points back at its parent. Names are unique among siblings, case-sensitive, and
// every operation that would break that fails instead of overwriting.
//
// # Store
//
// Store exposes the total, bool-returning operations used by the desktop
// (CreateFile, MoveNode, MoveToTrash, ...). It performs no permission checks.
// Guard wraps a Store for one acting user, enforces owner/group/other access,
// and returns sentinel errors (ErrNotFound, ErrPermission, ...) that callers
// turn into "cmd: target: reason" messages.
//
// # Persistence
//
// Every successful mutation writes a full snapshot under SnapshotKey. A storage
// failure is logged and counted but never rolls back the in-memory change. On
// startup a missing or unreadable snapshot falls back to the factory tree.
//
// # Trash
//
// Each user's trash is <home>/.Trash. MoveToTrash relocates a node there, renaming
// "file.txt" to "file 1.txt", "file 2.txt", ... on collision. EmptyTrash destroys the
// trash's children but never the directory itself.
package vfs
