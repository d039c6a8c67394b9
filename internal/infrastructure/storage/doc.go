// Package storage provides the durable key-value layer behind the virtual
// filesystem snapshot and user settings.
//
// Two backends implement Backend:
//   - Memory: a process-local map, used in tests and ephemeral sessions
//   - Badger: an embedded BadgerDB database rooted at a data directory
//
// Keys are flat strings owned by their callers (for example "aurora.filesystem").
// Values are opaque bytes; encoding is the caller's concern.
package storage
