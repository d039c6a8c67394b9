// Package tui runs a shell session as a full-screen bubbletea program.
//
// All line editing (history, completion, ghost text, validity) happens in the
// shell's key handler; the model only translates terminal keys into
// shell.KeyEvent values and renders the scrollback and the input line.
package tui
