// Package app tracks the desktop's open application windows.
//
// Windows are opened by the shell's "#!app <id>" launcher stubs and by the HTTP
// API. Each launch gets a uuid window id, a cascading position and the next
// z-order slot. Exactly one window is focused at a time; the rest are in the
// background or minimized.
package app
