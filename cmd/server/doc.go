// Package main runs the aurora HTTP server without the rest of the CLI.
//
// The server provides:
//   - REST API for the virtual filesystem, users and settings
//   - Terminal sessions over REST and a WebSocket stream
//   - Application window management
//   - Prometheus metrics at /metrics
//   - Rate limiting and CORS
//
// Usage:
//
//	./server -port 8000
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
