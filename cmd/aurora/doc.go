// Package main is the aurora command line.
//
// Usage:
//
//	aurora serve [--port 8000]        # HTTP + WebSocket API
//	aurora shell                      # interactive terminal
//	aurora exec ls -l /home/user      # run one command line
//	aurora volume ui 0.5              # set a volume
//	aurora reset                      # factory filesystem and settings
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - Persistent flags (--storage, --data-dir, --user, --log-file, --dev)
package main
