// Package logging provides structured logging using uber/zap.
//
// Two output modes:
//   - Production: JSON lines for machine parsing
//   - Development: colored console output for humans
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("filesystem loaded", zap.Int("nodes", n))
//	logger.Warn("snapshot not persisted", zap.Error(err))
package logging
