// Package config provides 12-factor configuration for aurora.
//
// Configuration is loaded from environment variables with sensible defaults.
//
// Configuration Sections:
//   - Server: HTTP listener and allowed CORS origins
//   - Storage: key-value backend, data directory, snapshot compression
//   - Shell: hostname, default login user, executable search path
//   - Logging: level and output format
//   - RateLimit: per-IP rate limiting
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("listening on %s\n", cfg.Server.Addr())
//
// Environment Variables:
//   - AURORA_PORT, AURORA_HOST, CORS_ORIGINS
//   - AURORA_STORAGE_BACKEND, AURORA_DATA_DIR, AURORA_SNAPSHOT_COMPRESSION
//   - AURORA_HOSTNAME, AURORA_USER, AURORA_PATH
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
