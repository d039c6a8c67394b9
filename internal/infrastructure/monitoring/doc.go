/*
Package monitoring provides Prometheus metrics for the filesystem, the shell and
the HTTP surface.

# Overview

Every Metrics value owns its own registry, so independent instances (one per test,
one per server) never collide on collector names.

# Metrics

- aurora_http_requests_total / aurora_http_request_duration_seconds
- aurora_shell_commands_total by command and outcome
- aurora_fs_mutations_total by operation and outcome
- aurora_persistence_failures_total by storage key
- aurora_shell_sessions_active
- aurora_app_launches_total by app id
- aurora_ws_connections, aurora_ws_messages_total

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	sh := shell.NewInterpreter(store, logger, shell.WithMetrics(metrics))
*/
package monitoring
