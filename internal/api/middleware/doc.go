// Package middleware holds the gin middleware shared by the HTTP and WebSocket
// surfaces: CORS, per-IP rate limiting and request logging.
package middleware
