// Package server provides the HTTP server: a Gin engine mounted on a
// ServeMux, served with h2c so HTTP/2 cleartext clients work on the same
// port.
//
// # Middleware
//
// Server-level middleware (server/middleware) wraps every route:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request ID generation and propagation into the log context
//   - RequestLogger: request logging with duration, skipping probe paths
//   - Metrics: request count and duration
//   - CORS: cross-origin resource sharing
//   - BodySizeLimit: request body size limit
//
// # Endpoints
//
// Built-in endpoints (server/endpoint): /health aggregates component health,
// /info reports build information, /alive is the liveness probe.
package server
