// Package app loads the meetverdict configuration and wires the
// orchestrator, its collaborators, observability and the HTTP server into
// one application with a graceful lifecycle.
package app
