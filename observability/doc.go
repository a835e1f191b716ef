// Package observability wires OpenTelemetry tracing and metrics.
//
// Setup installs OTLP/HTTP trace and metric exporters when enabled and
// returns a shutdown function. When disabled, the global no-op providers
// stay in place and every helper here is safe to call.
//
// Metrics carries the instruments the service records: outbound operations
// (recording provider, language model), poll ticks by lifecycle state,
// analysis outcomes and HTTP requests.
package observability
