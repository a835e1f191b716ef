// Package errors provides the structured error taxonomy used across
// meetverdict. Every failure surfaced by the core is an *AppError carrying a
// machine-readable code, an HTTP status mapping and a retryable hint that
// callers use to tell "keep polling" apart from "stop and show the error".
package errors
