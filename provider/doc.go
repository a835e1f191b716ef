// Package provider describes outbound collaborators as typed
// request/response providers and composes cross-cutting behavior around them.
//
// The language model backend is a RequestResponse[llm.CompletionRequest,
// llm.CompletionResponse]; Adapt turns it into a domain-shaped provider and
// Chain layers logging, tracing and metrics on top.
package provider
