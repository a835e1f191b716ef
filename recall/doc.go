// Package recall is the client for the hosted meeting-bot provider.
//
// It creates bots, fetches bot state (status history and recordings) and
// downloads transcript artifacts from their pre-signed URLs. Each call runs
// as a provider.RequestResponse so logging, tracing and metrics middlewares
// apply uniformly.
package recall
