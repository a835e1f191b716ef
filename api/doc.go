// Package api exposes the orchestrator over HTTP.
//
// Routes:
//
//	POST /api/recall/start   {"meeting_url": "..."} -> {"bot_id": "..."}
//	GET  /api/recall/status  ?bot_id=...            -> poll result
//	GET  /api/analyze                               -> liveness + LLM key presence
//	POST /api/analyze        {"transcript": [...]}  -> {"decision": {...}}
//
// Failures use the AppError response body.
package api
