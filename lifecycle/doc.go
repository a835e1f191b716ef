// Package lifecycle classifies a recording bot's progress and decides what
// the poller does next.
//
// The status code is the last entry of the bot's status history; only the
// codes done, recording_done and call_ended (any case) are terminal. Every
// other code, recognized or not, keeps polling.
//
// Next is a pure transition function over (State, Event). It does no I/O,
// so the same machine drives the server-side blocking loop and a
// caller-scheduled poll.
package lifecycle
