// Package poller drives a recording bot from creation to a validated
// decision.
//
// PollOnce performs one tick: fetch the bot, and depending on the lifecycle
// transition, download the transcript artifact, segment and render it, and
// ask the analyzer for a decision. It keeps no state between calls, so a
// caller may schedule ticks however it likes. Run is the blocking,
// server-driven loop over PollOnce.
//
// "Keep polling" outcomes are ordinary results, not errors. Nothing is
// retried internally.
package poller
