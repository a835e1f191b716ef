package poller

import (
	"github.com/kbukum/meetverdict/decision"
	"github.com/kbukum/meetverdict/lifecycle"
)

// Hints returned while the transcript is not yet available.
const (
	HintNoArtifact      = "Meeting ended, but transcript artifact not available yet. Keep polling."
	HintNotDownloadable = "Transcript URL exists but is not downloadable yet. Keep polling."
)

// Result is the outcome of one poll tick.
type Result struct {
	BotID  string          `json:"bot_id"`
	Status string          `json:"status"`
	State  lifecycle.State `json:"state"`

	TranscriptNotReady    bool   `json:"transcript_not_ready,omitempty"`
	Hint                  string `json:"hint,omitempty"`
	RecordingsCount       *int   `json:"recordings_count,omitempty"`
	TranscriptFetchStatus int    `json:"transcript_fetch_status,omitempty"`
	RecallError           any    `json:"recall_error,omitempty"`

	// Error and Code are set when the artifact is malformed.
	Error             string `json:"error,omitempty"`
	Code              string `json:"code,omitempty"`
	TranscriptPreview any    `json:"transcript_preview,omitempty"`

	Decision *decision.Decision `json:"decision,omitempty"`
}

// Final reports whether polling should stop after this result.
func (r *Result) Final() bool {
	return r.State.Terminal()
}
