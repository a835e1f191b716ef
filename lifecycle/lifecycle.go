package lifecycle

import (
	"slices"
	"strings"

	"github.com/kbukum/meetverdict/recall"
)

// UnknownCode is reported when a bot has no status history yet.
const UnknownCode = "unknown"

var terminalCodes = []string{"done", "recording_done", "call_ended"}

// IsTerminalCode reports whether code marks the end of the recording.
func IsTerminalCode(code string) bool {
	return slices.Contains(terminalCodes, strings.ToLower(code))
}

// Classify maps a provider status code to Done or InProgress.
func Classify(code string) State {
	if IsTerminalCode(code) {
		return Done
	}
	return InProgress
}

// LastCode returns the code of the most recent status change.
func LastCode(bot *recall.Bot) string {
	if bot == nil || len(bot.StatusChanges) == 0 {
		return UnknownCode
	}
	code := bot.StatusChanges[len(bot.StatusChanges)-1].Code
	if code == "" {
		return UnknownCode
	}
	return code
}

// TranscriptURL returns the transcript download URL of the most recent
// recording, or "" when none is discoverable yet.
func TranscriptURL(bot *recall.Bot) string {
	if bot == nil || len(bot.Recordings) == 0 {
		return ""
	}
	t := bot.Recordings[len(bot.Recordings)-1].MediaShortcuts.Transcript
	if t == nil {
		return ""
	}
	return t.Data.URL()
}

// Observe turns a fetched bot into a status event.
func Observe(bot *recall.Bot) Event {
	return Event{Kind: StatusObserved, Code: LastCode(bot), TranscriptURL: TranscriptURL(bot)}
}
