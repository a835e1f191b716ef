package transcript

import "strings"

// Render formats utterances as "<speaker>: <text>" lines in the given order.
func Render(utterances []Utterance) string {
	lines := make([]string, len(utterances))
	for i, u := range utterances {
		lines[i] = u.SpeakerName + ": " + u.Text
	}
	return strings.Join(lines, "\n")
}
