package transcript

import (
	"regexp"
	"slices"
	"strings"
)

// TurnGap is the silence, in seconds, that ends a speech turn. A gap of
// exactly TurnGap does not split.
const TurnGap = 1.2

// spaceBeforePunct matches any Unicode space run, including NBSP and BOM,
// before a punctuation mark.
var spaceBeforePunct = regexp.MustCompile(`[\s\v\p{Z}\x{FEFF}]+([,.!?;:])`)

// JoinWords space-joins tokens and attaches punctuation to the preceding token.
func JoinWords(words []string) string {
	return spaceBeforePunct.ReplaceAllString(strings.Join(words, " "), "$1")
}

// Segment converts chunks into utterances sorted by start time. Ties keep
// chunk order.
func Segment(chunks []Chunk) []Utterance {
	out := make([]Utterance, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, segmentChunk(c)...)
	}
	slices.SortStableFunc(out, func(a, b Utterance) int {
		switch {
		case a.StartRelative < b.StartRelative:
			return -1
		case a.StartRelative > b.StartRelative:
			return 1
		}
		return 0
	})
	return out
}

func segmentChunk(c Chunk) []Utterance {
	var (
		out     []Utterance
		buf     []Word
		lastEnd float64
		hasLast bool
	)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		texts := make([]string, len(buf))
		for i, w := range buf {
			texts[i] = w.Text
		}
		out = append(out, Utterance{
			SpeakerName:   c.Participant.Name,
			StartRelative: buf[0].StartTimestamp.Relative,
			EndRelative:   buf[len(buf)-1].EndTimestamp.Relative,
			Text:          JoinWords(texts),
		})
		buf = nil
		hasLast = false
	}

	for _, w := range c.Words {
		if hasLast && w.StartTimestamp.Relative-lastEnd > TurnGap {
			flush()
		}
		buf = append(buf, w)
		lastEnd = w.EndTimestamp.Relative
		hasLast = true
	}
	flush()
	return out
}
