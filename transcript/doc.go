// Package transcript turns a recording provider's word-level transcript into
// speaker turns and readable text.
//
// A transcript artifact is a JSON array of Chunks. Each chunk holds the
// words one participant spoke in a single provider batch. Segment splits
// every chunk on silences longer than TurnGap, then orders all resulting
// utterances by start time:
//
//	chunks, err := transcript.ParseArtifact(body)
//	text := transcript.Render(transcript.Segment(chunks))
//
// Chunks are segmented independently, so one turn split across two
// provider batches stays split.
package transcript
