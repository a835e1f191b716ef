package transcript

import (
	"bytes"
	"encoding/json"

	"github.com/kbukum/meetverdict/errors"
)

const previewLimit = 512

// Messages carried by TRANSCRIPT_MALFORMED errors.
const (
	MsgNotArray      = "Transcript download was not an array"
	MsgNotChunkArray = "Transcript download is not an array of chunks"
)

// ParseArtifact decodes a downloaded transcript. Anything other than a JSON
// array of chunks is reported as TRANSCRIPT_MALFORMED with a preview of
// the payload.
func ParseArtifact(body []byte) ([]Chunk, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' || !json.Valid(trimmed) {
		return nil, malformed(MsgNotArray, trimmed, nil)
	}

	var chunks []Chunk
	if err := json.Unmarshal(trimmed, &chunks); err != nil {
		return nil, malformed(MsgNotChunkArray, trimmed, err)
	}
	return chunks, nil
}

func malformed(msg string, body []byte, cause error) error {
	appErr := errors.TranscriptMalformed(msg).
		WithDetail("transcript_preview", Preview(body))
	if cause != nil {
		appErr.WithCause(cause)
	}
	return appErr
}

// Preview returns the payload as decoded JSON when possible, otherwise a
// truncated string.
func Preview(body []byte) any {
	var v any
	if len(body) <= previewLimit*8 && json.Unmarshal(body, &v) == nil {
		return v
	}
	if len(body) > previewLimit {
		return string(body[:previewLimit]) + "..."
	}
	return string(body)
}
