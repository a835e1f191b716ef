package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Timestamp is a word boundary. Relative is seconds from recording start;
// Absolute is the provider's wall-clock string and is informational only.
type Timestamp struct {
	Relative float64 `json:"relative"`
	Absolute string  `json:"absolute,omitempty"`
}

// Word is a single timestamped token.
type Word struct {
	Text           string    `json:"text"`
	StartTimestamp Timestamp `json:"start_timestamp"`
	EndTimestamp   Timestamp `json:"end_timestamp"`
}

// ParticipantID accepts either a JSON number or a string.
type ParticipantID string

func (p *ParticipantID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParticipantID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("participant id: %w", err)
		}
		*p = ParticipantID(n.String())
		return nil
	}
}

// Participant identifies the speaker of a chunk.
type Participant struct {
	ID    ParticipantID `json:"id"`
	Name  string        `json:"name"`
	Email *string       `json:"email,omitempty"`
}

// Chunk is one provider-delivered batch of words from a single speaker.
type Chunk struct {
	Participant Participant `json:"participant"`
	Words       []Word      `json:"words"`
}

// Utterance is a continuous speech turn reconstructed from a chunk.
type Utterance struct {
	SpeakerName   string  `json:"speaker_name"`
	StartRelative float64 `json:"start_relative"`
	EndRelative   float64 `json:"end_relative"`
	Text          string  `json:"text"`
}
