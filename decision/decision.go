package decision

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/validation"
)

// Field names, in the order they are checked.
const (
	FieldMeetingWasWorthIt = "meeting_was_worth_it"
	FieldSassyVerdict      = "sassy_verdict"
	FieldShouldSchedule    = "should_schedule"
	FieldFirmVerdict       = "firm_verdict"
	FieldConfidence        = "confidence"
	FieldSuggestedTitle    = "suggested_title"
	FieldSuggestedWhen     = "suggested_when"
	FieldSuggestedStartISO = "suggested_start_iso"
	FieldDurationMinutes   = "duration_minutes"
)

// Bounds for DurationMinutes.
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 240
)

// Decision is the validated analysis result. Nullable fields are pointers
// and always serialize, as null when unknown.
type Decision struct {
	MeetingWasWorthIt bool    `json:"meeting_was_worth_it"`
	SassyVerdict      string  `json:"sassy_verdict"`
	ShouldSchedule    bool    `json:"should_schedule"`
	FirmVerdict       string  `json:"firm_verdict"`
	Confidence        float64 `json:"confidence"`
	SuggestedTitle    *string `json:"suggested_title"`
	SuggestedWhen     *string `json:"suggested_when"`
	SuggestedStartISO *string `json:"suggested_start_iso"`
	DurationMinutes   *int    `json:"duration_minutes"`
}

// Parse validates an analyzer payload. An empty payload is
// ANALYSIS_UNAVAILABLE; any other failure is ANALYSIS_CONTRACT_VIOLATION
// carrying the first offending field.
func Parse(raw []byte) (*Decision, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperrors.AnalysisUnavailable("analyzer returned no decision payload")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, apperrors.AnalysisContractViolation("payload", "must be a JSON object").WithCause(err)
	}

	r := &reader{fields: fields, v: validation.New()}
	d := &Decision{
		MeetingWasWorthIt: r.boolean(FieldMeetingWasWorthIt),
		SassyVerdict:      r.verdict(FieldSassyVerdict),
		ShouldSchedule:    r.boolean(FieldShouldSchedule),
		FirmVerdict:       r.verdict(FieldFirmVerdict),
		Confidence:        r.confidence(FieldConfidence),
		SuggestedTitle:    r.nullableString(FieldSuggestedTitle),
		SuggestedWhen:     r.nullableString(FieldSuggestedWhen),
		SuggestedStartISO: r.nullableString(FieldSuggestedStartISO),
		DurationMinutes:   r.duration(FieldDurationMinutes),
	}

	if fe, ok := r.v.First(); ok {
		return nil, apperrors.AnalysisContractViolation(fe.Field, fe.Message)
	}
	return d, nil
}

// reader pulls typed values out of the payload, recording at most one
// error per field into the validator.
type reader struct {
	fields map[string]json.RawMessage
	v      *validation.Validator
}

// lookup returns the raw value and whether it is JSON null. A missing key
// is recorded and reported as not ok.
func (r *reader) lookup(field string) (json.RawMessage, bool, bool) {
	raw, present := r.fields[field]
	r.v.Present(field, present)
	if !present {
		return nil, false, false
	}
	return raw, string(bytes.TrimSpace(raw)) == "null", true
}

func (r *reader) boolean(field string) bool {
	raw, isNull, ok := r.lookup(field)
	if !ok {
		return false
	}
	var b bool
	if isNull || json.Unmarshal(raw, &b) != nil {
		r.v.AddError(field, "must be a boolean")
	}
	return b
}

func (r *reader) verdict(field string) string {
	raw, isNull, ok := r.lookup(field)
	if !ok {
		return ""
	}
	var s string
	if isNull || json.Unmarshal(raw, &s) != nil {
		r.v.AddError(field, "must be a string")
		return ""
	}
	r.v.Required(field, s)
	return s
}

func (r *reader) confidence(field string) float64 {
	raw, isNull, ok := r.lookup(field)
	if !ok {
		return 0
	}
	var f float64
	if isNull || json.Unmarshal(raw, &f) != nil {
		r.v.AddError(field, "must be a number")
		return 0
	}
	r.v.RangeFloat(field, f, 0, 1)
	return f
}

func (r *reader) nullableString(field string) *string {
	raw, isNull, ok := r.lookup(field)
	if !ok || isNull {
		return nil
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		r.v.AddError(field, "must be a string or null")
		return nil
	}
	return &s
}

func (r *reader) duration(field string) *int {
	raw, isNull, ok := r.lookup(field)
	if !ok || isNull {
		return nil
	}
	var f float64
	if json.Unmarshal(raw, &f) != nil {
		r.v.AddError(field, "must be an integer or null")
		return nil
	}
	if f != math.Trunc(f) {
		r.v.AddError(field, "must be an integer or null")
		return nil
	}
	n := int(max(min(f, math.MaxInt32), math.MinInt32))
	before := len(r.v.Errors())
	if len(r.v.Range(field, n, MinDurationMinutes, MaxDurationMinutes).Errors()) > before {
		return nil
	}
	return &n
}

// Summary is a one-line human description, used by the CLI.
func (d *Decision) Summary() string {
	var b strings.Builder
	if d.MeetingWasWorthIt {
		b.WriteString("worth it")
	} else {
		b.WriteString("could have been an email")
	}
	if d.ShouldSchedule {
		b.WriteString("; follow-up recommended")
		if d.SuggestedWhen != nil {
			b.WriteString(" (" + *d.SuggestedWhen + ")")
		}
	} else {
		b.WriteString("; no follow-up")
	}
	return b.String()
}
