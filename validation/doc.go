// Package validation provides input validation helpers.
//
// Struct tag validation (go-playground/validator) covers request bodies and
// configuration:
//
//	type startRequest struct {
//	    MeetingURL string `json:"meeting_url" validate:"required,url"`
//	}
//	err := validation.Validate(req)
//
// The programmatic Validator records field errors in the order the checks
// run, so callers that must report the first offending field can use First:
//
//	v := validation.New()
//	v.Required("sassy_verdict", d.SassyVerdict).RangeFloat("confidence", d.Confidence, 0, 1)
//	if fe, ok := v.First(); ok { ... }
package validation
