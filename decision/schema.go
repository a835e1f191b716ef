package decision

import "github.com/kbukum/meetverdict/llm"

// SchemaName names the structured output format sent to the model.
const SchemaName = "decision"

// Schema returns the JSON schema of a Decision in the strict form
// structured-output providers accept: every property required, nullable
// fields typed as a union with null, no extra properties.
func Schema() *llm.JSONSchema {
	nullableString := map[string]any{"type": []string{"string", "null"}}
	return &llm.JSONSchema{
		Name:   SchemaName,
		Strict: true,
		Schema: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required": []string{
				FieldMeetingWasWorthIt, FieldSassyVerdict,
				FieldShouldSchedule, FieldFirmVerdict,
				FieldConfidence,
				FieldSuggestedTitle, FieldSuggestedWhen,
				FieldSuggestedStartISO, FieldDurationMinutes,
			},
			"properties": map[string]any{
				FieldMeetingWasWorthIt: map[string]any{"type": "boolean"},
				FieldSassyVerdict:      map[string]any{"type": "string", "minLength": 1},
				FieldShouldSchedule:    map[string]any{"type": "boolean"},
				FieldFirmVerdict:       map[string]any{"type": "string", "minLength": 1},
				FieldConfidence:        map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				FieldSuggestedTitle:    nullableString,
				FieldSuggestedWhen:     nullableString,
				FieldSuggestedStartISO: nullableString,
				FieldDurationMinutes: map[string]any{
					"type":    []string{"integer", "null"},
					"minimum": MinDurationMinutes,
					"maximum": MaxDurationMinutes,
				},
			},
		},
	}
}
