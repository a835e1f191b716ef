package validation

import (
	"strings"
	"testing"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"non-empty", "Yes, it was", false},
		{"empty", "", true},
		{"whitespace only", " \t\n ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := New().Required("sassy_verdict", tc.value)
			if v.HasErrors() != tc.wantErr {
				t.Errorf("HasErrors() = %v, want %v", v.HasErrors(), tc.wantErr)
			}
		})
	}
}

func TestValidatorPresent(t *testing.T) {
	if New().Present("suggested_title", true).HasErrors() {
		t.Error("present key should pass")
	}
	v := New().Present("suggested_title", false)
	fe, ok := v.First()
	if !ok || fe.Field != "suggested_title" || fe.Message != "is missing" {
		t.Errorf("unexpected first error %+v", fe)
	}
}

func TestValidatorRange(t *testing.T) {
	tests := []struct {
		value   int
		wantErr bool
	}{
		{4, true}, {5, false}, {240, false}, {241, true}, {-241, true},
	}
	for _, tc := range tests {
		v := New().Range("duration_minutes", tc.value, 5, 240)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("Range(%d) HasErrors() = %v, want %v", tc.value, v.HasErrors(), tc.wantErr)
		}
	}
}

func TestValidatorRangeFloat(t *testing.T) {
	tests := []struct {
		value   float64
		wantErr bool
	}{
		{-0.1, true}, {0, false}, {0.5, false}, {1, false}, {1.5, true},
	}
	for _, tc := range tests {
		v := New().RangeFloat("confidence", tc.value, 0, 1)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("RangeFloat(%g) HasErrors() = %v, want %v", tc.value, v.HasErrors(), tc.wantErr)
		}
	}
}

func TestValidatorFirstKeepsCheckOrder(t *testing.T) {
	v := New().
		Required("sassy_verdict", "").
		RangeFloat("confidence", 2, 0, 1).
		Required("firm_verdict", "")
	if len(v.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(v.Errors()))
	}
	fe, _ := v.First()
	if fe.Field != "sassy_verdict" {
		t.Errorf("expected first error on sassy_verdict, got %s", fe.Field)
	}
	if _, ok := New().First(); ok {
		t.Error("empty validator should have no first error")
	}
}

func TestStructValidate(t *testing.T) {
	type request struct {
		MeetingURL string `json:"meeting_url" validate:"required,url"`
	}

	if err := Validate(request{MeetingURL: "https://meet.google.com/abc-defg-hij"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	err := Validate(request{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "meeting_url: is required") {
		t.Errorf("expected json field name in error, got %q", err.Error())
	}

	if err := Validate(request{MeetingURL: "not a url"}); err == nil || !strings.Contains(err.Error(), "valid URL") {
		t.Errorf("expected URL error, got %v", err)
	}
}

func TestStructValidateNested(t *testing.T) {
	type section struct {
		BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	}
	type cfg struct {
		Recall section `mapstructure:"recall"`
	}
	err := Validate(cfg{Recall: section{BaseURL: "::"}})
	if err == nil || !strings.Contains(err.Error(), "recall.base_url") {
		t.Errorf("expected nested field path, got %v", err)
	}
}
