package dto

import (
	"encoding/json"
	"testing"
	"time"
)

func TestOptionalPresence(t *testing.T) {
	type payload struct {
		DueDate Optional[time.Time] `json:"dueDate,omitempty"`
	}

	tests := []struct {
		name      string
		body      string
		wantSet   bool
		wantValid bool
	}{
		{"absent", `{}`, false, false},
		{"explicit_null", `{"dueDate":null}`, true, false},
		{"value", `{"dueDate":"2026-09-01T00:00:00Z"}`, true, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(test.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.DueDate.Set != test.wantSet {
				t.Errorf("Set = %v, want %v", p.DueDate.Set, test.wantSet)
			}
			if p.DueDate.Valid != test.wantValid {
				t.Errorf("Valid = %v, want %v", p.DueDate.Valid, test.wantValid)
			}
		})
	}
}

func TestOptionalValue(t *testing.T) {
	type payload struct {
		Points Optional[int] `json:"points,omitempty"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"points":8}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Points.Set || !p.Points.Valid || p.Points.Value != 8 {
		t.Errorf("points = %+v, want set valid 8", p.Points)
	}
}

func TestOptionalInvalidValue(t *testing.T) {
	type payload struct {
		Points Optional[int] `json:"points,omitempty"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"points":"eight"}`), &p); err == nil {
		t.Fatal("expected error for type mismatch")
	}
}
