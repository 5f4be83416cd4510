package models

import (
	"encoding/json"
	"testing"
)

func TestNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		want  float64
		valid bool
	}{
		{"plain number", `123.5`, 123.5, true},
		{"zero is a valid reading", `0`, 0, true},
		{"numeric string", `"2048"`, 2048, true},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"non-numeric string", `"n/a"`, 0, false},
		{"bool", `true`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.json), &n); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if n.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v", n.Valid, tt.valid)
			}
			if tt.valid && n.Value != tt.want {
				t.Errorf("Value = %v, want %v", n.Value, tt.want)
			}
		})
	}
}

func TestNumberAbsentField(t *testing.T) {
	var reading GuildReading
	if err := json.Unmarshal([]byte(`{"name":"Fig"}`), &reading); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if reading.Contribution.Valid {
		t.Error("absent contribution should be invalid")
	}
	if reading.MemberCount.Valid {
		t.Error("absent member count should be invalid")
	}
}

func TestGuildVisibleDefaultsTrue(t *testing.T) {
	var g Guild
	if err := json.Unmarshal([]byte(`{"name":"Crimson"}`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !g.Visible {
		t.Error("guild without a visible field should default to visible")
	}

	if err := json.Unmarshal([]byte(`{"name":"Ghost","visible":false}`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g.Visible {
		t.Error("explicit visible:false should stick")
	}
}
