package tripbook

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2026-04-01", NewDate(2026, time.April, 1), false},
		{"2026-4-1", NewDate(2026, time.April, 1), false},
		{" 2026-04-01 ", NewDate(2026, time.April, 1), false},
		{"2026-04-01T09:30:00Z", NewDate(2026, time.April, 1), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.April, 1)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2026-04-01"` {
		t.Errorf("Marshal() = %s, want \"2026-04-01\"", data)
	}
	var got Date
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got != d {
		t.Errorf("round trip = %v, want %v", got, d)
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2026, time.April, 30)
	if got := d.Add(1); got != NewDate(2026, time.May, 1) {
		t.Errorf("Add(1) = %v, want 2026-05-01", got)
	}
	if got := NewDate(2026, time.May, 1).Sub(d); got != 1 {
		t.Errorf("Sub() = %d, want 1", got)
	}
}

func TestRange(t *testing.T) {
	r := NewRange(MustParse("2026-04-03"), MustParse("2026-04-01"))
	if r.From != MustParse("2026-04-01") {
		t.Errorf("NewRange must swap reversed bounds, got From=%s", r.From)
	}
	if got := r.Duration(); got != 3 {
		t.Errorf("Duration() = %d, want 3", got)
	}
	if !r.Contains(MustParse("2026-04-02")) || r.Contains(MustParse("2026-04-04")) {
		t.Errorf("Contains() boundaries wrong")
	}

	var days []Date
	for d := range r.Days() {
		days = append(days, d)
	}
	if len(days) != 3 || days[0] != r.From || days[2] != r.To {
		t.Errorf("Days() = %v", days)
	}
}
