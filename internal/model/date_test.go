package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{"valid date", "2025-12-31", Date{2025, time.December, 31}, false},
		{"leap day", "2024-02-29", Date{2024, time.February, 29}, false},
		{"not a leap year", "2025-02-29", Date{}, true},
		{"wrong separator", "2025/12/31", Date{}, true},
		{"day first", "31-12-2025", Date{}, true},
		{"empty", "", Date{}, true},
		{"trailing text", "2025-12-31x", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got, err := ParseDate(tt.input)

			// Assert
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("ParseDate(%q) error = %v, want %v", tt.input, err, ErrInvalidDate)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDate_AddDaysAndBefore(t *testing.T) {
	d := Date{2025, time.March, 1}

	if got := d.AddDays(-1); got != (Date{2025, time.February, 28}) {
		t.Errorf("AddDays(-1) = %s, want 2025-02-28", got)
	}
	if got := d.AddDays(-30).String(); got != "2025-01-30" {
		t.Errorf("AddDays(-30) = %s, want 2025-01-30", got)
	}
	if !d.AddDays(-1).Before(d) {
		t.Error("yesterday should be before today")
	}
	if d.Before(d) {
		t.Error("a date should not be before itself")
	}
}

func TestDateOf_UsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2025, time.March, 10, 23, 30, 0, 0, loc)

	if got := DateOf(ts).String(); got != "2025-03-10" {
		t.Errorf("DateOf() = %s, want 2025-03-10", got)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	// Arrange
	in := struct {
		D Date `json:"d"`
	}{D: Date{2025, time.June, 5}}

	// Act
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}

	var out struct {
		D Date `json:"d"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() unexpected error: %v", err)
	}

	// Assert
	if string(data) != `{"d":"2025-06-05"}` {
		t.Errorf("json = %s, want {\"d\":\"2025-06-05\"}", data)
	}
	if out.D != in.D {
		t.Errorf("round trip = %v, want %v", out.D, in.D)
	}
}
