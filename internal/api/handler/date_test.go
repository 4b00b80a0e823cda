package handler

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestJSONDate(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-03-01"`, march},
		{`"2024-03-01T00:00:00Z"`, march},
		{`"2024-03-01T02:00:00+02:00"`, march},
		{`"2024-03-01T00:00:00"`, march},
		{`1709251200000`, march},
		{`"1709251200000"`, march},
	}
	for _, tt := range tests {
		var d jsonDate
		if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		if !d.Time.Equal(tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.in, tt.want, d.Time)
		}
		if d.Time.Location() != time.UTC {
			t.Fatalf("%s: expected UTC, got %v", tt.in, d.Time.Location())
		}
	}
}

func TestJSONDate_Invalid(t *testing.T) {
	for _, in := range []string{`"tomorrow"`, `true`, `{}`, `"2024-13-01"`, `1.5`} {
		var d jsonDate
		if err := json.Unmarshal([]byte(in), &d); !errors.Is(err, errInvalidDate) {
			t.Fatalf("%s: expected errInvalidDate, got %v", in, err)
		}
	}
}
