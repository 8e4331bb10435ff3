package parser

import (
	"errors"
	"testing"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input   string
		hint    DateFormat
		want    string
		wantErr bool
	}{
		{"2024-03-15", FormatISO, "2024-03-15", false},
		{"2024-03-15", FormatAuto, "2024-03-15", false},
		{"03/15/24", FormatMDYShort, "2024-03-15", false},
		{"03/15/2024", FormatMDY, "2024-03-15", false},
		{"3/5/24", FormatAuto, "2024-03-05", false},
		{"Mar 15, 2024", FormatAuto, "2024-03-15", false},
		{"mar. 15, 2024", FormatAuto, "2024-03-15", false},
		{"MARCH 15 2024", FormatAuto, "2024-03-15", false},
		{"15 Mar 2024", FormatAuto, "2024-03-15", false},
		{"2024-02-30", FormatISO, "", true},
		{"13/45/2024", FormatMDY, "", true},
		{"Mar 15", FormatAuto, "", true}, // no year: grammar-level concern
		{"not a date", FormatAuto, "", true},
		{"", FormatAuto, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input, tt.hint)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				var ude *UnparseableDateError
				if !errors.As(err, &ude) {
					t.Errorf("expected UnparseableDateError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeDateIdempotentOnISO(t *testing.T) {
	first, err := NormalizeDate("2024-03-15", FormatAuto)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NormalizeDate(first, FormatAuto)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Errorf("not idempotent: %q then %q", first, second)
	}
}

func TestDetectYear(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"period line", "Statement period: January 1, 2024 to January 31, 2024", 2024},
		{"printed date", "Issued 2023-12-01\nsome other text", 2023},
		{"no year falls back", "no year anywhere here", 2026},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectYear(tt.text, 2026); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthIndex(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"Jan", true},
		{"jan", true},
		{"Mar.", true},
		{"SEPTEMBER", true},
		{"Sept", true},
		{"Xyz", false},
		{"Ja", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := monthIndex(tt.input)
			if ok != tt.ok {
				t.Errorf("got %v, want %v", ok, tt.ok)
			}
		})
	}
}
