package schedule

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"ISO date", "2025-03-14", "2025-03-14", true},
		{"US slash date", "03/14/2025", "2025-03-14", true},
		{"day-first slash date", "25/03/2025", "2025-03-25", true},
		{"ISO with timestamp", "2025-03-14 09:30:00", "2025-03-14", true},
		{"US slash with timestamp", "03/14/2025 09:30:00", "2025-03-14", true},
		{"surrounding whitespace", "  2025-03-14  ", "2025-03-14", true},
		{"inferred long form", "March 14, 2025", "2025-03-14", true},
		{"inferred RFC3339", "2025-03-14T09:30:00Z", "2025-03-14", true},
		{"empty cell", "", "", false},
		{"not a date", "TBD", "", false},
		{"garbage", "14th-ish of March-ish", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDate(tc.input)
			if ok != tc.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if !tc.ok {
				return
			}
			if got.Format(time.DateOnly) != tc.expected {
				t.Errorf("ParseDate(%q) = %s, want %s", tc.input, got.Format(time.DateOnly), tc.expected)
			}
			if h, m, s := got.Clock(); h+m+s != 0 {
				t.Errorf("ParseDate(%q) kept a time-of-day component: %v", tc.input, got)
			}
		})
	}
}

func TestParseDateIdempotent(t *testing.T) {
	for _, input := range []string{"2025-03-14", "03/14/2025", "March 14, 2025"} {
		first, ok1 := ParseDate(input)
		second, ok2 := ParseDate(input)
		if ok1 != ok2 || !first.Equal(second) {
			t.Errorf("ParseDate(%q) is not idempotent: %v/%v vs %v/%v", input, first, ok1, second, ok2)
		}
	}
}
