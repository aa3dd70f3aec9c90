package identity

import (
	"testing"
	"time"

	"github.com/campusops/coursebell/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	rec := domain.CourseRecord{
		Name:    "  Intro to NLP \r\n",
		Program: "NLP",
		Start:   date(2025, time.March, 3),
		End:     date(2025, time.March, 7),
		HasEnd:  true,
	}
	expected := "intro to nlp\nnlp\n2025-03-03\n2025-03-07"
	if got := Normalize(rec); got != expected {
		t.Errorf("Expected normalized string %q, but got %q", expected, got)
	}
}

func TestKey(t *testing.T) {
	t.Run("key is deterministic", func(t *testing.T) {
		rec1 := domain.CourseRecord{Name: "Data Wrangling", Start: date(2025, time.May, 1)}
		rec2 := domain.CourseRecord{Name: "Data Wrangling", Start: date(2025, time.May, 1)}
		if Key(rec1) != Key(rec2) {
			t.Error("Expected keys for identical records to be the same")
		}
	})

	t.Run("normalization produces same key", func(t *testing.T) {
		rec1 := domain.CourseRecord{Name: "  data wrangling ", Start: date(2025, time.May, 1)}
		rec2 := domain.CourseRecord{Name: "Data Wrangling", Start: date(2025, time.May, 1)}
		if Key(rec1) != Key(rec2) {
			t.Error("Expected keys to be the same after normalization, but they were different")
		}
	})

	t.Run("different records have different keys", func(t *testing.T) {
		rec1 := domain.CourseRecord{Name: "Data Wrangling", Start: date(2025, time.May, 1)}
		rec2 := domain.CourseRecord{Name: "Data Wrangling", Start: date(2025, time.May, 8)}
		if Key(rec1) == Key(rec2) {
			t.Error("Expected keys for different records to be different")
		}
	})

	t.Run("missing end date changes the key", func(t *testing.T) {
		rec1 := domain.CourseRecord{Name: "Capstone", Start: date(2025, time.May, 1)}
		rec2 := rec1
		rec2.End = date(2025, time.May, 9)
		rec2.HasEnd = true
		if Key(rec1) == Key(rec2) {
			t.Error("Expected key to differ when an end date is present")
		}
	})
}
