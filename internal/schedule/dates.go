package schedule

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/campusops/coursebell/internal/domain"
)

// dateFormats are tried in order; the first successful parse wins. The
// M/D and D/M layouts are both listed because the workbook sheets are not
// consistent about which convention they use.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	"02/01/2006 15:04:05",
}

// ParseDate parses a workbook cell into a date-only value. When none of
// the known layouts match, a generic inference pass is attempted before
// giving up. Parsing is pure: the same input always yields the same date.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Date(t), true
		}
	}

	if t, err := dateparse.ParseAny(s); err == nil {
		return domain.Date(t), true
	}

	return time.Time{}, false
}
