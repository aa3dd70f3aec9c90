// Package schedule normalizes the heterogeneous schedule workbook into a
// flat list of course records.
package schedule

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/campusops/coursebell/internal/domain"
)

// Columns overrides the workbook column names for the fields that vary
// between institutions. Empty fields fall back to the defaults below.
type Columns struct {
	Name  string
	Start string
	End   string
}

const (
	defaultStartColumn = "Start Date"
	defaultEndColumn   = "End Date"
	fallbackName       = "Event"
	fallbackProgram    = "Unknown"
)

// nameColumns is the lookup chain for the course name; the configured
// column, when set, is tried first.
var nameColumns = []string{"Course Name", "Event Name", "Name"}

var programColumns = []string{"Program Name", "Program"}

// Load reads every sheet of the workbook at path and concatenates their
// rows into one ordered record list, tagging each record with its source
// sheet. Rows without a parseable start date are skipped with a warning;
// only a missing or unreadable workbook fails the load.
func Load(path string, cols Columns, log zerolog.Logger) ([]domain.CourseRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	var records []domain.CourseRecord
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			log.Warn().Str("sheet", sheet).Err(err).Msg("skipping unreadable sheet")
			continue
		}
		records = append(records, loadSheet(sheet, rows, cols, log)...)
	}

	log.Info().Int("records", len(records)).Str("workbook", path).Msg("schedule loaded")
	return records, nil
}

func loadSheet(sheet string, rows [][]string, cols Columns, log zerolog.Logger) []domain.CourseRecord {
	if len(rows) < 2 {
		return nil
	}

	header := newHeader(rows[0])
	startCol := firstNonEmpty(cols.Start, defaultStartColumn)
	endCol := firstNonEmpty(cols.End, defaultEndColumn)

	var records []domain.CourseRecord
	for i, row := range rows[1:] {
		name := header.lookup(row, prepend(cols.Name, nameColumns))
		if name == "" {
			name = fallbackName
		}

		start, ok := ParseDate(header.lookup(row, []string{startCol}))
		if !ok {
			log.Warn().Str("sheet", sheet).Int("row", i+2).Str("course", name).
				Msg("no parseable start date, row skipped")
			continue
		}

		rec := domain.CourseRecord{
			Name:        name,
			Program:     fallbackProgram,
			Start:       start,
			Sheet:       sheet,
			Description: header.lookup(row, []string{"Description"}),
		}
		if program := header.lookup(row, programColumns); program != "" {
			rec.Program = program
		}
		if raw := header.lookup(row, []string{endCol}); raw != "" {
			if end, ok := ParseDate(raw); ok {
				rec.End = end
				rec.HasEnd = true
			} else {
				log.Warn().Str("sheet", sheet).Int("row", i+2).Str("course", name).
					Str("value", raw).Msg("unparseable end date, after-end reminders disabled")
			}
		}

		records = append(records, rec)
	}
	return records
}

// header maps case-insensitive trimmed column names to their index.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, cell := range row {
		key := strings.ToLower(strings.TrimSpace(cell))
		if key == "" {
			continue
		}
		if _, exists := h[key]; !exists {
			h[key] = i
		}
	}
	return h
}

// lookup returns the trimmed cell value for the first column name that
// exists in the header and holds a non-empty value for this row.
func (h header) lookup(row []string, names []string) string {
	for _, name := range names {
		idx, ok := h[strings.ToLower(strings.TrimSpace(name))]
		if !ok || idx >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[idx]); v != "" {
			return v
		}
	}
	return ""
}

func prepend(name string, defaults []string) []string {
	if name == "" {
		return defaults
	}
	return append([]string{name}, defaults...)
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
