package identity

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/campusops/coursebell/internal/domain"
)

// Normalize concatenates the record's identifying fields after cleaning
// each part. It trims whitespace and lowercases name and program so that
// cosmetic workbook edits do not produce a new identity.
func Normalize(rec domain.CourseRecord) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		return p
	}

	end := ""
	if rec.HasEnd {
		end = rec.End.Format(time.DateOnly)
	}

	// Joined with newlines to keep fields separated; "mathsjan" must not
	// collide with "maths"+"jan".
	return strings.Join([]string{
		normalizePart(rec.Name),
		normalizePart(rec.Program),
		rec.Start.Format(time.DateOnly),
		end,
	}, "\n")
}

// Key returns the SHA-256 hash of the normalized record as a hex string.
// It keys the sent log.
func Key(rec domain.CourseRecord) string {
	normalized := Normalize(rec)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}
