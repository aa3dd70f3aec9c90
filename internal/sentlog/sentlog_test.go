package sentlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sentlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func TestWasSentAndRecord(t *testing.T) {
	db := openTestDB(t)
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	sent, err := db.WasSent("key-1", "14_days_before", day)
	require.NoError(t, err)
	assert.False(t, sent)

	require.NoError(t, db.Record("key-1", "14_days_before", "Applied NLP", day))

	sent, err = db.WasSent("key-1", "14_days_before", day)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestRecordIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.Record("key-1", "7_days_before", "Applied NLP", day))
	require.NoError(t, db.Record("key-1", "7_days_before", "Applied NLP", day))

	names, err := db.SentOn(day)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestEntriesAreScopedByTypeAndDay(t *testing.T) {
	db := openTestDB(t)
	day := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	nextDay := day.AddDate(0, 0, 1)

	require.NoError(t, db.Record("key-1", "2_days_before", "Applied NLP", day))

	sent, err := db.WasSent("key-1", "1_days_before", day)
	require.NoError(t, err)
	assert.False(t, sent, "a different reminder type must not be deduplicated")

	sent, err = db.WasSent("key-1", "2_days_before", nextDay)
	require.NoError(t, err)
	assert.False(t, sent, "a different day must not be deduplicated")

	sent, err = db.WasSent("key-2", "2_days_before", day)
	require.NoError(t, err)
	assert.False(t, sent, "a different course must not be deduplicated")
}
