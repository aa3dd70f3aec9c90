// Package sentlog persists which reminders have already been sent, so a
// rerun on the same day does not notify anyone twice.
package sentlog

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB wraps the sqlite connection holding the sent-reminder log.
type DB struct {
	conn *sql.DB
}

// Open creates the database connection and ensures the schema exists.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sent log: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to sent log: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply sent log schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// WasSent reports whether a reminder of the given type was already
// recorded for the course on the given day.
func (db *DB) WasSent(courseKey, reminderType string, day time.Time) (bool, error) {
	var n int
	row := db.conn.QueryRow(`
		SELECT COUNT(1) FROM sent_reminders
		WHERE course_key = ? AND reminder_type = ? AND sent_on = ?
	`, courseKey, reminderType, day.Format(time.DateOnly))

	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("failed to query sent log for %s: %w", courseKey, err)
	}
	return n > 0, nil
}

// Record marks a reminder as sent. Recording the same reminder twice is a
// no-op, so a crash between send and record at worst re-sends once.
func (db *DB) Record(courseKey, reminderType, courseName string, day time.Time) error {
	_, err := db.conn.Exec(`
		INSERT OR IGNORE INTO sent_reminders (course_key, reminder_type, sent_on, course_name, sent_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		courseKey,
		reminderType,
		day.Format(time.DateOnly),
		courseName,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record sent reminder for %s: %w", courseKey, err)
	}
	return nil
}

// SentOn lists the course names recorded for a given day, mostly for
// operator spot checks.
func (db *DB) SentOn(day time.Time) ([]string, error) {
	rows, err := db.conn.Query(`
		SELECT course_name FROM sent_reminders
		WHERE sent_on = ?
		ORDER BY sent_at
	`, day.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list sent reminders: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan sent reminder row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
