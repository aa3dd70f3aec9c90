package sentlog

const schema = `
-- One row per delivered reminder. The primary key makes a reminder
-- at-most-once per course, reminder type and calendar day.
CREATE TABLE IF NOT EXISTS sent_reminders (
    course_key    TEXT NOT NULL,
    reminder_type TEXT NOT NULL,
    sent_on       TEXT NOT NULL, -- trigger date, YYYY-MM-DD
    course_name   TEXT NOT NULL,
    sent_at       DATETIME NOT NULL,

    PRIMARY KEY (course_key, reminder_type, sent_on)
);
`
