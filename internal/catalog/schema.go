package catalog

import "database/sql"

// Schema for the catalog database. course_units carries the one-to-many
// (section, topic) pairs behind the flat row shape the aggregator consumes.
const schema = `
CREATE TABLE IF NOT EXISTS courses (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS course_units (
	course_id TEXT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
	section   TEXT NOT NULL,
	topic     TEXT NOT NULL,
	PRIMARY KEY (course_id, section, topic)
);

CREATE INDEX IF NOT EXISTS idx_course_units_course_id ON course_units(course_id);
`

// initSchema creates the catalog tables if they do not exist.
func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(schema)
	return err
}
