package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

// Store wraps the SQLite catalog database connection.
type Store struct {
	conn *sql.DB
	path string
}

// NewStore opens the catalog database and initializes the schema.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	// WAL keeps concurrent readers cheap while fixtures import.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=30000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Ready reports whether the database answers queries.
func (s *Store) Ready(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// CountCourses returns the number of courses in the catalog.
func (s *Store) CountCourses(ctx context.Context) (int, error) {
	var count int
	err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}

// ListRows returns every catalog row in the flat
// (course_id, title, description, section, topic) shape the aggregator
// consumes. Courses without units yield one row with empty section/topic.
func (s *Store) ListRows(ctx context.Context) ([]Row, error) {
	const query = `
		SELECT c.id, c.title, c.description,
		       COALESCE(u.section, ''), COALESCE(u.topic, '')
		FROM courses c
		LEFT JOIN course_units u ON u.course_id = c.id
		ORDER BY c.id, u.section, u.topic`

	rows, err := s.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.CourseID, &r.Title, &r.Description, &r.Section, &r.Topic); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog row iteration failed: %w", err)
	}
	return result, nil
}

// UpsertCourse inserts or replaces a course and its units in one transaction.
func (s *Store) UpsertCourse(ctx context.Context, course FixtureCourse) error {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO courses (id, title, description) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title=excluded.title, description=excluded.description`,
		course.ID, course.Title, course.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert course %s: %w", course.ID, err)
	}

	for _, unit := range course.Units {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO course_units (course_id, section, topic) VALUES (?, ?, ?)`,
			course.ID, unit.Section, unit.Topic)
		if err != nil {
			return fmt.Errorf("failed to insert unit for course %s: %w", course.ID, err)
		}
	}

	return tx.Commit()
}
