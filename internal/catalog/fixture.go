package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FixtureUnit is one (section, topic) pair of a fixture course.
type FixtureUnit struct {
	Section string `json:"section"`
	Topic   string `json:"topic"`
}

// FixtureCourse is one course entry of a catalog fixture file.
type FixtureCourse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Units       []FixtureUnit `json:"units"`
}

// Fixture is the JSON shape of a catalog seed file.
type Fixture struct {
	Courses []FixtureCourse `json:"courses"`
}

// LoadFixture reads and parses a catalog fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &fixture, nil
}

// ImportFixture loads a fixture file and upserts its courses into the store.
// Returns the number of courses imported.
func (s *Store) ImportFixture(ctx context.Context, path string) (int, error) {
	fixture, err := LoadFixture(path)
	if err != nil {
		return 0, err
	}
	for _, course := range fixture.Courses {
		if course.ID == "" {
			return 0, fmt.Errorf("fixture course with empty id (title=%q)", course.Title)
		}
		if err := s.UpsertCourse(ctx, course); err != nil {
			return 0, err
		}
	}
	return len(fixture.Courses), nil
}
