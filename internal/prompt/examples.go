package prompt

import (
	"encoding/json"
	"fmt"
	"os"
)

// ExampleStore maps course titles to ordered example-prompt strings for
// few-shot construction. Loaded once at startup, read-only afterward, so
// it is safe for concurrent use without locking.
type ExampleStore struct {
	examples map[string][]string
}

// NewExampleStore creates a store from an in-memory mapping.
func NewExampleStore(examples map[string][]string) *ExampleStore {
	if examples == nil {
		examples = map[string][]string{}
	}
	return &ExampleStore{examples: examples}
}

// LoadExampleStore reads a JSON file mapping course title to example list.
// An empty path yields an empty store.
func LoadExampleStore(path string) (*ExampleStore, error) {
	if path == "" {
		return NewExampleStore(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read example store %s: %w", path, err)
	}
	var examples map[string][]string
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to parse example store %s: %w", path, err)
	}
	return NewExampleStore(examples), nil
}

// Examples returns the example strings for a title, in stored order.
// Unknown titles yield nil, which few-shot construction treats as
// "no examples available", not an error.
func (s *ExampleStore) Examples(title string) []string {
	if s == nil {
		return nil
	}
	return s.examples[title]
}

// Len returns the number of titles in the store.
func (s *ExampleStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.examples)
}
