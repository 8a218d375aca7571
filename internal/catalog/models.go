// Package catalog provides the course catalog: the relational source of
// truth for course rows and their aggregation into per-course documents
// ready for indexing.
package catalog

// Row is a flat catalog row as produced by the relational join of a
// course with its sections and topics. A course-level row repeats once
// per (section, topic) pair.
type Row struct {
	CourseID    string
	Title       string
	Description string
	Section     string
	Topic       string
}

// CourseDocument is a deduplicated per-course document carrying both raw
// and normalized field variants. Raw fields are returned to callers;
// normalized fields exist for matching only.
//
// Documents are created during index build and immutable afterward until
// the next full rebuild.
type CourseDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Sections    []string `json:"sections"`
	Topics      []string `json:"topics"`

	TitleNormalized       string   `json:"title_normalized"`
	DescriptionNormalized string   `json:"description_normalized"`
	SectionsNormalized    []string `json:"sections_normalized"`
	TopicsNormalized      []string `json:"topics_normalized"`
}
