package catalog

import (
	"github.com/courseforge/courseplan-go/internal/normalize"
	"github.com/courseforge/courseplan-go/internal/sliceutil"
)

// docAccumulator collects section/topic values for one course while rows
// stream in. Sets deduplicate raw strings; normalized sets may collapse
// distinct raw values to one entry, which is expected.
type docAccumulator struct {
	doc                *CourseDocument
	sections           map[string]struct{}
	topics             map[string]struct{}
	sectionsNormalized map[string]struct{}
	topicsNormalized   map[string]struct{}
}

// Aggregate groups flat catalog rows into deduplicated per-course documents.
// Title and description (and their normalized forms) are taken from the
// first row seen for a course; sections and topics accumulate across rows.
// Output slices are sorted lexically so a fixed input set always produces
// the same documents regardless of row order.
func Aggregate(rows []Row, n *normalize.Normalizer) map[string]*CourseDocument {
	accs := make(map[string]*docAccumulator)

	for _, row := range rows {
		acc, ok := accs[row.CourseID]
		if !ok {
			acc = &docAccumulator{
				doc: &CourseDocument{
					ID:                    row.CourseID,
					Title:                 row.Title,
					Description:           row.Description,
					TitleNormalized:       n.Normalize(row.Title),
					DescriptionNormalized: n.Normalize(row.Description),
				},
				sections:           make(map[string]struct{}),
				topics:             make(map[string]struct{}),
				sectionsNormalized: make(map[string]struct{}),
				topicsNormalized:   make(map[string]struct{}),
			}
			accs[row.CourseID] = acc
		}

		if row.Section != "" {
			acc.sections[row.Section] = struct{}{}
			if s := n.Normalize(row.Section); s != "" {
				acc.sectionsNormalized[s] = struct{}{}
			}
		}
		if row.Topic != "" {
			acc.topics[row.Topic] = struct{}{}
			if t := n.Normalize(row.Topic); t != "" {
				acc.topicsNormalized[t] = struct{}{}
			}
		}
	}

	docs := make(map[string]*CourseDocument, len(accs))
	for id, acc := range accs {
		acc.doc.Sections = sliceutil.SortedKeys(acc.sections)
		acc.doc.Topics = sliceutil.SortedKeys(acc.topics)
		acc.doc.SectionsNormalized = sliceutil.SortedKeys(acc.sectionsNormalized)
		acc.doc.TopicsNormalized = sliceutil.SortedKeys(acc.topicsNormalized)
		docs[id] = acc.doc
	}
	return docs
}
