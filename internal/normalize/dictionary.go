package normalize

// irregularForms maps irregular inflections that rule-based stemming
// cannot reduce to the base form of the word. The list covers forms seen
// in course catalog text; it is not a full morphological dictionary.
var irregularForms = map[string]string{
	// Irregular plurals common in academic text
	"analyses":  "analysis",
	"bases":     "basis",
	"criteria":  "criterion",
	"curricula": "curriculum",
	"hypotheses": "hypothesis",
	"indices":   "index",
	"matrices":  "matrix",
	"maxima":    "maximum",
	"media":     "medium",
	"minima":    "minimum",
	"phenomena": "phenomenon",
	"schemata":  "schema",
	"syllabi":   "syllabus",
	"theses":    "thesis",
	"vertices":  "vertex",

	// Irregular verbs
	"taught":  "teach",
	"thought": "think",
	"went":    "go",
	"gone":    "go",
	"written": "write",
	"wrote":   "write",

	// Irregular comparison
	"best":  "good",
	"better": "good",
	"worse": "bad",
	"worst": "bad",

	// Everyday irregular plurals
	"children": "child",
	"feet":     "foot",
	"mice":     "mouse",
	"people":   "person",
}
