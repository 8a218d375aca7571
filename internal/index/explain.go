package index

import "fmt"

// Explanation is the score explanation tree attached to every hit.
// Its shape is engine-specific and consumed only by debug display, so it
// is passed through to callers verbatim rather than typed further.
type Explanation struct {
	Value       float64        `json:"value"`
	Description string         `json:"description"`
	Details     []*Explanation `json:"details,omitempty"`
}

// explainHit builds the explanation tree for one scored document.
func explainHit(base baseMatch, filters []filterMatch, final float64) *Explanation {
	baseNode := &Explanation{
		Value:       base.score,
		Description: fmt.Sprintf("max of weighted field scores, best field %s", base.field),
	}
	for _, c := range base.candidates {
		baseNode.Details = append(baseNode.Details, &Explanation{
			Value:       c.weighted,
			Description: fmt.Sprintf("bm25(%s) = %.4f, weight %.1f", c.field, c.raw, c.weight),
		})
	}

	weightSum := 0.0
	filterNode := &Explanation{Description: "sum of matched filter weights"}
	for _, f := range filters {
		if !f.matched {
			continue
		}
		weightSum += f.weight
		filterNode.Details = append(filterNode.Details, &Explanation{
			Value:       f.weight,
			Description: fmt.Sprintf("match filter on %s", f.field),
		})
	}
	filterNode.Value = weightSum

	return &Explanation{
		Value:       final,
		Description: "function score: base score multiplied by sum of matched filter weights",
		Details:     []*Explanation{baseNode, filterNode},
	}
}
