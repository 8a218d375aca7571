// Package prompt assembles generation prompts from retrieval context and
// pedagogical parameters. A Builder is mutable accumulator state and must
// be owned by exactly one request; it is never shared.
package prompt

import (
	"fmt"

	apperrors "github.com/courseforge/courseplan-go/internal/errors"
)

// Approach selects the reasoning strategy of a generated prompt.
// The set is closed: dispatch is an exhaustive switch and an unknown
// value is a configuration error, never a silent default.
type Approach string

const (
	// ZeroShot asks for the course structure directly.
	ZeroShot Approach = "zero-shot"
	// FewShot prepends stored example structures for the course title.
	FewShot Approach = "few-shot"
	// ChainOfThought instructs staged justification of topic ordering
	// and prerequisite relationships.
	ChainOfThought Approach = "chain-of-thought"
	// TreeOfThought instructs synthesis of convergent themes across many
	// simulated expert course designs.
	TreeOfThought Approach = "tree-of-thought"
)

// ParseApproach validates a wire-level approach string.
// The empty string defaults to ZeroShot.
func ParseApproach(s string) (Approach, error) {
	switch Approach(s) {
	case "":
		return ZeroShot, nil
	case ZeroShot, FewShot, ChainOfThought, TreeOfThought:
		return Approach(s), nil
	default:
		return "", apperrors.NewConfigError("approach",
			fmt.Sprintf("unsupported approach %q", s), apperrors.ErrUnsupportedApproach)
	}
}

// String returns the wire representation of the approach.
func (a Approach) String() string {
	return string(a)
}
