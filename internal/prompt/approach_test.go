package prompt

import (
	"errors"
	"testing"

	apperrors "github.com/courseforge/courseplan-go/internal/errors"
)

func TestParseApproach(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Approach
		wantErr bool
	}{
		{"Empty defaults to zero-shot", "", ZeroShot, false},
		{"Zero-shot", "zero-shot", ZeroShot, false},
		{"Few-shot", "few-shot", FewShot, false},
		{"Chain of thought", "chain-of-thought", ChainOfThought, false},
		{"Tree of thought", "tree-of-thought", TreeOfThought, false},
		{"Unknown", "socratic", "", true},
		{"Wrong case", "Zero-Shot", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseApproach(tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrUnsupportedApproach) {
					t.Errorf("ParseApproach(%q) err = %v, want ErrUnsupportedApproach", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseApproach(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseApproach(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
