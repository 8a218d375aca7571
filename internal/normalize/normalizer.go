// Package normalize maps raw catalog text to a canonical lemmatized form.
// Matching quality depends on title/description/section/topic variants of
// the same word collapsing to one token, so normalization is deterministic
// and never fails: unknown tokens fall back to their lowercased form.
package normalize

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer reduces words to their morphological base.
// An exception dictionary covers irregular forms; regular morphology is
// handled by snowball stemming with per-token language detection.
type Normalizer struct {
	exceptions map[string]string
	fold       transform.Transformer
}

// New creates a Normalizer with the built-in exception dictionary.
func New() *Normalizer {
	return &Normalizer{
		exceptions: irregularForms,
		// NFD -> strip combining marks -> NFC folds accented variants
		// ("café", "café") to one spelling before stemming.
		fold: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Normalize maps raw text to its canonical lemmatized form.
// Empty input yields empty output. Tokens are split on whitespace,
// lemmatized independently and rejoined with single spaces.
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	words := strings.Fields(text)
	lemmas := make([]string, 0, len(words))
	for _, word := range words {
		if lemma := n.lemma(word); lemma != "" {
			lemmas = append(lemmas, lemma)
		}
	}
	return strings.Join(lemmas, " ")
}

// lemma maps a single token to its base form.
func (n *Normalizer) lemma(word string) string {
	if folded, _, err := transform.String(n.fold, word); err == nil {
		word = folded
	}
	word = strings.ToLower(strings.TrimFunc(word, isPunct))
	if word == "" {
		return ""
	}

	if base, ok := n.exceptions[word]; ok {
		return base
	}

	stemmed, err := snowball.Stem(word, stemLanguage(word), false)
	if err != nil || stemmed == "" {
		// Identity fallback: catalog text is not validated vocabulary.
		return word
	}
	return stemmed
}

// stemLanguage picks the snowball language for a token.
// Catalog text mixes English and Russian; a single Cyrillic rune is enough
// to route the token to the Russian stemmer.
func stemLanguage(word string) string {
	for _, r := range word {
		if unicode.Is(unicode.Cyrillic, r) {
			return "russian"
		}
	}
	return "english"
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
