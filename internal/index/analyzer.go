package index

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Analyzer is the fixed analysis pipeline applied to every text field and
// to incoming queries: tokenize, lowercase, drop language stopwords, stem,
// then drop domain stopwords. The domain set is stemmed at construction so
// inflected forms ("methods", "courses") are excluded too.
type Analyzer struct {
	languageStop map[string]struct{}
	domainStop   map[string]struct{}
}

// NewAnalyzer creates the analyzer with the built-in stopword sets.
func NewAnalyzer() *Analyzer {
	a := &Analyzer{
		languageStop: make(map[string]struct{}, len(englishStopwords)+len(russianStopwords)),
		domainStop:   make(map[string]struct{}, len(domainStopwords)),
	}
	for _, w := range englishStopwords {
		a.languageStop[w] = struct{}{}
	}
	for _, w := range russianStopwords {
		a.languageStop[w] = struct{}{}
	}
	for _, w := range domainStopwords {
		a.domainStop[stem(w)] = struct{}{}
	}
	return a
}

// Analyze maps text to the token stream used for matching and scoring.
// Deterministic for a given input; never fails.
func (a *Analyzer) Analyze(text string) []string {
	raw := tokenize(text)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if _, stop := a.languageStop[token]; stop {
			continue
		}
		stemmed := stem(token)
		if _, stop := a.domainStop[stemmed]; stop {
			continue
		}
		tokens = append(tokens, stemmed)
	}
	return tokens
}

// tokenize lowercases and splits text on everything that is not a letter
// or digit.
func tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// stem reduces a token with the snowball stemmer, routing Cyrillic tokens
// to the Russian stemmer. Unstemmable tokens pass through unchanged.
func stem(token string) string {
	lang := "english"
	for _, r := range token {
		if unicode.Is(unicode.Cyrillic, r) {
			lang = "russian"
			break
		}
	}
	stemmed, err := snowball.Stem(token, lang, false)
	if err != nil || stemmed == "" {
		return token
	}
	return stemmed
}
