package ingest

import (
	"regexp"
	"strings"
)

// Tagger matches a fixed vocabulary of domain terms against paper text.
// Matching is case-insensitive, whole-word, with an optional trailing "s"
// so "pions" still matches the "pion" term.
type Tagger struct {
	terms    []string
	patterns []*regexp.Regexp
}

func NewTagger(vocabulary []string) *Tagger {
	t := &Tagger{}
	for _, term := range vocabulary {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		t.terms = append(t.terms, term)
		t.patterns = append(t.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`s?\b`))
	}
	return t
}

// Match returns every vocabulary term found in the concatenation of title
// and abstract, in vocabulary order.
func (t *Tagger) Match(title, abstract string) []string {
	text := title + " " + abstract
	var found []string
	for i, pattern := range t.patterns {
		if pattern.MatchString(text) {
			found = append(found, t.terms[i])
		}
	}
	return found
}

// ContainsAny reports whether text contains at least one of the given terms
// as a case-insensitive substring. Used for the coarse journal relevance
// filter, which deliberately does not require word boundaries.
func ContainsAny(text string, terms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
