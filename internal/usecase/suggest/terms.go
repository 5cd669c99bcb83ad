package suggest

import (
	"regexp"
	"strings"
)

// stopWords are excluded from term extraction and suggestion logic.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "has": {},
	"have": {}, "in": {}, "is": {}, "it": {}, "its": {}, "new": {},
	"of": {}, "off": {}, "on": {}, "or": {}, "our": {}, "the": {},
	"this": {}, "to": {}, "was": {}, "will": {}, "with": {}, "you": {},
	"your": {},
}

var validTermRe = regexp.MustCompile(`^[a-zA-Z0-9\s-]+$`)

// validTerm reports whether a lower-cased term may enter the vocabulary
// or a suggestion list.
func validTerm(term string) bool {
	if len(term) < 2 {
		return false
	}
	if _, stop := stopWords[term]; stop {
		return false
	}
	return validTermRe.MatchString(term)
}

var wordSplitRe = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// tokenize splits text into lower-cased candidate terms.
func tokenize(text string) []string {
	parts := wordSplitRe.Split(strings.ToLower(text), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "-")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
