package suggest

import (
	"context"
	"fmt"
	"sync"

	"github.com/dealhive/dealsearch/internal/fuzzy"
)

// Vocabulary default bounds.
const (
	DefaultVocabDeals     = 1000
	DefaultVocabCompanies = 500
)

// Vocabulary is the process-wide term index used for spell correction
// and popular-search suggestions. It is read-mostly shared state:
// Refresh swaps the whole term set (last writer wins) and staleness
// between refreshes is tolerated.
type Vocabulary struct {
	source       Source
	topDeals     int
	topCompanies int

	mu    sync.RWMutex
	terms map[string]struct{}
}

// NewVocabulary creates an empty vocabulary over a source. Non-positive
// bounds fall back to the defaults.
func NewVocabulary(source Source, topDeals, topCompanies int) *Vocabulary {
	if topDeals <= 0 {
		topDeals = DefaultVocabDeals
	}
	if topCompanies <= 0 {
		topCompanies = DefaultVocabCompanies
	}
	return &Vocabulary{
		source:       source,
		topDeals:     topDeals,
		topCompanies: topCompanies,
		terms:        make(map[string]struct{}),
	}
}

// Refresh rebuilds the term set from the top-viewed deals and a bounded
// company slice. The rebuild is a full, idempotent replacement.
func (v *Vocabulary) Refresh(ctx context.Context) error {
	dealTexts, err := v.source.TopDealTexts(ctx, v.topDeals)
	if err != nil {
		return fmt.Errorf("vocabulary deal scan: %w", err)
	}
	companyTexts, err := v.source.TopCompanyTexts(ctx, v.topCompanies)
	if err != nil {
		return fmt.Errorf("vocabulary company scan: %w", err)
	}

	terms := make(map[string]struct{})
	for _, text := range dealTexts {
		addTerms(terms, text)
	}
	for _, text := range companyTexts {
		addTerms(terms, text)
	}

	v.mu.Lock()
	v.terms = terms
	v.mu.Unlock()
	return nil
}

func addTerms(terms map[string]struct{}, text string) {
	for _, term := range tokenize(text) {
		if validTerm(term) {
			terms[term] = struct{}{}
		}
	}
}

// Size returns the current term count.
func (v *Vocabulary) Size() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.terms)
}

// Contains reports whether a lower-cased term is known.
func (v *Vocabulary) Contains(term string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.terms[term]
	return ok
}

// Correction is a vocabulary term within edit distance of a query word.
type Correction struct {
	Term     string
	Distance int
}

// WithinDistance returns terms within maxDist edits of word, excluding
// exact matches.
func (v *Vocabulary) WithinDistance(word string, maxDist int) []Correction {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []Correction
	for term := range v.terms {
		d := fuzzy.EditDistance(word, term)
		if d > 0 && d <= maxDist {
			out = append(out, Correction{Term: term, Distance: d})
		}
	}
	return out
}

// WithPrefix returns up to limit terms starting with prefix, excluding
// prefix itself.
func (v *Vocabulary) WithPrefix(prefix string, limit int) []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []string
	for term := range v.terms {
		if term == prefix || len(term) < len(prefix) {
			continue
		}
		if term[:len(prefix)] == prefix {
			out = append(out, term)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
