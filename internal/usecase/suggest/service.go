// Package suggest generates auto-complete, spell-correction, related,
// popular, and category suggestions for a search query, backed by a
// periodically rebuilt vocabulary index.
package suggest

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/cache"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/domain/suggestion"
	"github.com/dealhive/dealsearch/internal/fuzzy"
	"github.com/dealhive/dealsearch/internal/logger"
)

// Suggestion limits.
const (
	// MaxSuggestions caps the merged suggestion list.
	MaxSuggestions = 10
	// MinQueryLength gates suggestion generation entirely.
	MinQueryLength = 2

	maxEditDistance   = 2
	minCorrectionWord = 3
	perSourceLimit    = MaxSuggestions
)

// Auto-complete scores by source, strongest first.
const (
	scoreTag        = 12
	scoreDealTitle  = 10
	scoreCompany    = 9
	scoreMerchant   = 8
	scoreUserHandle = 7
	scoreUserName   = 6
	scorePopular    = 6
	scoreCategory   = 5
	scoreRelated    = 4
	scoreRelatedCo  = 3
)

// Service generates suggestions. The auto-complete sub-cache is keyed
// by exact query text.
type Service struct {
	src          Source
	vocab        *Vocabulary
	autocomplete *cache.Memory[[]suggestion.Suggestion]
}

// New creates a suggestion service. A nil clock uses time.Now.
func New(src Source, vocab *Vocabulary, clock cache.Clock) *Service {
	return &Service{
		src:          src,
		vocab:        vocab,
		autocomplete: cache.NewMemory[[]suggestion.Suggestion](cache.SuggestionTTL, clock),
	}
}

// Vocabulary exposes the underlying index for refresh scheduling.
func (s *Service) Vocabulary() *Vocabulary { return s.vocab }

// Generate produces up to MaxSuggestions suggestions for a query and
// its current result set. Short queries produce none. Every source
// recovers locally: a failed lookup just contributes nothing.
func (s *Service) Generate(ctx context.Context, q *query.Query, res *result.SearchResult) []suggestion.Suggestion {
	text := q.Text()
	if len(text) < MinQueryLength {
		return nil
	}

	var all []suggestion.Suggestion
	all = append(all, s.autoComplete(ctx, text)...)
	all = append(all, s.spellCorrections(text)...)
	all = append(all, relatedTerms(text, res)...)
	all = append(all, s.popular(text)...)
	all = append(all, s.categories(ctx, text)...)

	return finalize(all, text)
}

// autoComplete runs the prefix lookups, caching the merged list per
// exact query string.
func (s *Service) autoComplete(ctx context.Context, text string) []suggestion.Suggestion {
	if cached, ok := s.autocomplete.Get(text); ok {
		return cached
	}

	log := logger.FromContext(ctx)
	var out []suggestion.Suggestion

	collect := func(
		lookup func(context.Context, string, int) ([]string, error),
		typ suggestion.Type, source string, score float64,
	) {
		values, err := lookup(ctx, text, perSourceLimit)
		if err != nil {
			log.Warn("autocomplete lookup failed",
				zap.String("type", string(typ)), zap.Error(err))
			return
		}
		for _, v := range values {
			out = append(out, suggestion.Suggestion{
				Text: v, Type: typ, Source: source, Score: score,
			})
		}
	}

	collect(s.src.TagNames, suggestion.Tag, "tags", scoreTag)
	collect(s.src.DealTitles, suggestion.DealTitle, "deals", scoreDealTitle)
	collect(s.src.CompanyNames, suggestion.Company, "companies", scoreCompany)
	collect(s.src.Merchants, suggestion.Merchant, "deals", scoreMerchant)
	collect(s.src.UserHandles, suggestion.UserHandle, "users", scoreUserHandle)
	collect(s.src.UserDisplayNames, suggestion.UserName, "users", scoreUserName)

	s.autocomplete.Set(text, out)
	return out
}

// spellCorrections proposes vocabulary terms within two edits of each
// query word, embedding the fully corrected query in the payload.
func (s *Service) spellCorrections(text string) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	lower := strings.ToLower(text)

	for _, word := range strings.Fields(lower) {
		if len(word) < minCorrectionWord {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			continue
		}
		for _, c := range s.vocab.WithinDistance(word, maxEditDistance) {
			out = append(out, suggestion.Suggestion{
				Text:   c.Term,
				Type:   suggestion.SpellCorrection,
				Source: "vocabulary",
				Score:  float64(5 - c.Distance),
				Extra: map[string]string{
					"corrected_query": re.ReplaceAllString(lower, c.Term),
				},
			})
		}
	}
	return out
}

// relatedTerms extracts fresh terms from the current result set: deal
// titles contribute words longer than 3 chars, company names words
// longer than 2, both minus stop words and words already in the query.
func relatedTerms(text string, res *result.SearchResult) []suggestion.Suggestion {
	if res == nil {
		return nil
	}

	queryWords := make(map[string]struct{})
	for _, w := range tokenize(text) {
		queryWords[w] = struct{}{}
	}

	var out []suggestion.Suggestion
	emit := func(raw string, minLen int, typ suggestion.Type, score float64) {
		for _, term := range tokenize(raw) {
			if len(term) <= minLen || !validTerm(term) {
				continue
			}
			if _, inQuery := queryWords[term]; inQuery {
				continue
			}
			out = append(out, suggestion.Suggestion{
				Text: term, Type: typ, Source: "results", Score: score,
			})
		}
	}

	for _, d := range res.Deals {
		emit(d.Title, 3, suggestion.RelatedTerm, scoreRelated)
	}
	for _, c := range res.Companies {
		emit(c.Name, 2, suggestion.RelatedCompany, scoreRelatedCo)
	}
	return out
}

// popular surfaces vocabulary terms extending the query.
func (s *Service) popular(text string) []suggestion.Suggestion {
	var out []suggestion.Suggestion
	for _, term := range s.vocab.WithPrefix(strings.ToLower(text), perSourceLimit) {
		out = append(out, suggestion.Suggestion{
			Text: term, Type: suggestion.PopularSearch, Source: "vocabulary", Score: scorePopular,
		})
	}
	return out
}

// categories matches category names by substring, not prefix.
func (s *Service) categories(ctx context.Context, text string) []suggestion.Suggestion {
	names, err := s.src.CategoryNames(ctx, text, perSourceLimit)
	if err != nil {
		logger.FromContext(ctx).Warn("category suggestion lookup failed", zap.Error(err))
		return nil
	}
	var out []suggestion.Suggestion
	for _, n := range names {
		out = append(out, suggestion.Suggestion{
			Text: n, Type: suggestion.Category, Source: "categories", Score: scoreCategory,
		})
	}
	return out
}

// finalize de-duplicates by lower-cased text (first occurrence wins),
// orders by score desc, edit distance to the query asc, then text
// length asc, and caps the list.
func finalize(all []suggestion.Suggestion, text string) []suggestion.Suggestion {
	lower := strings.ToLower(text)

	seen := make(map[string]struct{}, len(all))
	deduped := make([]suggestion.Suggestion, 0, len(all))
	for _, sg := range all {
		key := strings.ToLower(sg.Text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, sg)
	}

	dist := make(map[string]int, len(deduped))
	for _, sg := range deduped {
		dist[sg.Text] = fuzzy.EditDistance(lower, strings.ToLower(sg.Text))
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if dist[a.Text] != dist[b.Text] {
			return dist[a.Text] < dist[b.Text]
		}
		if len(a.Text) != len(b.Text) {
			return len(a.Text) < len(b.Text)
		}
		return a.Text < b.Text
	})

	if len(deduped) > MaxSuggestions {
		deduped = deduped[:MaxSuggestions]
	}
	return deduped
}
