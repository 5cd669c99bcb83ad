// Package fuzzy scores free-text relevance between a query and candidate
// strings, and re-ranks result pages beyond the substring filtering the
// record store provides. All functions are pure.
package fuzzy

import (
	"regexp"
	"sort"
	"strings"
)

// Scoring weights. The composite score is roughly 0..2 for strong
// matches; DefaultThreshold is advisory (see FilterAndRank).
const (
	exactBonus        = 1.0
	prefixBonus       = 0.8
	containsBonus     = 0.6
	wordBoundaryBonus = 0.1
	camelBonus        = 0.2
	consecutiveBonus  = 0.05
	fuzzyBonus        = 0.3

	// DefaultThreshold is the advisory minimum average score.
	DefaultThreshold = 0.3
)

// Score rates how well text matches query, weighted by fieldWeight.
// The composite combines exact/prefix/substring containment, per-word
// boundary hits, a camel-case signature check, greedy consecutive
// character alignment, and normalized edit distance, then subtracts a
// length penalty so shorter candidates win ties. Never negative.
func Score(query, text string, fieldWeight float64) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(text)
	if q == "" || t == "" {
		return 0
	}

	var score float64

	if q == t {
		score += exactBonus
	}
	if strings.HasPrefix(t, q) {
		score += prefixBonus
	}
	if strings.Contains(t, q) {
		score += containsBonus
	}

	score += wordBoundaryScore(q, t)
	score += camelScore(q, text)
	score += consecutiveScore(q, t)

	maxLen := len(q)
	if len(t) > maxLen {
		maxLen = len(t)
	}
	dist := EditDistance(q, t)
	score += (1 - float64(dist)/float64(maxLen)) * fuzzyBonus

	score *= fieldWeight

	if penalty := float64(len(t)-len(q)) / 100; penalty > 0 {
		score -= penalty
	}
	if score < 0 {
		return 0
	}
	return score
}

// wordBoundaryScore counts whole-word occurrences of every query word
// (2+ chars) in the candidate.
func wordBoundaryScore(q, t string) float64 {
	var score float64
	for _, word := range strings.Fields(q) {
		if len(word) < 2 {
			continue
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
		if err != nil {
			continue
		}
		score += float64(len(re.FindAllString(t, -1))) * wordBoundaryBonus
	}
	return score
}

// camelScore extracts the capital-letter signature of the original text
// (e.g. "PlayStation Portal" -> "pp") and rewards a substring relation
// with the query in either direction.
func camelScore(q, text string) float64 {
	var sig []rune
	for _, r := range text {
		if r >= 'A' && r <= 'Z' {
			sig = append(sig, r+('a'-'A'))
		}
	}
	if len(sig) < 2 {
		return 0
	}
	s := string(sig)
	if strings.Contains(s, q) || strings.Contains(q, s) {
		return camelBonus
	}
	return 0
}

// consecutiveScore walks the candidate left to right, advancing a cursor
// into the query whenever characters match. Each uninterrupted run of
// matches contributes its length times the bonus.
func consecutiveScore(q, t string) float64 {
	var score float64
	cursor, run := 0, 0
	for i := 0; i < len(t); i++ {
		if cursor < len(q) && t[i] == q[cursor] {
			run++
			cursor++
			continue
		}
		score += float64(run) * consecutiveBonus
		run = 0
	}
	score += float64(run) * consecutiveBonus
	return score
}

// EditDistance computes the Levenshtein distance between two strings
// with unit-cost substitutions, insertions, and deletions.
func EditDistance(a, b string) int {
	m, n := len(a), len(b)
	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}
	return d[m][n]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// Field describes one searchable field of a candidate: how to read its
// text and how heavily a match there counts.
type Field[T any] struct {
	Get    func(T) string
	Weight float64
}

// scored decorates a candidate while ranking; the decoration never
// leaves this package.
type scored[T any] struct {
	item       T
	score      float64
	matchCount int
	popularity float64
}

// FilterAndRank scores each item as the average of its non-zero field
// scores (unmatched fields are skipped, not counted as zero). Items are
// kept when the average clears the threshold or when any field matched
// at all, so a weak-but-real match is never dropped. Ordering is score
// desc, then match count desc, then popularity desc.
func FilterAndRank[T any](
	items []T, queryText string,
	fields []Field[T], popularity func(T) float64,
	threshold float64,
) []T {
	if strings.TrimSpace(queryText) == "" {
		return items
	}

	kept := make([]scored[T], 0, len(items))
	for _, item := range items {
		var sum float64
		var matches int
		for _, f := range fields {
			if s := Score(queryText, f.Get(item), f.Weight); s > 0 {
				sum += s
				matches++
			}
		}
		var avg float64
		if matches > 0 {
			avg = sum / float64(matches)
		}
		if avg >= threshold || matches > 0 {
			kept = append(kept, scored[T]{
				item:       item,
				score:      avg,
				matchCount: matches,
				popularity: popularity(item),
			})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		if kept[i].matchCount != kept[j].matchCount {
			return kept[i].matchCount > kept[j].matchCount
		}
		return kept[i].popularity > kept[j].popularity
	})

	out := make([]T, len(kept))
	for i, s := range kept {
		out[i] = s.item
	}
	return out
}
