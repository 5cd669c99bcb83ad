// Package memory implements the record-store contract in process. It
// backs local runs (seeded from JSON fixtures) and tests; production
// deployments substitute any adapter satisfying store.Store.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dealhive/dealsearch/internal/domain"
	"github.com/dealhive/dealsearch/internal/domain/search/filter"
	"github.com/dealhive/dealsearch/internal/store"
)

// Store is an in-memory record store with predicate evaluation,
// multi-key ordering, pagination, and exact counts.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]store.Record
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string][]store.Record)}
}

// Load replaces a collection's records.
func (s *Store) Load(collection string, records []store.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = records
}

// LoadFixtures reads a JSON file of the form
// {"deals": [{...}, ...], "tags": [...]} and loads every collection.
func (s *Store) LoadFixtures(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read fixtures %s: %w", path, err)
	}

	var raw map[string][]store.Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse fixtures %s: %w", path, err)
	}

	for collection, records := range raw {
		s.Load(collection, records)
	}
	return nil
}

// Find returns records matching q.Where, ordered and windowed.
func (s *Store) Find(_ context.Context, q *store.Query) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.collections[q.Collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCollection, q.Collection)
	}

	matched := make([]store.Record, 0, len(records))
	for _, rec := range records {
		if eval(q.Where, rec) {
			matched = append(matched, rec)
		}
	}

	if len(q.OrderBy) > 0 {
		orderings := q.OrderBy
		sort.SliceStable(matched, func(i, j int) bool {
			for _, o := range orderings {
				c := compare(matched[i][o.Field], matched[j][o.Field])
				if c == 0 {
					continue
				}
				if o.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if q.Offset >= len(matched) {
		return []store.Record{}, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// Count returns the exact number of records matching where,
// independent of any pagination window.
func (s *Store) Count(_ context.Context, collection string, where filter.Node) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.collections[collection]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownCollection, collection)
	}

	n := 0
	for _, rec := range records {
		if eval(where, rec) {
			n++
		}
	}
	return n, nil
}

// eval interprets a predicate tree against one record. A nil node
// matches everything.
func eval(node filter.Node, rec store.Record) bool {
	switch n := node.(type) {
	case nil:
		return true
	case filter.AndNode:
		for _, child := range n.Children() {
			if !eval(child, rec) {
				return false
			}
		}
		return true
	case filter.OrNode:
		for _, child := range n.Children() {
			if eval(child, rec) {
				return true
			}
		}
		return false
	case filter.NotNode:
		return !eval(n.Child(), rec)
	case filter.EqNode:
		return equal(rec[n.Field()], n.Value())
	case filter.ContainsNode:
		s, ok := rec[n.Field()].(string)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(n.Substr()))
	case filter.PrefixNode:
		s, ok := rec[n.Field()].(string)
		if !ok {
			return false
		}
		return strings.HasPrefix(strings.ToLower(s), strings.ToLower(n.Prefix()))
	case filter.InNode:
		for _, v := range n.Values() {
			if equal(rec[n.Field()], v) {
				return true
			}
		}
		return false
	case filter.BetweenNode:
		f, ok := store.Numeric(rec[n.Field()])
		if !ok {
			return false
		}
		if min := n.Min(); min != nil && f < *min {
			return false
		}
		if max := n.Max(); max != nil && f > *max {
			return false
		}
		return true
	case filter.IsNullNode:
		v, ok := rec[n.Field()]
		return !ok || v == nil
	}
	return false
}

// equal compares loosely: numerics compare as float64, everything else
// by Go equality. JSON rows carry float64 where fixtures may carry int.
func equal(a, b any) bool {
	if fa, ok := store.Numeric(a); ok {
		if fb, ok := store.Numeric(b); ok {
			return fa == fb
		}
	}
	return a == b
}

// compare orders two field values: numerics numerically, timestamps
// chronologically, strings lexicographically (case-insensitive).
// Absent values sort first.
func compare(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			}
			return 0
		}
	}

	if fa, ok := store.Numeric(a); ok {
		if fb, ok := store.Numeric(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}

	sa, aok := a.(string)
	sb, bok := b.(string)
	if aok && bok {
		return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
