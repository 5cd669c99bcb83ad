// Package company builds company-collection queries.
package company

import (
	"context"
	"fmt"
	"strings"

	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/search/filter"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/sortmode"
	"github.com/dealhive/dealsearch/internal/store"
)

// Repo searches the companies collection.
type Repo struct {
	store store.Store
}

// New creates a company repository.
func New(s store.Store) *Repo {
	return &Repo{store: s}
}

// Search returns one page of matching companies plus the exact total count.
func (r *Repo) Search(ctx context.Context, q *query.Query) ([]entity.Company, int, error) {
	where := buildWhere(q)

	rows, err := r.store.Find(ctx, &store.Query{
		Collection: store.Companies,
		Where:      where,
		OrderBy:    orderings(q.Sort()),
		Offset:     q.Offset(),
		Limit:      q.Limit(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find companies: %w", err)
	}

	total, err := r.store.Count(ctx, store.Companies, where)
	if err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	companies := make([]entity.Company, len(rows))
	for i, rec := range rows {
		companies[i] = entity.Company{
			ID:        rec.Str("id"),
			Name:      rec.Str("name"),
			Slug:      rec.Str("slug"),
			Website:   rec.Str("website"),
			CreatedAt: rec.Time("created_at"),
		}
	}
	return companies, total, nil
}

func buildWhere(q *query.Query) filter.Node {
	text := q.Text()
	if text == "" {
		return nil
	}
	nodes := []filter.Node{filter.ContainsFold("name", text)}
	for _, word := range strings.Fields(text) {
		if len(word) < 2 || word == text {
			continue
		}
		nodes = append(nodes, filter.ContainsFold("name", word))
	}
	return filter.Or(nodes...)
}

// orderings maps a sort mode to company store orderings. Relevance is
// recency plus name; price and discount modes fall back to recency.
func orderings(m sortmode.Mode) []store.Ordering {
	switch m {
	case sortmode.Oldest:
		return []store.Ordering{{Field: "created_at"}}
	case sortmode.Relevance:
		return []store.Ordering{{Field: "created_at", Desc: true}, {Field: "name"}}
	default:
		return []store.Ordering{{Field: "created_at", Desc: true}}
	}
}
