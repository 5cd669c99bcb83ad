// Package category builds category-collection queries.
package category

import (
	"context"
	"fmt"

	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/search/filter"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/sortmode"
	"github.com/dealhive/dealsearch/internal/store"
)

// Repo searches the categories collection.
type Repo struct {
	store store.Store
}

// New creates a category repository.
func New(s store.Store) *Repo {
	return &Repo{store: s}
}

// Search returns one page of matching categories plus the exact total count.
func (r *Repo) Search(ctx context.Context, q *query.Query) ([]entity.Category, int, error) {
	var where filter.Node
	if text := q.Text(); text != "" {
		where = filter.ContainsFold("name", text)
	}

	rows, err := r.store.Find(ctx, &store.Query{
		Collection: store.Categories,
		Where:      where,
		OrderBy:    orderings(q.Sort()),
		Offset:     q.Offset(),
		Limit:      q.Limit(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find categories: %w", err)
	}

	total, err := r.store.Count(ctx, store.Categories, where)
	if err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	categories := make([]entity.Category, len(rows))
	for i, rec := range rows {
		categories[i] = entity.Category{
			ID:        rec.Str("id"),
			Name:      rec.Str("name"),
			Slug:      rec.Str("slug"),
			CreatedAt: rec.Time("created_at"),
		}
	}
	return categories, total, nil
}

func orderings(m sortmode.Mode) []store.Ordering {
	switch m {
	case sortmode.Newest:
		return []store.Ordering{{Field: "created_at", Desc: true}}
	case sortmode.Oldest:
		return []store.Ordering{{Field: "created_at"}}
	default:
		return []store.Ordering{{Field: "name"}}
	}
}
