// Package user builds user-collection queries across handle, display
// name, first/last name, and bio.
package user

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

var searchableFields = []string{"username", "display_name", "first_name", "last_name", "bio"}

// Repo searches the users collection.
type Repo struct {
	store store.Store
}

// New creates a user repository.
func New(s store.Store) *Repo {
	return &Repo{store: s}
}

// Search returns one page of matching users plus the exact total count.
func (r *Repo) Search(ctx context.Context, q *query.Query) ([]entity.User, int, error) {
	where := buildWhere(q)

	rows, err := r.store.Find(ctx, &store.Query{
		Collection: store.Users,
		Where:      where,
		OrderBy:    orderings(q.Sort()),
		Offset:     q.Offset(),
		Limit:      q.Limit(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find users: %w", err)
	}

	total, err := r.store.Count(ctx, store.Users, where)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	users := make([]entity.User, len(rows))
	for i, rec := range rows {
		users[i] = entity.User{
			ID:          rec.Str("id"),
			Handle:      rec.Str("username"),
			DisplayName: rec.Str("display_name"),
			FirstName:   rec.Str("first_name"),
			LastName:    rec.Str("last_name"),
			Bio:         rec.Str("bio"),
			Karma:       rec.Int("karma"),
			CreatedAt:   rec.Time("created_at"),
		}
	}
	return users, total, nil
}

func buildWhere(q *query.Query) filter.Node {
	text := q.Text()
	if text == "" {
		return nil
	}
	var nodes []filter.Node
	for _, f := range searchableFields {
		nodes = append(nodes, filter.ContainsFold(f, text))
	}
	for _, word := range strings.Fields(text) {
		if len(word) < 2 || word == text {
			continue
		}
		for _, f := range searchableFields {
			nodes = append(nodes, filter.ContainsFold(f, word))
		}
	}
	return filter.Or(nodes...)
}

// orderings maps a sort mode to user store orderings. Karma is the
// popularity metric; price and discount modes fall back to recency.
func orderings(m sortmode.Mode) []store.Ordering {
	switch m {
	case sortmode.Newest, sortmode.PriceLow, sortmode.PriceHigh, sortmode.Discount:
		return []store.Ordering{{Field: "created_at", Desc: true}}
	case sortmode.Oldest:
		return []store.Ordering{{Field: "created_at"}}
	default:
		return []store.Ordering{{Field: "karma", Desc: true}}
	}
}
