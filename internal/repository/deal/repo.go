// Package deal builds deal-collection queries: the text OR-predicate,
// tag-match union, structured and geo filters, sort orderings, and the
// page window. Rows map to entity.Deal at this boundary.
package deal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/geo"
	"github.com/dealhive/dealsearch/internal/domain/search/filter"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/sortmode"
	"github.com/dealhive/dealsearch/internal/logger"
	"github.com/dealhive/dealsearch/internal/repository/tagjoin"
	"github.com/dealhive/dealsearch/internal/store"
)

var searchableFields = []string{"title", "description", "merchant"}

// Repo searches the deals collection.
type Repo struct {
	store store.Store
	tags  *tagjoin.Resolver
}

// New creates a deal repository.
func New(s store.Store) *Repo {
	return &Repo{store: s, tags: tagjoin.New(s, store.DealTags, "deal_id")}
}

// Search returns one page of matching deals plus the exact total count.
func (r *Repo) Search(ctx context.Context, q *query.Query) ([]entity.Deal, int, error) {
	where := r.buildWhere(ctx, q)

	rows, err := r.store.Find(ctx, &store.Query{
		Collection: store.Deals,
		Where:      where,
		OrderBy:    orderings(q.Sort()),
		Offset:     q.Offset(),
		Limit:      q.Limit(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find deals: %w", err)
	}

	total, err := r.store.Count(ctx, store.Deals, where)
	if err != nil {
		return nil, 0, fmt.Errorf("count deals: %w", err)
	}

	deals := make([]entity.Deal, len(rows))
	for i, rec := range rows {
		deals[i] = fromRecord(rec)
	}

	r.enrichTags(ctx, deals)

	return deals, total, nil
}

// buildWhere assembles the predicate tree for one search.
func (r *Repo) buildWhere(ctx context.Context, q *query.Query) filter.Node {
	var clauses []filter.Node

	if text := q.Text(); text != "" {
		textOr := textPredicate(text, searchableFields)
		// Tag matches union with the text predicate rather than
		// intersecting: a deal tagged "laptop" matches "laptop" even
		// when its title doesn't.
		if ids := r.tags.MatchIDs(ctx, text); len(ids) > 0 {
			textOr = filter.Or(textOr, filter.InStrings("id", ids))
		}
		clauses = append(clauses, textOr)
	}

	if q.Category() != "" {
		clauses = append(clauses, filter.Eq("category_id", q.Category()))
	}
	if q.Company() != "" {
		clauses = append(clauses, filter.Eq("company_id", q.Company()))
	}
	if tags := q.Tags(); len(tags) > 0 {
		if ids := r.tags.IDsForTags(ctx, tags); len(ids) > 0 {
			clauses = append(clauses, filter.InStrings("id", ids))
		} else {
			// Tag filter named no known tags: match nothing.
			clauses = append(clauses, filter.Eq("id", ""))
		}
	}

	clauses = append(clauses,
		filter.Between("price", q.MinPrice(), q.MaxPrice()),
		filter.Between("discount_percentage", q.MinDiscount(), q.MaxDiscount()),
	)
	if q.HasCoupon() {
		clauses = append(clauses, filter.Eq("has_coupon", true))
	}
	if q.Featured() {
		clauses = append(clauses, filter.Eq("featured", true))
	}

	if q.HasGeo() {
		box := geo.BoundingBox(*q.Latitude(), *q.Longitude(), q.RadiusKm())
		inBox := filter.And(
			filter.Between("latitude", &box.LatMin, &box.LatMax),
			filter.Between("longitude", &box.LonMin, &box.LonMax),
		)
		// Deals with no location are global/online and always included.
		clauses = append(clauses, filter.Or(inBox, filter.IsNull("latitude")))
	}

	return filter.And(clauses...)
}

// enrichTags attaches tag names via two batched lookups. Any failure
// degrades to empty tag lists rather than failing the search.
func (r *Repo) enrichTags(ctx context.Context, deals []entity.Deal) {
	if len(deals) == 0 {
		return
	}
	ids := make([]string, len(deals))
	for i, d := range deals {
		ids[i] = d.ID
	}

	byID, err := r.tags.NamesByRecordID(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Warn("deal tag enrichment failed", zap.Error(err))
		return
	}
	for i := range deals {
		deals[i].Tags = byID[deals[i].ID]
	}
}

// textPredicate builds the OR of whole-query and per-word substring
// conditions across the searchable fields.
func textPredicate(text string, fields []string) filter.Node {
	var nodes []filter.Node
	for _, f := range fields {
		nodes = append(nodes, filter.ContainsFold(f, text))
	}
	for _, word := range strings.Fields(text) {
		if len(word) < 2 || word == text {
			continue
		}
		for _, f := range fields {
			nodes = append(nodes, filter.ContainsFold(f, word))
		}
	}
	return filter.Or(nodes...)
}

// orderings maps a sort mode to deal store orderings. Relevance uses
// views as a cheap popularity proxy; fuzzy re-ranking refines the page
// afterwards.
func orderings(m sortmode.Mode) []store.Ordering {
	switch m {
	case sortmode.Newest:
		return []store.Ordering{{Field: "created_at", Desc: true}}
	case sortmode.Oldest:
		return []store.Ordering{{Field: "created_at"}}
	case sortmode.Popular:
		return []store.Ordering{{Field: "views_count", Desc: true}}
	case sortmode.PriceLow:
		return []store.Ordering{{Field: "price"}}
	case sortmode.PriceHigh:
		return []store.Ordering{{Field: "price", Desc: true}}
	case sortmode.Discount:
		return []store.Ordering{{Field: "discount_percentage", Desc: true}}
	default:
		return []store.Ordering{{Field: "views_count", Desc: true}}
	}
}
