// Package coupon builds coupon-collection queries: text OR-predicate
// over title/description/code, tag-match union, structured filters,
// and sort orderings.
package coupon

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/search/filter"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/sortmode"
	"github.com/dealhive/dealsearch/internal/logger"
	"github.com/dealhive/dealsearch/internal/repository/tagjoin"
	"github.com/dealhive/dealsearch/internal/store"
)

var searchableFields = []string{"title", "description", "code"}

// Repo searches the coupons collection.
type Repo struct {
	store store.Store
	tags  *tagjoin.Resolver
}

// New creates a coupon repository.
func New(s store.Store) *Repo {
	return &Repo{store: s, tags: tagjoin.New(s, store.CouponTags, "coupon_id")}
}

// Search returns one page of matching coupons plus the exact total count.
func (r *Repo) Search(ctx context.Context, q *query.Query) ([]entity.Coupon, int, error) {
	where := r.buildWhere(ctx, q)

	rows, err := r.store.Find(ctx, &store.Query{
		Collection: store.Coupons,
		Where:      where,
		OrderBy:    orderings(q.Sort()),
		Offset:     q.Offset(),
		Limit:      q.Limit(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("find coupons: %w", err)
	}

	total, err := r.store.Count(ctx, store.Coupons, where)
	if err != nil {
		return nil, 0, fmt.Errorf("count coupons: %w", err)
	}

	coupons := make([]entity.Coupon, len(rows))
	for i, rec := range rows {
		coupons[i] = fromRecord(rec)
	}

	r.enrichTags(ctx, coupons)

	return coupons, total, nil
}

func (r *Repo) buildWhere(ctx context.Context, q *query.Query) filter.Node {
	var clauses []filter.Node

	if text := q.Text(); text != "" {
		var textNodes []filter.Node
		for _, f := range searchableFields {
			textNodes = append(textNodes, filter.ContainsFold(f, text))
		}
		for _, word := range strings.Fields(text) {
			if len(word) < 2 || word == text {
				continue
			}
			for _, f := range searchableFields {
				textNodes = append(textNodes, filter.ContainsFold(f, word))
			}
		}
		textOr := filter.Or(textNodes...)
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
	if q.CouponType() != "" {
		clauses = append(clauses, filter.Eq("coupon_type", q.CouponType()))
	}
	if tags := q.Tags(); len(tags) > 0 {
		if ids := r.tags.IDsForTags(ctx, tags); len(ids) > 0 {
			clauses = append(clauses, filter.InStrings("id", ids))
		} else {
			clauses = append(clauses, filter.Eq("id", ""))
		}
	}

	clauses = append(clauses,
		filter.Between("discount_value", q.MinDiscount(), q.MaxDiscount()),
	)
	if q.Featured() {
		clauses = append(clauses, filter.Eq("featured", true))
	}

	return filter.And(clauses...)
}

func (r *Repo) enrichTags(ctx context.Context, coupons []entity.Coupon) {
	if len(coupons) == 0 {
		return
	}
	ids := make([]string, len(coupons))
	for i, c := range coupons {
		ids[i] = c.ID
	}

	byID, err := r.tags.NamesByRecordID(ctx, ids)
	if err != nil {
		logger.FromContext(ctx).Warn("coupon tag enrichment failed", zap.Error(err))
		return
	}
	for i := range coupons {
		coupons[i].Tags = byID[coupons[i].ID]
	}
}

// orderings maps a sort mode to coupon store orderings. Price modes
// have no coupon equivalent and fall back to recency.
func orderings(m sortmode.Mode) []store.Ordering {
	switch m {
	case sortmode.Newest, sortmode.PriceLow, sortmode.PriceHigh:
		return []store.Ordering{{Field: "created_at", Desc: true}}
	case sortmode.Oldest:
		return []store.Ordering{{Field: "created_at"}}
	case sortmode.Popular:
		return []store.Ordering{{Field: "views_count", Desc: true}}
	case sortmode.Discount:
		return []store.Ordering{{Field: "discount_value", Desc: true}}
	default:
		return []store.Ordering{{Field: "views_count", Desc: true}}
	}
}
