package search

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dealhive/dealsearch/internal/domain/search/kind"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/logger"
	"github.com/dealhive/dealsearch/internal/metrics"
)

// Dispatcher fans a query out to the per-entity searchers and collects
// the pages into one composite result. A failed branch degrades to an
// empty set; it never fails the whole search.
type Dispatcher struct {
	deals      DealSearcher
	coupons    CouponSearcher
	companies  CompanySearcher
	users      UserSearcher
	categories CategorySearcher
}

// NewDispatcher wires the five entity searchers.
func NewDispatcher(
	deals DealSearcher,
	coupons CouponSearcher,
	companies CompanySearcher,
	users UserSearcher,
	categories CategorySearcher,
) *Dispatcher {
	return &Dispatcher{
		deals:      deals,
		coupons:    coupons,
		companies:  companies,
		users:      users,
		categories: categories,
	}
}

// Dispatch runs the branches selected by the query kind. For kind=all
// the five branches run concurrently; each goroutine writes disjoint
// fields of the shared result.
func (d *Dispatcher) Dispatch(ctx context.Context, q *query.Query) *result.SearchResult {
	res := result.New(q.Text())
	k := q.Kind()

	var wg sync.WaitGroup
	run := func(branch func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			branch()
		}()
	}

	if k == kind.All || k == kind.Deals {
		run(func() { d.searchDeals(ctx, q, res) })
	}
	if k == kind.All || k == kind.Coupons {
		run(func() { d.searchCoupons(ctx, q, res) })
	}
	if k == kind.All || k == kind.Companies {
		run(func() { d.searchCompanies(ctx, q, res) })
	}
	if k == kind.All || k == kind.Users {
		run(func() { d.searchUsers(ctx, q, res) })
	}
	if k == kind.All || k == kind.Categories {
		run(func() { d.searchCategories(ctx, q, res) })
	}
	wg.Wait()

	return res
}

func (d *Dispatcher) searchDeals(ctx context.Context, q *query.Query, res *result.SearchResult) {
	deals, total, err := d.deals.Search(ctx, q)
	if err != nil {
		degrade(ctx, "deals", err)
		return
	}
	res.Deals, res.TotalDeals = deals, total
}

func (d *Dispatcher) searchCoupons(ctx context.Context, q *query.Query, res *result.SearchResult) {
	coupons, total, err := d.coupons.Search(ctx, q)
	if err != nil {
		degrade(ctx, "coupons", err)
		return
	}
	res.Coupons, res.TotalCoupons = coupons, total
}

func (d *Dispatcher) searchCompanies(ctx context.Context, q *query.Query, res *result.SearchResult) {
	companies, total, err := d.companies.Search(ctx, q)
	if err != nil {
		degrade(ctx, "companies", err)
		return
	}
	res.Companies, res.TotalCompanies = companies, total
}

func (d *Dispatcher) searchUsers(ctx context.Context, q *query.Query, res *result.SearchResult) {
	users, total, err := d.users.Search(ctx, q)
	if err != nil {
		degrade(ctx, "users", err)
		return
	}
	res.Users, res.TotalUsers = users, total
}

func (d *Dispatcher) searchCategories(ctx context.Context, q *query.Query, res *result.SearchResult) {
	categories, total, err := d.categories.Search(ctx, q)
	if err != nil {
		degrade(ctx, "categories", err)
		return
	}
	res.Categories, res.TotalCategories = categories, total
}

func degrade(ctx context.Context, entityName string, err error) {
	logger.FromContext(ctx).Warn("entity search degraded to empty results",
		zap.String("entity", entityName), zap.Error(err))
	metrics.EntityFailuresTotal.WithLabelValues(entityName).Inc()
}
