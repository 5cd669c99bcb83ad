// Package search orchestrates a marketplace search: normalize the raw
// parameters, consult the result cache, fan out to the per-entity
// searchers, re-rank text matches, attach suggestions, and record
// analytics off the response path.
package search

import (
	"context"
	"time"

	"github.com/dealhive/dealsearch/internal/cache"
	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/fuzzy"
	"github.com/dealhive/dealsearch/internal/metrics"
)

// Service is the search orchestrator.
type Service struct {
	dispatcher *Dispatcher
	cache      cache.ResultCache
	suggester  Suggester
	analytics  Analytics
	threshold  float64
}

// New creates the orchestrator. A nil resultCache disables caching; a
// non-positive threshold falls back to fuzzy.DefaultThreshold.
func New(
	dispatcher *Dispatcher,
	resultCache cache.ResultCache,
	suggester Suggester,
	analytics Analytics,
	threshold float64,
) *Service {
	if threshold <= 0 {
		threshold = fuzzy.DefaultThreshold
	}
	return &Service{
		dispatcher: dispatcher,
		cache:      resultCache,
		suggester:  suggester,
		analytics:  analytics,
		threshold:  threshold,
	}
}

// Search executes one search request end to end. Validation failures
// surface as domain.ValidationError; per-entity failures degrade inside
// the dispatcher and never reach the caller.
func (s *Service) Search(ctx context.Context, params query.Params) (*result.SearchResult, error) {
	start := time.Now()

	q, err := query.New(params)
	if err != nil {
		s.analytics.RecordError(params, err, time.Since(start))
		metrics.SearchesTotal.WithLabelValues("invalid", "error").Inc()
		return nil, err
	}
	kindLabel := string(q.Kind())

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, q.CacheKey()); ok {
			metrics.CacheTotal.WithLabelValues("hit").Inc()
			metrics.SearchesTotal.WithLabelValues(kindLabel, string(SourceCache)).Inc()
			metrics.SearchDuration.WithLabelValues(kindLabel).Observe(time.Since(start).Seconds())
			s.analytics.RecordSearch(q, cached, time.Since(start), SourceCache)
			return cached, nil
		}
		metrics.CacheTotal.WithLabelValues("miss").Inc()
	}

	res := s.dispatcher.Dispatch(ctx, q)
	s.rerank(q, res)
	if s.suggester != nil {
		if suggestions := s.suggester.Generate(ctx, q, res); suggestions != nil {
			res.Suggestions = suggestions
		}
	}
	res.FinalizeTotals()
	res.SearchTimeMs = time.Since(start).Milliseconds()

	if s.cache != nil {
		s.cache.Set(ctx, q.CacheKey(), res)
	}

	metrics.SearchesTotal.WithLabelValues(kindLabel, string(SourceDatabase)).Inc()
	metrics.SearchDuration.WithLabelValues(kindLabel).Observe(time.Since(start).Seconds())
	s.analytics.RecordSearch(q, res, time.Since(start), SourceDatabase)
	return res, nil
}

var dealFields = []fuzzy.Field[entity.Deal]{
	{Get: func(d entity.Deal) string { return d.Title }, Weight: 2},
	{Get: func(d entity.Deal) string { return d.Description }, Weight: 1},
	{Get: func(d entity.Deal) string { return d.Merchant }, Weight: 1.5},
}

var couponFields = []fuzzy.Field[entity.Coupon]{
	{Get: func(c entity.Coupon) string { return c.Title }, Weight: 2},
	{Get: func(c entity.Coupon) string { return c.Description }, Weight: 1},
	{Get: func(c entity.Coupon) string { return c.Code }, Weight: 1},
}

// rerank applies fuzzy scoring to the text-heavy collections. Deals and
// coupons carry enough prose to re-order meaningfully; the remaining
// collections keep their store ordering.
func (s *Service) rerank(q *query.Query, res *result.SearchResult) {
	if q.Text() == "" {
		return
	}
	res.Deals = fuzzy.FilterAndRank(res.Deals, q.Text(), dealFields,
		func(d entity.Deal) float64 { return float64(d.ViewsCount) }, s.threshold)
	res.Coupons = fuzzy.FilterAndRank(res.Coupons, q.Text(), couponFields,
		func(c entity.Coupon) float64 { return float64(c.ViewsCount) }, s.threshold)
}
