package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dealhive/dealsearch/internal/cache"
	"github.com/dealhive/dealsearch/internal/domain"
	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/domain/suggestion"
)

// Hand-rolled searcher fakes. Each counts its calls so tests can assert
// which branches ran.

type fakeDeals struct {
	mu    sync.Mutex
	calls int
	deals []entity.Deal
	total int
	err   error
}

func (f *fakeDeals) Search(_ context.Context, _ *query.Query) ([]entity.Deal, int, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.deals, f.total, f.err
}

type fakeCoupons struct {
	coupons []entity.Coupon
	total   int
	err     error
}

func (f *fakeCoupons) Search(_ context.Context, _ *query.Query) ([]entity.Coupon, int, error) {
	return f.coupons, f.total, f.err
}

type fakeCompanies struct {
	companies []entity.Company
	total     int
}

func (f *fakeCompanies) Search(_ context.Context, _ *query.Query) ([]entity.Company, int, error) {
	return f.companies, f.total, nil
}

type fakeUsers struct {
	users []entity.User
	total int
}

func (f *fakeUsers) Search(_ context.Context, _ *query.Query) ([]entity.User, int, error) {
	return f.users, f.total, nil
}

type fakeCategories struct {
	categories []entity.Category
	total      int
}

func (f *fakeCategories) Search(_ context.Context, _ *query.Query) ([]entity.Category, int, error) {
	return f.categories, f.total, nil
}

type fakeSuggester struct {
	suggestions []suggestion.Suggestion
}

func (f *fakeSuggester) Generate(_ context.Context, _ *query.Query, _ *result.SearchResult) []suggestion.Suggestion {
	return f.suggestions
}

type recordedSearch struct {
	source Source
	total  int
}

type fakeAnalytics struct {
	mu       sync.Mutex
	searches []recordedSearch
	errors   []error
}

func (f *fakeAnalytics) RecordSearch(_ *query.Query, res *result.SearchResult, _ time.Duration, source Source) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, recordedSearch{source: source, total: res.TotalResults})
}

func (f *fakeAnalytics) RecordError(_ query.Params, err error, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, err)
}

func newFixture() (*fakeDeals, *fakeCoupons, *fakeAnalytics, *Service) {
	deals := &fakeDeals{
		deals: []entity.Deal{
			{ID: "d1", Title: "random gadget", ViewsCount: 10},
			{ID: "d2", Title: "laptop", ViewsCount: 20},
		},
		total: 2,
	}
	coupons := &fakeCoupons{
		coupons: []entity.Coupon{{ID: "cp1", Title: "10% Off Laptops"}},
		total:   1,
	}
	analytics := &fakeAnalytics{}
	dispatcher := NewDispatcher(deals, coupons,
		&fakeCompanies{companies: []entity.Company{{ID: "co1", Name: "Dell"}}, total: 1},
		&fakeUsers{total: 0},
		&fakeCategories{total: 0},
	)
	svc := New(dispatcher, cache.NewMemoryResults(cache.ResultTTL, nil),
		&fakeSuggester{}, analytics, 0)
	return deals, coupons, analytics, svc
}

func TestSearch_AggregatesAndFinalizes(t *testing.T) {
	_, _, analytics, svc := newFixture()

	res, err := svc.Search(context.Background(), query.Params{"q": "laptop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalDeals != 2 || res.TotalCoupons != 1 || res.TotalCompanies != 1 {
		t.Errorf("totals wrong: %+v", res)
	}
	if res.TotalResults != 4 {
		t.Errorf("total_results = %d, want 4", res.TotalResults)
	}
	if res.Query != "laptop" {
		t.Errorf("query = %q", res.Query)
	}

	if len(analytics.searches) != 1 || analytics.searches[0].source != SourceDatabase {
		t.Errorf("analytics = %+v", analytics.searches)
	}
}

func TestSearch_FuzzyRerankOrdersDeals(t *testing.T) {
	_, _, _, svc := newFixture()

	res, err := svc.Search(context.Background(), query.Params{"q": "laptop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Deals) == 0 || res.Deals[0].ID != "d2" {
		t.Errorf("expected exact-title deal first, got %v", res.Deals)
	}
}

func TestSearch_EmptyQueryKeepsStoreOrder(t *testing.T) {
	_, _, _, svc := newFixture()

	res, err := svc.Search(context.Background(), query.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Deals) != 2 || res.Deals[0].ID != "d1" {
		t.Errorf("empty query must preserve store ordering, got %v", res.Deals)
	}
}

func TestSearch_ValidationFailsBeforeDispatch(t *testing.T) {
	deals, _, analytics, svc := newFixture()

	_, err := svc.Search(context.Background(), query.Params{"sort": "bogus"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if deals.calls != 0 {
		t.Errorf("store searched despite invalid request (%d calls)", deals.calls)
	}
	if len(analytics.errors) != 1 {
		t.Errorf("error not recorded: %+v", analytics.errors)
	}
}

func TestSearch_CacheHitSkipsDispatch(t *testing.T) {
	deals, _, analytics, svc := newFixture()
	params := query.Params{"q": "laptop"}

	if _, err := svc.Search(context.Background(), params); err != nil {
		t.Fatalf("first search: %v", err)
	}
	res, err := svc.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("second search: %v", err)
	}

	if deals.calls != 1 {
		t.Errorf("expected 1 dispatch, got %d", deals.calls)
	}
	if res.TotalResults != 4 {
		t.Errorf("cached result corrupted: %+v", res)
	}
	if len(analytics.searches) != 2 || analytics.searches[1].source != SourceCache {
		t.Errorf("second search not recorded as cache hit: %+v", analytics.searches)
	}
}

func TestSearch_NilCacheDisablesCaching(t *testing.T) {
	deals := &fakeDeals{total: 1}
	dispatcher := NewDispatcher(deals, &fakeCoupons{}, &fakeCompanies{}, &fakeUsers{}, &fakeCategories{})
	svc := New(dispatcher, nil, &fakeSuggester{}, &fakeAnalytics{}, 0)

	params := query.Params{"q": "laptop"}
	_, _ = svc.Search(context.Background(), params)
	_, _ = svc.Search(context.Background(), params)

	if deals.calls != 2 {
		t.Errorf("expected dispatch on every search without a cache, got %d", deals.calls)
	}
}

func TestSearch_SuggestionsAttached(t *testing.T) {
	deals := &fakeDeals{}
	dispatcher := NewDispatcher(deals, &fakeCoupons{}, &fakeCompanies{}, &fakeUsers{}, &fakeCategories{})
	suggester := &fakeSuggester{suggestions: []suggestion.Suggestion{
		{Text: "laptops", Type: suggestion.PopularSearch, Score: 6},
	}}
	svc := New(dispatcher, nil, suggester, &fakeAnalytics{}, 0)

	res, err := svc.Search(context.Background(), query.Params{"q": "laptop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0].Text != "laptops" {
		t.Errorf("suggestions = %v", res.Suggestions)
	}
}

func TestDispatch_PartialFailureDegrades(t *testing.T) {
	deals := &fakeDeals{err: errors.New("deals store down")}
	coupons := &fakeCoupons{coupons: []entity.Coupon{{ID: "cp1", Title: "Coupon"}}, total: 1}
	dispatcher := NewDispatcher(deals, coupons, &fakeCompanies{}, &fakeUsers{}, &fakeCategories{})
	svc := New(dispatcher, nil, &fakeSuggester{}, &fakeAnalytics{}, 0)

	res, err := svc.Search(context.Background(), query.Params{"q": "coupon"})
	if err != nil {
		t.Fatalf("one failed branch must not fail the search: %v", err)
	}
	if len(res.Deals) != 0 || res.TotalDeals != 0 {
		t.Errorf("failed branch should be empty, got %+v", res)
	}
	if res.TotalCoupons != 1 {
		t.Errorf("healthy branch lost: %+v", res)
	}
}

func TestDispatch_KindSelectsBranch(t *testing.T) {
	deals := &fakeDeals{total: 1}
	coupons := &fakeCoupons{total: 1}
	dispatcher := NewDispatcher(deals, coupons, &fakeCompanies{total: 1}, &fakeUsers{total: 1}, &fakeCategories{total: 1})
	svc := New(dispatcher, nil, &fakeSuggester{}, &fakeAnalytics{}, 0)

	res, err := svc.Search(context.Background(), query.Params{"type": "coupons"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deals.calls != 0 {
		t.Errorf("deals searched for kind=coupons")
	}
	if res.TotalCoupons != 1 || res.TotalResults != 1 {
		t.Errorf("unexpected totals: %+v", res)
	}
}

func TestSearch_SetsSearchTime(t *testing.T) {
	_, _, _, svc := newFixture()
	res, err := svc.Search(context.Background(), query.Params{"q": "laptop"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SearchTimeMs < 0 {
		t.Errorf("search_time = %d", res.SearchTimeMs)
	}
}
