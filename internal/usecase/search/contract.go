package search

import (
	"context"
	"time"

	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/search/query"
	"github.com/dealhive/dealsearch/internal/domain/search/result"
	"github.com/dealhive/dealsearch/internal/domain/suggestion"
)

// Per-entity search contracts. Each returns one page plus the exact
// total matching count.
type (
	// DealSearcher searches the deals collection.
	DealSearcher interface {
		Search(ctx context.Context, q *query.Query) ([]entity.Deal, int, error)
	}
	// CouponSearcher searches the coupons collection.
	CouponSearcher interface {
		Search(ctx context.Context, q *query.Query) ([]entity.Coupon, int, error)
	}
	// CompanySearcher searches the companies collection.
	CompanySearcher interface {
		Search(ctx context.Context, q *query.Query) ([]entity.Company, int, error)
	}
	// UserSearcher searches the users collection.
	UserSearcher interface {
		Search(ctx context.Context, q *query.Query) ([]entity.User, int, error)
	}
	// CategorySearcher searches the categories collection.
	CategorySearcher interface {
		Search(ctx context.Context, q *query.Query) ([]entity.Category, int, error)
	}
)

// Suggester computes suggestions once results are known.
type Suggester interface {
	Generate(ctx context.Context, q *query.Query, res *result.SearchResult) []suggestion.Suggestion
}

// Source tells analytics where a successful response came from.
type Source string

// Analytics sources.
const (
	SourceCache    Source = "cache_hit"
	SourceDatabase Source = "database_hit"
)

// Analytics receives fire-and-forget search telemetry. Implementations
// must never block the response path.
type Analytics interface {
	RecordSearch(q *query.Query, res *result.SearchResult, elapsed time.Duration, source Source)
	RecordError(params query.Params, err error, elapsed time.Duration)
}
