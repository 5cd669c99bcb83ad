package result

import (
	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/domain/suggestion"
)

// SearchResult is the composite response assembled by the orchestrator.
// Per-entity totals are exact store counts and may exceed the returned
// page lengths.
type SearchResult struct {
	Deals      []entity.Deal     `json:"deals"`
	Coupons    []entity.Coupon   `json:"coupons"`
	Users      []entity.User     `json:"users"`
	Companies  []entity.Company  `json:"companies"`
	Categories []entity.Category `json:"categories"`

	TotalDeals      int `json:"total_deals"`
	TotalCoupons    int `json:"total_coupons"`
	TotalUsers      int `json:"total_users"`
	TotalCompanies  int `json:"total_companies"`
	TotalCategories int `json:"total_categories"`
	TotalResults    int `json:"total_results"`

	Query        string                  `json:"query"`
	SearchTimeMs int64                   `json:"search_time"`
	Suggestions  []suggestion.Suggestion `json:"suggestions"`
}

// New creates an empty result for a query with non-nil slices, so JSON
// serializes empty arrays rather than nulls.
func New(queryText string) *SearchResult {
	return &SearchResult{
		Deals:       []entity.Deal{},
		Coupons:     []entity.Coupon{},
		Users:       []entity.User{},
		Companies:   []entity.Company{},
		Categories:  []entity.Category{},
		Query:       queryText,
		Suggestions: []suggestion.Suggestion{},
	}
}

// FinalizeTotals recomputes the aggregate total from per-entity counts.
func (r *SearchResult) FinalizeTotals() {
	r.TotalResults = r.TotalDeals + r.TotalCoupons + r.TotalUsers +
		r.TotalCompanies + r.TotalCategories
}
