// Package suggestsrc runs the bounded store lookups the suggestion
// generator feeds on: prefix searches for auto-complete and top-N
// scans for the vocabulary index.
package suggestsrc

import (
	"context"
	"fmt"

	"github.com/dealhive/dealsearch/internal/domain/search/filter"
	"github.com/dealhive/dealsearch/internal/store"
)

// Repo answers suggestion-source queries.
type Repo struct {
	store store.Store
}

// New creates a suggestion-source repository.
func New(s store.Store) *Repo {
	return &Repo{store: s}
}

// TagNames returns tag names starting with prefix.
func (r *Repo) TagNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Tags,
		Where:      filter.PrefixFold("name", prefix),
		OrderBy:    []store.Ordering{{Field: "name"}},
		Limit:      limit,
	}, "name")
}

// DealTitles returns deal titles starting with prefix, most viewed first.
func (r *Repo) DealTitles(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Deals,
		Where:      filter.PrefixFold("title", prefix),
		OrderBy:    []store.Ordering{{Field: "views_count", Desc: true}},
		Limit:      limit,
	}, "title")
}

// Merchants returns merchant names starting with prefix, most viewed first.
func (r *Repo) Merchants(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Deals,
		Where:      filter.PrefixFold("merchant", prefix),
		OrderBy:    []store.Ordering{{Field: "views_count", Desc: true}},
		Limit:      limit,
	}, "merchant")
}

// CompanyNames returns company names starting with prefix.
func (r *Repo) CompanyNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Companies,
		Where:      filter.PrefixFold("name", prefix),
		OrderBy:    []store.Ordering{{Field: "name"}},
		Limit:      limit,
	}, "name")
}

// UserHandles returns user handles starting with prefix.
func (r *Repo) UserHandles(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Users,
		Where:      filter.PrefixFold("username", prefix),
		OrderBy:    []store.Ordering{{Field: "karma", Desc: true}},
		Limit:      limit,
	}, "username")
}

// UserDisplayNames returns display names starting with prefix.
func (r *Repo) UserDisplayNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Users,
		Where:      filter.PrefixFold("display_name", prefix),
		OrderBy:    []store.Ordering{{Field: "karma", Desc: true}},
		Limit:      limit,
	}, "display_name")
}

// CategoryNames returns category names containing text (substring, not
// prefix).
func (r *Repo) CategoryNames(ctx context.Context, text string, limit int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Categories,
		Where:      filter.ContainsFold("name", text),
		OrderBy:    []store.Ordering{{Field: "name"}},
		Limit:      limit,
	}, "name")
}

// TopDealTexts returns title and merchant strings of the top-N deals by
// views, the vocabulary's main feedstock.
func (r *Repo) TopDealTexts(ctx context.Context, n int) ([]string, error) {
	rows, err := r.store.Find(ctx, &store.Query{
		Collection: store.Deals,
		OrderBy:    []store.Ordering{{Field: "views_count", Desc: true}},
		Limit:      n,
	})
	if err != nil {
		return nil, fmt.Errorf("find top deals: %w", err)
	}
	texts := make([]string, 0, len(rows)*2)
	for _, rec := range rows {
		if t := rec.Str("title"); t != "" {
			texts = append(texts, t)
		}
		if m := rec.Str("merchant"); m != "" {
			texts = append(texts, m)
		}
	}
	return texts, nil
}

// TopCompanyTexts returns a bounded slice of company names for the
// vocabulary.
func (r *Repo) TopCompanyTexts(ctx context.Context, n int) ([]string, error) {
	return r.texts(ctx, &store.Query{
		Collection: store.Companies,
		OrderBy:    []store.Ordering{{Field: "created_at", Desc: true}},
		Limit:      n,
	}, "name")
}

func (r *Repo) texts(ctx context.Context, q *store.Query, field string) ([]string, error) {
	rows, err := r.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", q.Collection, err)
	}
	out := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, rec := range rows {
		v := rec.Str(field)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}
