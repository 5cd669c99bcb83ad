package suggest

import "context"

// Source runs the bounded store lookups suggestions are built from.
type Source interface {
	TagNames(ctx context.Context, prefix string, limit int) ([]string, error)
	DealTitles(ctx context.Context, prefix string, limit int) ([]string, error)
	Merchants(ctx context.Context, prefix string, limit int) ([]string, error)
	CompanyNames(ctx context.Context, prefix string, limit int) ([]string, error)
	UserHandles(ctx context.Context, prefix string, limit int) ([]string, error)
	UserDisplayNames(ctx context.Context, prefix string, limit int) ([]string, error)
	CategoryNames(ctx context.Context, text string, limit int) ([]string, error)
	TopDealTexts(ctx context.Context, n int) ([]string, error)
	TopCompanyTexts(ctx context.Context, n int) ([]string, error)
}
