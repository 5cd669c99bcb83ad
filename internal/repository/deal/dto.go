package deal

import (
	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/store"
)

// fromRecord hydrates a typed deal from a raw store row.
func fromRecord(rec store.Record) entity.Deal {
	return entity.Deal{
		ID:                 rec.Str("id"),
		Title:              rec.Str("title"),
		Description:        rec.Str("description"),
		Merchant:           rec.Str("merchant"),
		Price:              rec.Float("price"),
		OriginalPrice:      rec.Float("original_price"),
		DiscountPercentage: rec.Float("discount_percentage"),
		CategoryID:         rec.Str("category_id"),
		CompanyID:          rec.Str("company_id"),
		HasCoupon:          rec.Bool("has_coupon"),
		Featured:           rec.Bool("featured"),
		Latitude:           rec.FloatPtr("latitude"),
		Longitude:          rec.FloatPtr("longitude"),
		ViewsCount:         rec.Int("views_count"),
		CreatedAt:          rec.Time("created_at"),
	}
}
