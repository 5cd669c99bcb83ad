package coupon

import (
	"github.com/dealhive/dealsearch/internal/domain/entity"
	"github.com/dealhive/dealsearch/internal/store"
)

// fromRecord hydrates a typed coupon from a raw store row.
func fromRecord(rec store.Record) entity.Coupon {
	return entity.Coupon{
		ID:            rec.Str("id"),
		Title:         rec.Str("title"),
		Description:   rec.Str("description"),
		Code:          rec.Str("code"),
		CouponType:    rec.Str("coupon_type"),
		DiscountValue: rec.Float("discount_value"),
		CategoryID:    rec.Str("category_id"),
		CompanyID:     rec.Str("company_id"),
		Featured:      rec.Bool("featured"),
		ViewsCount:    rec.Int("views_count"),
		CreatedAt:     rec.Time("created_at"),
	}
}
