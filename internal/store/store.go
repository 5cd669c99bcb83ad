// Package store defines the narrow record-store contract the search
// core consumes: predicate-filtered finds with ordering and pagination,
// plus exact counts, over named collections. Persistence itself lives
// behind this interface.
package store

import (
	"context"
	"strconv"
	"time"

	"github.com/dealhive/dealsearch/internal/domain/search/filter"
)

// Collection names the search core queries.
const (
	Deals      = "deals"
	Coupons    = "coupons"
	Companies  = "companies"
	Users      = "users"
	Categories = "categories"
	Tags       = "tags"
	DealTags   = "deal_tags"
	CouponTags = "coupon_tags"
)

// Ordering is one sort key applied by the store.
type Ordering struct {
	Field string
	Desc  bool
}

// Query describes a single Find against one collection.
type Query struct {
	Collection string
	Where      filter.Node
	OrderBy    []Ordering
	Offset     int
	Limit      int // 0 = unbounded
}

// Store is the record-store collaborator contract.
type Store interface {
	Find(ctx context.Context, q *Query) ([]Record, error)
	Count(ctx context.Context, collection string, where filter.Node) (int, error)
}

// Record is one raw row. Repositories map records into typed entities
// immediately at their boundary; nothing downstream touches a Record.
type Record map[string]any

// Str returns a string field ("" when absent or differently typed).
func (r Record) Str(key string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// Float returns a numeric field coerced to float64 (0 when absent).
func (r Record) Float(key string) float64 {
	f, _ := Numeric(r[key])
	return f
}

// FloatPtr returns a numeric field, or nil when absent or non-numeric.
func (r Record) FloatPtr(key string) *float64 {
	if f, ok := Numeric(r[key]); ok {
		return &f
	}
	return nil
}

// Int returns a numeric field truncated to int (0 when absent).
func (r Record) Int(key string) int {
	f, _ := Numeric(r[key])
	return int(f)
}

// Bool returns a boolean field (false when absent; the string "true"
// also counts, matching loosely-typed fixture rows).
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}

// Time returns a timestamp field. time.Time values pass through;
// strings parse as RFC 3339; numbers are Unix seconds.
func (r Record) Time(key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	case float64:
		return time.Unix(int64(v), 0).UTC()
	case int64:
		return time.Unix(v, 0).UTC()
	case int:
		return time.Unix(int64(v), 0).UTC()
	}
	return time.Time{}
}

// Numeric coerces a value to float64, reporting whether it was numeric.
// JSON decoding yields float64; fixtures may carry strings.
func Numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
