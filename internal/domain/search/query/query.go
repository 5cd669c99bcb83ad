// Package query normalizes raw search parameters into an immutable
// Query. Validation rejects malformed requests before any store access;
// everything else is coerced to a safe default.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dealhive/dealsearch/internal/domain"
	"github.com/dealhive/dealsearch/internal/domain/geo"
	"github.com/dealhive/dealsearch/internal/domain/search/kind"
	"github.com/dealhive/dealsearch/internal/domain/search/sortmode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 200
	DefaultLimit   = 20
	// MaxResults caps the per-entity page size.
	MaxResults = 100
)

// Params is the raw parameter bag handed in by the transport layer.
// Values may be strings, numbers, booleans, or string sequences.
type Params map[string]any

// Query is a validated, canonicalized search request.
type Query struct {
	text        string
	entityKind  kind.Kind
	sort        sortmode.Mode
	category    string
	company     string
	couponType  string
	tags        []string
	minPrice    *float64
	maxPrice    *float64
	minDiscount *float64
	maxDiscount *float64
	hasCoupon   bool
	featured    bool
	latitude    *float64
	longitude   *float64
	radiusKm    float64
	page        int
	limit       int
	filters     map[string]string
}

// New validates and normalizes raw search parameters.
// Defaults: kind=all, sort=relevance, page=1, limit=20.
func New(p Params) (*Query, error) {
	text := strings.TrimSpace(asString(p["q"]))
	if len(text) > MaxQueryLength {
		return nil, domain.NewValidationError("q", fmt.Sprintf("query too long (max %d chars)", MaxQueryLength))
	}

	k := kind.All
	if v := asString(p["type"]); v != "" {
		k = kind.Kind(v)
	}
	if !k.IsValid() {
		return nil, domain.NewValidationError("type", fmt.Sprintf("invalid entity type %q", k))
	}

	sm := sortmode.Relevance
	if v := asString(p["sort"]); v != "" {
		sm = sortmode.Mode(v)
	}
	if !sm.IsValid() {
		return nil, domain.NewValidationError("sort", fmt.Sprintf("invalid sort mode %q", sm))
	}

	page := asInt(p["page"], 1)
	if page < 1 {
		page = 1
	}

	limit := asInt(p["limit"], DefaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > MaxResults {
		limit = MaxResults
	}

	q := &Query{
		text:        text,
		entityKind:  k,
		sort:        sm,
		category:    asString(p["category"]),
		company:     asString(p["company"]),
		couponType:  asString(p["coupon_type"]),
		tags:        asStrings(p["tags"]),
		minPrice:    asFloat(p["min_price"]),
		maxPrice:    asFloat(p["max_price"]),
		minDiscount: asFloat(p["min_discount"]),
		maxDiscount: asFloat(p["max_discount"]),
		hasCoupon:   asBool(p["has_coupon"]),
		featured:    asBool(p["featured"]),
		latitude:    asFloat(p["latitude"]),
		longitude:   asFloat(p["longitude"]),
		page:        page,
		limit:       limit,
		filters:     asStringMap(p["filters"]),
	}

	if q.latitude != nil && q.longitude != nil {
		if !geo.ValidateCoordinates(*q.latitude, *q.longitude) {
			return nil, domain.NewValidationError("latitude", "coordinates out of range")
		}
		q.radiusKm = geo.DefaultRadiusKm
		if r := asFloat(p["radius"]); r != nil && *r > 0 {
			q.radiusKm = *r
		}
	}

	return q, nil
}

// Text returns the trimmed query text.
func (q *Query) Text() string { return q.text }

// Kind returns the entity-type selector.
func (q *Query) Kind() kind.Kind { return q.entityKind }

// Sort returns the requested sort mode.
func (q *Query) Sort() sortmode.Mode { return q.sort }

// Category returns the category filter ("" = none).
func (q *Query) Category() string { return q.category }

// Company returns the company filter ("" = none).
func (q *Query) Company() string { return q.company }

// CouponType returns the coupon-type filter ("" = none).
func (q *Query) CouponType() string { return q.couponType }

// Tags returns the tag filters.
func (q *Query) Tags() []string { return q.tags }

// MinPrice returns the lower price bound (nil = open).
func (q *Query) MinPrice() *float64 { return q.minPrice }

// MaxPrice returns the upper price bound (nil = open).
func (q *Query) MaxPrice() *float64 { return q.maxPrice }

// MinDiscount returns the lower discount bound (nil = open).
func (q *Query) MinDiscount() *float64 { return q.minDiscount }

// MaxDiscount returns the upper discount bound (nil = open).
func (q *Query) MaxDiscount() *float64 { return q.maxDiscount }

// HasCoupon reports whether only deals with coupons are wanted.
func (q *Query) HasCoupon() bool { return q.hasCoupon }

// Featured reports whether only featured records are wanted.
func (q *Query) Featured() bool { return q.featured }

// Latitude returns the geo center latitude (nil = no geo filter).
func (q *Query) Latitude() *float64 { return q.latitude }

// Longitude returns the geo center longitude (nil = no geo filter).
func (q *Query) Longitude() *float64 { return q.longitude }

// RadiusKm returns the geo radius in kilometers (0 when no geo filter).
func (q *Query) RadiusKm() float64 { return q.radiusKm }

// Page returns the 1-based page number.
func (q *Query) Page() int { return q.page }

// Limit returns the per-entity page size.
func (q *Query) Limit() int { return q.limit }

// Offset returns the page window start.
func (q *Query) Offset() int { return (q.page - 1) * q.limit }

// Filters returns the free-form filter bag.
func (q *Query) Filters() map[string]string { return q.filters }

// HasGeo reports whether a geographic filter applies.
func (q *Query) HasGeo() bool { return q.latitude != nil && q.longitude != nil }

// CacheKey returns a stable canonical serialization of the query,
// suitable as a cache key. Two equivalent queries share a key.
func (q *Query) CacheKey() string {
	var b strings.Builder
	b.WriteString("q=" + strings.ToLower(q.text))
	b.WriteString("|type=" + string(q.entityKind))
	b.WriteString("|sort=" + string(q.sort))
	b.WriteString("|cat=" + q.category)
	b.WriteString("|co=" + q.company)
	b.WriteString("|ct=" + q.couponType)
	b.WriteString("|tags=" + strings.Join(q.tags, ","))
	b.WriteString("|mp=" + floatKey(q.minPrice))
	b.WriteString("|xp=" + floatKey(q.maxPrice))
	b.WriteString("|md=" + floatKey(q.minDiscount))
	b.WriteString("|xd=" + floatKey(q.maxDiscount))
	b.WriteString("|hc=" + strconv.FormatBool(q.hasCoupon))
	b.WriteString("|ft=" + strconv.FormatBool(q.featured))
	b.WriteString("|lat=" + floatKey(q.latitude))
	b.WriteString("|lon=" + floatKey(q.longitude))
	b.WriteString("|r=" + strconv.FormatFloat(q.radiusKm, 'f', -1, 64))
	b.WriteString("|p=" + strconv.Itoa(q.page))
	b.WriteString("|l=" + strconv.Itoa(q.limit))

	if len(q.filters) > 0 {
		keys := make([]string, 0, len(q.filters))
		for k := range q.filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("|f:" + k + "=" + q.filters[k])
		}
	}
	return b.String()
}

func floatKey(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asInt(v any, def int) int {
	switch t := v.(type) {
	case nil:
		return def
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return def
}

func asFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case float32:
		f := float64(t)
		return &f
	case int:
		f := float64(t)
		return &f
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

// asStrings accepts a sequence or a comma-joined string and normalizes
// to a trimmed, non-empty sequence.
func asStrings(v any) []string {
	var raw []string
	switch t := v.(type) {
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			raw = append(raw, asString(item))
		}
	case string:
		raw = strings.Split(t, ",")
	default:
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func asStringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = asString(val)
	}
	return out
}
