package chi

import (
	"net/url"

	"github.com/dealhive/dealsearch/internal/domain/search/query"
)

// searchParamKeys are the recognized GET /api/v1/search parameters.
// Unknown parameters are ignored.
var searchParamKeys = []string{
	"q", "type", "sort", "category", "company", "coupon_type",
	"min_price", "max_price", "min_discount", "max_discount",
	"has_coupon", "featured", "latitude", "longitude", "radius",
	"page", "limit",
}

// paramsFromURL maps URL query values into the raw parameter bag.
// Values stay strings; normalization coerces them. A repeated tags
// parameter becomes a sequence, a single one may be comma-joined.
func paramsFromURL(values url.Values) query.Params {
	p := make(query.Params, len(values))
	for _, key := range searchParamKeys {
		if v := values.Get(key); v != "" {
			p[key] = v
		}
	}
	if tags, ok := values["tags"]; ok && len(tags) > 0 {
		if len(tags) == 1 {
			p["tags"] = tags[0]
		} else {
			p["tags"] = tags
		}
	}
	return p
}
