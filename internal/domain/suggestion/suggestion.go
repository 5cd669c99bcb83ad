package suggestion

// Type identifies what a suggestion was derived from.
type Type string

// Suggestion type constants.
const (
	Tag             Type = "tag"
	DealTitle       Type = "deal_title"
	Merchant        Type = "merchant"
	Company         Type = "company"
	UserHandle      Type = "user_handle"
	UserName        Type = "user_name"
	SpellCorrection Type = "spell_correction"
	RelatedTerm     Type = "related_term"
	RelatedCompany  Type = "related_company"
	PopularSearch   Type = "popular_search"
	Category        Type = "category"
)

// Suggestion is a single query suggestion: an auto-completion, a spell
// correction, a related term, or a popular/category hint.
type Suggestion struct {
	Text   string  `json:"text"`
	Type   Type    `json:"type"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
	// Extra carries type-specific payload, e.g. the fully corrected
	// query for spell corrections.
	Extra map[string]string `json:"extra,omitempty"`
}
