package sortmode

// Mode is the requested result ordering.
type Mode string

// Sort mode constants.
const (
	// Relevance is the default: a cheap popularity proxy at the store,
	// refined by fuzzy re-ranking for textual matches.
	Relevance Mode = "relevance"
	Newest    Mode = "newest"
	Oldest    Mode = "oldest"
	Popular   Mode = "popular"
	PriceLow  Mode = "price_low"
	PriceHigh Mode = "price_high"
	Discount  Mode = "discount"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	switch m {
	case Relevance, Newest, Oldest, Popular, PriceLow, PriceHigh, Discount:
		return true
	}
	return false
}
