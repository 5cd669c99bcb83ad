package kind

// Kind selects which record collections a search targets.
type Kind string

// Entity kind constants.
const (
	// All fans out across every collection.
	All        Kind = "all"
	Deals      Kind = "deals"
	Coupons    Kind = "coupons"
	Users      Kind = "users"
	Companies  Kind = "companies"
	Categories Kind = "categories"
)

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	switch k {
	case All, Deals, Coupons, Users, Companies, Categories:
		return true
	}
	return false
}
