package domain

// Sort orders accepted by the property listing endpoint. Anything else falls
// back to newest-first (id descending).
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Property represents a real-estate listing. OwnerID is set from the
// authenticated identity at creation and never changes afterwards.
type Property struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Location     string   `json:"location"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         float64  `json:"area"`
	PropertyType string   `json:"property_type"`
	ListingType  string   `json:"listing_type"`
	Images       []string `json:"images"`
	OwnerID      int64    `json:"owner_id"`
}

// PropertyDetail is a single-property read joined with the owner's username.
// OwnerUsername is only serialized for requesters with role customer; every
// other role receives the property without it.
type PropertyDetail struct {
	Property
	OwnerUsername *string `json:"owner_username,omitempty"`
}
