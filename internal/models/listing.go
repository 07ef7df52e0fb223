package models

type Listing struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Location      string  `json:"location"`
	Price         float64 `json:"price"`
	Capacity      int     `json:"capacity"`
	Description   string  `json:"description"`
	OwnerUsername string  `json:"ownerId"`
}

// ListingPatch is the set of fields PATCH /listings/{title} may change.
// Title is patchable; the route parameter addresses the row by its old title.
type ListingPatch struct {
	Title       *string  `json:"title"`
	Location    *string  `json:"location"`
	Price       *float64 `json:"price"`
	Capacity    *int     `json:"capacity"`
	Description *string  `json:"description"`
}

// ListingFilter holds the optional GET /listings query filters. Nil fields
// are not applied.
type ListingFilter struct {
	Title    *string
	Location *string
	MaxPrice *float64
}
