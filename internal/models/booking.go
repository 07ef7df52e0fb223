package models

type Booking struct {
	ID             int    `json:"id"`
	RenterUsername string `json:"renterUsername"`
	ListingID      int    `json:"listingId"`
	StartDate      Date   `json:"startDate"`
	EndDate        Date   `json:"endDate"`
}

// BookingPatch is the set of fields PATCH /bookings/{id} may change.
type BookingPatch struct {
	RenterUsername *string `json:"renterUsername"`
	ListingID      *int    `json:"listingId"`
	StartDate      *Date   `json:"startDate"`
	EndDate        *Date   `json:"endDate"`
}
