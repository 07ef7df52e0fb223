package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crucial707/sharebnb/internal/metrics"
	"github.com/crucial707/sharebnb/internal/models"
	"github.com/crucial707/sharebnb/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ==========================
// BookingHandler
// ==========================
type BookingHandler struct {
	Repo *repo.BookingRepo
}

// ==========================
// Create Booking
// ==========================
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RenterUsername string      `json:"renterUsername"`
		ListingID      int         `json:"listingId"`
		StartDate      models.Date `json:"startDate"`
		EndDate        models.Date `json:"endDate"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.RenterUsername == "" {
		fields["renterUsername"] = "required"
	}
	if input.ListingID <= 0 {
		fields["listingId"] = "required"
	}
	if input.StartDate.IsZero() {
		fields["startDate"] = "required"
	}
	if input.EndDate.IsZero() {
		fields["endDate"] = "required"
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() &&
		input.EndDate.Before(input.StartDate.Time) {
		fields["endDate"] = "must not be before startDate"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	booking, err := h.Repo.Create(r.Context(), models.Booking{
		RenterUsername: input.RenterUsername,
		ListingID:      input.ListingID,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	metrics.RecordWrite("booking", "create")
	WriteJSON(w, http.StatusCreated, map[string]interface{}{"booking": booking})
}

// ==========================
// List Bookings
// ==========================
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Repo.List(r.Context())
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// ==========================
// Get Booking
// ==========================
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	booking, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"booking": booking})
}

// ==========================
// Update Booking (partial)
// ==========================
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	var patch models.BookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if patch.RenterUsername != nil && *patch.RenterUsername == "" {
		fields["renterUsername"] = "must not be empty"
	}
	if patch.ListingID != nil && *patch.ListingID <= 0 {
		fields["listingId"] = "must be > 0"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	booking, err := h.Repo.Update(r.Context(), id, patch)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"booking": booking})
}

// ==========================
// Delete Booking
// ==========================
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		JSONError(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, err)
		return
	}
	metrics.RecordWrite("booking", "delete")
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": strconv.Itoa(id)})
}
