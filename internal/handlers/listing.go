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
// ListingHandler
// ==========================
type ListingHandler struct {
	Repo *repo.ListingRepo
}

// ==========================
// Create Listing
// ==========================
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title       string  `json:"title"`
		Location    string  `json:"location"`
		Price       float64 `json:"price"`
		Capacity    int     `json:"capacity"`
		Description string  `json:"description"`
		OwnerID     string  `json:"ownerId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Title == "" {
		fields["title"] = "required"
	}
	if input.Location == "" {
		fields["location"] = "required"
	}
	if input.Price < 0 {
		fields["price"] = "must be >= 0"
	}
	if input.Capacity <= 0 {
		fields["capacity"] = "must be > 0"
	}
	if input.OwnerID == "" {
		fields["ownerId"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	listing, err := h.Repo.Create(r.Context(), models.Listing{
		Title:         input.Title,
		Location:      input.Location,
		Price:         input.Price,
		Capacity:      input.Capacity,
		Description:   input.Description,
		OwnerUsername: input.OwnerID,
	})
	if err != nil {
		writeRepoError(w, err)
		return
	}

	metrics.RecordWrite("listing", "create")
	WriteJSON(w, http.StatusCreated, map[string]interface{}{"listing": listing})
}

// ==========================
// List Listings (filters: title, location, maxPrice)
// ==========================
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	var filter models.ListingFilter

	if v := r.URL.Query().Get("title"); v != "" {
		filter.Title = &v
	}
	if v := r.URL.Query().Get("location"); v != "" {
		filter.Location = &v
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			JSONValidationError(w, "validation failed",
				map[string]string{"maxPrice": "must be a number"}, http.StatusBadRequest)
			return
		}
		filter.MaxPrice = &price
	}

	listings, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"listings": listings})
}

// ==========================
// Get Listing
// ==========================
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	listing, err := h.Repo.Get(r.Context(), title)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"listing": listing})
}

// ==========================
// Update Listing (partial)
// ==========================
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	var patch models.ListingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if patch.Title != nil && *patch.Title == "" {
		fields["title"] = "must not be empty"
	}
	if patch.Location != nil && *patch.Location == "" {
		fields["location"] = "must not be empty"
	}
	if patch.Price != nil && *patch.Price < 0 {
		fields["price"] = "must be >= 0"
	}
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		fields["capacity"] = "must be > 0"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	listing, err := h.Repo.Update(r.Context(), title, patch)
	if err != nil {
		writeRepoError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"listing": listing})
}

// ==========================
// Delete Listing
// ==========================
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")
	if err := h.Repo.Delete(r.Context(), title); err != nil {
		writeRepoError(w, err)
		return
	}
	metrics.RecordWrite("listing", "delete")
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": title})
}
