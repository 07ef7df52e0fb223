package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/crucial707/sharebnb/internal/repo"
)

func listingRows() *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "title", "location", "price", "capacity", "description", "owner_username"})
}

func TestListingHandler_CreateListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO listings`).
		WithArgs("Cabin", "Tahoe", 120.0, 4, "Cozy cabin", "ana").
		WillReturnRows(listingRows().AddRow(1, "Cabin", "Tahoe", 120.0, 4, "Cozy cabin", "ana"))

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Cabin",
		"location":    "Tahoe",
		"price":       120,
		"capacity":    4,
		"description": "Cozy cabin",
		"ownerId":     "ana",
	})
	req := httptest.NewRequest("POST", "/listings", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateListing(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreateListing status: got %d, want 201, body: %s", rr.Code, rr.Body)
	}
	var out struct {
		Listing struct {
			ID      int    `json:"id"`
			Title   string `json:"title"`
			OwnerID string `json:"ownerId"`
		} `json:"listing"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Listing.ID != 1 || out.Listing.Title != "Cabin" || out.Listing.OwnerID != "ana" {
		t.Errorf("unexpected listing: %+v", out.Listing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingHandler_CreateListing_Validation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Cabin",
		"price":    -5,
		"capacity": 0,
	})
	req := httptest.NewRequest("POST", "/listings", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateListing(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("CreateListing status: got %d, want 400", rr.Code)
	}
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, f := range []string{"location", "price", "capacity", "ownerId"} {
		if _, ok := out.Fields[f]; !ok {
			t.Errorf("expected a violation for %q, got fields: %v", f, out.Fields)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingHandler_CreateListing_DuplicateTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO listings`).
		WithArgs("Cabin", "Tahoe", 120.0, 4, "", "ana").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "listings_title_key"})

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	body, _ := json.Marshal(map[string]interface{}{
		"title":    "Cabin",
		"location": "Tahoe",
		"price":    120,
		"capacity": 4,
		"ownerId":  "ana",
	})
	req := httptest.NewRequest("POST", "/listings", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.CreateListing(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("CreateListing status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingHandler_ListListings_WithFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM listings WHERE location ILIKE \$1 AND price <= \$2 ORDER BY title`).
		WithArgs("%Tahoe%", 150.0).
		WillReturnRows(listingRows().AddRow(1, "Cabin", "Tahoe", 120.0, 4, "", "ana"))

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	req := httptest.NewRequest("GET", "/listings?location=Tahoe&maxPrice=150", nil)
	rr := httptest.NewRecorder()
	h.ListListings(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("ListListings status: got %d, want 200, body: %s", rr.Code, rr.Body)
	}
	var out struct {
		Listings []struct {
			Title string `json:"title"`
		} `json:"listings"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Listings) != 1 || out.Listings[0].Title != "Cabin" {
		t.Errorf("unexpected listings: %+v", out.Listings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingHandler_ListListings_BadMaxPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	req := httptest.NewRequest("GET", "/listings?maxPrice=cheap", nil)
	rr := httptest.NewRecorder()
	h.ListListings(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("ListListings status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingHandler_GetListing_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM listings WHERE title = \$1`).
		WithArgs("Nowhere").
		WillReturnRows(listingRows())

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	req := requestWithChiURLParams("GET", "/listings/Nowhere", nil, map[string]string{"title": "Nowhere"})
	rr := httptest.NewRecorder()
	h.GetListing(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("GetListing status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingHandler_UpdateListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE listings SET price = \$1 WHERE title = \$2`).
		WithArgs(99.0, "Cabin").
		WillReturnRows(listingRows().AddRow(1, "Cabin", "Tahoe", 99.0, 4, "", "ana"))

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	body, _ := json.Marshal(map[string]interface{}{"price": 99})
	req := requestWithChiURLParams("PATCH", "/listings/Cabin", body, map[string]string{"title": "Cabin"})
	rr := httptest.NewRecorder()
	h.UpdateListing(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("UpdateListing status: got %d, want 200, body: %s", rr.Code, rr.Body)
	}
	var out struct {
		Listing struct {
			Price float64 `json:"price"`
		} `json:"listing"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Listing.Price != 99 {
		t.Errorf("unexpected listing: %+v", out.Listing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingHandler_DeleteListing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM listings WHERE title = \$1`).
		WithArgs("Cabin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := &ListingHandler{Repo: repo.NewListingRepo(db)}

	req := requestWithChiURLParams("DELETE", "/listings/Cabin", nil, map[string]string{"title": "Cabin"})
	rr := httptest.NewRecorder()
	h.DeleteListing(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("DeleteListing status: got %d, want 200", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["deleted"] != "Cabin" {
		t.Errorf("unexpected response: %v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
