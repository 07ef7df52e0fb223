package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/crucial707/sharebnb/internal/models"
)

func listingRows() *sqlmock.Rows {
	return sqlmock.NewRows(
		[]string{"id", "title", "location", "price", "capacity", "description", "owner_username"})
}

func TestListingRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO listings`).
		WithArgs("Cabin", "Tahoe", 120.0, 4, "Cozy cabin", "ana").
		WillReturnRows(listingRows().AddRow(1, "Cabin", "Tahoe", 120.0, 4, "Cozy cabin", "ana"))

	repo := NewListingRepo(db)
	listing, err := repo.Create(context.Background(), models.Listing{
		Title:         "Cabin",
		Location:      "Tahoe",
		Price:         120,
		Capacity:      4,
		Description:   "Cozy cabin",
		OwnerUsername: "ana",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.ID != 1 || listing.Title != "Cabin" || listing.OwnerUsername != "ana" {
		t.Errorf("unexpected listing: %+v", listing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_Create_DuplicateLocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO listings`).
		WithArgs("Cabin 2", "Tahoe", 90.0, 2, "", "ana").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "listings_location_key"})

	repo := NewListingRepo(db)
	_, err = repo.Create(context.Background(), models.Listing{
		Title: "Cabin 2", Location: "Tahoe", Price: 90, Capacity: 2, OwnerUsername: "ana",
	})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_Create_UnknownOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO listings`).
		WithArgs("Cabin", "Tahoe", 120.0, 4, "", "ghost").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "listings_owner_username_fkey"})

	repo := NewListingRepo(db)
	_, err = repo.Create(context.Background(), models.Listing{
		Title: "Cabin", Location: "Tahoe", Price: 120, Capacity: 4, OwnerUsername: "ghost",
	})
	if !errors.Is(err, ErrBadReference) {
		t.Errorf("expected ErrBadReference, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_List_NoFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, title, location, price, capacity, description, owner_username FROM listings ORDER BY title`).
		WillReturnRows(listingRows().
			AddRow(1, "Cabin", "Tahoe", 120.0, 4, "", "ana").
			AddRow(2, "Loft", "Denver", 80.0, 2, "", "bob"))

	repo := NewListingRepo(db)
	listings, err := repo.List(context.Background(), models.ListingFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listings) != 2 || listings[0].Title != "Cabin" || listings[1].Title != "Loft" {
		t.Errorf("unexpected listings: %+v", listings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_List_Filtered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM listings WHERE location ILIKE \$1 AND price <= \$2 ORDER BY title`).
		WithArgs("%Tahoe%", 150.0).
		WillReturnRows(listingRows().AddRow(1, "Cabin", "Tahoe", 120.0, 4, "", "ana"))

	repo := NewListingRepo(db)
	location := "Tahoe"
	maxPrice := 150.0
	listings, err := repo.List(context.Background(), models.ListingFilter{
		Location: &location,
		MaxPrice: &maxPrice,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listings) != 1 || listings[0].Location != "Tahoe" {
		t.Errorf("unexpected listings: %+v", listings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM listings WHERE title = \$1`).
		WithArgs("Nowhere").
		WillReturnError(sql.ErrNoRows)

	repo := NewListingRepo(db)
	_, err = repo.Get(context.Background(), "Nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_Update_SingleField(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE listings SET price = \$1 WHERE title = \$2`).
		WithArgs(99.0, "Cabin").
		WillReturnRows(listingRows().AddRow(1, "Cabin", "Tahoe", 99.0, 4, "", "ana"))

	repo := NewListingRepo(db)
	price := 99.0
	listing, err := repo.Update(context.Background(), "Cabin", models.ListingPatch{Price: &price})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if listing.Price != 99 || listing.Capacity != 4 {
		t.Errorf("unexpected listing: %+v", listing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM listings WHERE title = \$1`).
		WithArgs("Cabin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewListingRepo(db)
	if err := repo.Delete(context.Background(), "Cabin"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestListingRepo_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM listings WHERE title = \$1`).
		WithArgs("Nowhere").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewListingRepo(db)
	err = repo.Delete(context.Background(), "Nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
