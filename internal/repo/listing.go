package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/sharebnb/internal/models"
)

// ==========================
// ListingRepo
// ==========================
type ListingRepo struct {
	DB *sql.DB
}

func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{DB: db}
}

const listingCols = `id, title, location, price, capacity, description, owner_username`

// ==========================
// Create
// ==========================
// Create inserts a listing. Title and location each carry a UNIQUE
// constraint; either collision surfaces as ErrDuplicate.
func (r *ListingRepo) Create(ctx context.Context, l models.Listing) (*models.Listing, error) {
	listing := &models.Listing{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO listings (title, location, price, capacity, description, owner_username)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+listingCols,
		l.Title, l.Location, l.Price, l.Capacity, l.Description, l.OwnerUsername,
	).Scan(&listing.ID, &listing.Title, &listing.Location, &listing.Price,
		&listing.Capacity, &listing.Description, &listing.OwnerUsername)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("listing %q at %q: %w", l.Title, l.Location, ErrDuplicate)
		}
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("owner %q: %w", l.OwnerUsername, ErrBadReference)
		}
		return nil, err
	}
	return listing, nil
}

// ==========================
// Get By Title
// ==========================
func (r *ListingRepo) Get(ctx context.Context, title string) (*models.Listing, error) {
	listing := &models.Listing{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+listingCols+` FROM listings WHERE title = $1`,
		title,
	).Scan(&listing.ID, &listing.Title, &listing.Location, &listing.Price,
		&listing.Capacity, &listing.Description, &listing.OwnerUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("listing %q: %w", title, ErrNotFound)
		}
		return nil, err
	}
	return listing, nil
}

// ==========================
// List (with filters)
// ==========================
// List returns listings ordered by title. Filters become bound WHERE
// clauses; filter values are never concatenated into the query text.
func (r *ListingRepo) List(ctx context.Context, filter models.ListingFilter) ([]models.Listing, error) {
	var where []string
	var args []any

	if filter.Title != nil {
		args = append(args, "%"+*filter.Title+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, "%"+*filter.Location+"%")
		where = append(where, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := `SELECT ` + listingCols + ` FROM listings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY title"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Location, &l.Price,
			&l.Capacity, &l.Description, &l.OwnerUsername); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// ==========================
// Update (partial)
// ==========================
func (r *ListingRepo) Update(ctx context.Context, title string, patch models.ListingPatch) (*models.Listing, error) {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Capacity != nil {
		fields["capacity"] = *patch.Capacity
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}

	setClause, args, err := BuildSetClause(fields, nil)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE listings SET %s WHERE title = $%d RETURNING `+listingCols,
		setClause, len(args)+1)
	args = append(args, title)

	listing := &models.Listing{}
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&listing.ID, &listing.Title, &listing.Location, &listing.Price,
			&listing.Capacity, &listing.Description, &listing.OwnerUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("listing %q: %w", title, ErrNotFound)
		}
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("listing %q: %w", title, ErrDuplicate)
		}
		return nil, err
	}
	return listing, nil
}

// ==========================
// Delete By Title
// ==========================
func (r *ListingRepo) Delete(ctx context.Context, title string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE title = $1`, title)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("listing %q: %w", title, ErrNotFound)
	}
	return nil
}
