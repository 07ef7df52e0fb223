package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/crucial707/sharebnb/internal/models"
)

// ==========================
// BookingRepo
// ==========================
type BookingRepo struct {
	DB *sql.DB
}

func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{DB: db}
}

var bookingColMap = map[string]string{
	"renterUsername": "renter_username",
	"listingId":      "listing_id",
	"startDate":      "start_date",
	"endDate":        "end_date",
}

const bookingCols = `id, renter_username, listing_id, start_date, end_date`

// ==========================
// Create
// ==========================
// Create inserts a booking. The UNIQUE(listing_id, start_date) constraint
// rejects a second booking of the same listing on the same start date.
func (r *BookingRepo) Create(ctx context.Context, b models.Booking) (*models.Booking, error) {
	booking := &models.Booking{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO bookings (renter_username, listing_id, start_date, end_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+bookingCols,
		b.RenterUsername, b.ListingID, b.StartDate, b.EndDate,
	).Scan(&booking.ID, &booking.RenterUsername, &booking.ListingID,
		&booking.StartDate, &booking.EndDate)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("booking for listing %d on %s: %w",
				b.ListingID, b.StartDate, ErrDuplicate)
		}
		if IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("renter %q or listing %d: %w",
				b.RenterUsername, b.ListingID, ErrBadReference)
		}
		return nil, err
	}
	return booking, nil
}

// ==========================
// Get By ID
// ==========================
func (r *BookingRepo) Get(ctx context.Context, id int) (*models.Booking, error) {
	booking := &models.Booking{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = $1`,
		id,
	).Scan(&booking.ID, &booking.RenterUsername, &booking.ListingID,
		&booking.StartDate, &booking.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return booking, nil
}

// ==========================
// List Bookings
// ==========================
func (r *BookingRepo) List(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+bookingCols+` FROM bookings ORDER BY listing_id, start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.RenterUsername, &b.ListingID,
			&b.StartDate, &b.EndDate); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ==========================
// Update (partial)
// ==========================
func (r *BookingRepo) Update(ctx context.Context, id int, patch models.BookingPatch) (*models.Booking, error) {
	fields := map[string]any{}
	if patch.RenterUsername != nil {
		fields["renterUsername"] = *patch.RenterUsername
	}
	if patch.ListingID != nil {
		fields["listingId"] = *patch.ListingID
	}
	if patch.StartDate != nil {
		fields["startDate"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		fields["endDate"] = *patch.EndDate
	}

	setClause, args, err := BuildSetClause(fields, bookingColMap)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`UPDATE bookings SET %s WHERE id = $%d RETURNING `+bookingCols,
		setClause, len(args)+1)
	args = append(args, id)

	booking := &models.Booking{}
	err = r.DB.QueryRowContext(ctx, query, args...).
		Scan(&booking.ID, &booking.RenterUsername, &booking.ListingID,
			&booking.StartDate, &booking.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrDuplicate)
		}
		return nil, err
	}
	return booking, nil
}

// ==========================
// Delete By ID
// ==========================
func (r *BookingRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return nil
}

// ==========================
// PurgeEnded (retention)
// ==========================
// PurgeEnded deletes bookings whose end date is before the cutoff. Called by
// the retention scheduler; returns how many rows went away.
func (r *BookingRepo) PurgeEnded(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM bookings WHERE end_date < $1`, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
