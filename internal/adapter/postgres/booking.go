package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/pkg/uuid"
)

// BookingRepo is the append-only booking history store. Rows are only
// ever inserted; status changes live in booking_events.
type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Append(ctx context.Context, b *models.Booking) error {
	if b == nil {
		return errors.New("nil booking")
	}

	const q = `
		INSERT INTO bookings (
			booking_id, user_id, ride_id, provider, vehicle_type,
			origin, destination, price, currency, status,
			driver_name, driver_rating, vehicle_details, vehicle_number,
			estimated_pickup, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`

	start := time.Now()
	_, err := TxorDB(ctx, r.db).Exec(ctx, q,
		b.BookingID,
		b.UserID,
		b.RideID,
		b.Provider,
		b.VehicleType,
		b.Origin,
		b.Destination,
		b.Price,
		b.Currency,
		string(b.Status),
		b.DriverName,
		b.DriverRating,
		b.VehicleDetails,
		b.VehicleNumber,
		b.EstimatedPickup,
		b.CreatedAt,
	)
	r.record("insert_booking", start, err)
	return err
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	const q = `
		SELECT booking_id, user_id, ride_id, provider, vehicle_type,
		       origin, destination, price, currency, status,
		       driver_name, driver_rating, vehicle_details, vehicle_number,
		       estimated_pickup, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC;
	`

	start := time.Now()
	rows, err := TxorDB(ctx, r.db).Query(ctx, q, userID)
	r.record("select_bookings_by_user", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.Booking{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var status string
		if err := rows.Scan(
			&b.BookingID,
			&b.UserID,
			&b.RideID,
			&b.Provider,
			&b.VehicleType,
			&b.Origin,
			&b.Destination,
			&b.Price,
			&b.Currency,
			&status,
			&b.DriverName,
			&b.DriverRating,
			&b.VehicleDetails,
			&b.VehicleNumber,
			&b.EstimatedPickup,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		b.Status = types.BookingStatus(status)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
