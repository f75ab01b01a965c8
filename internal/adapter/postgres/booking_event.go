package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingEventRepo records booking lifecycle events. The CONFIRMED
// event is written in the same transaction as the booking row.
type BookingEventRepo struct {
	db *pgxpool.Pool
}

func NewBookingEventRepo(db *pgxpool.Pool) *BookingEventRepo {
	return &BookingEventRepo{db: db}
}

func (r *BookingEventRepo) Append(ctx context.Context, bookingID, status string) error {
	const q = `
		INSERT INTO booking_events (booking_id, status, created_at)
		VALUES ($1, $2, $3);
	`

	start := time.Now()
	_, err := TxorDB(ctx, r.db).Exec(ctx, q, bookingID, status, time.Now().UTC())
	r.record("insert_booking_event", start, err)
	return err
}
