package booking

import (
	"context"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/pkg/uuid"
)

// HistoryRepo is the append-only per-user booking store.
type HistoryRepo interface {
	Append(ctx context.Context, b *models.Booking) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
}

// EventRepo records booking lifecycle events alongside the booking row.
type EventRepo interface {
	Append(ctx context.Context, bookingID string, status string) error
}

// QuoteResolver resolves a quote id from the user's latest search.
// A miss must be reported as types.ErrNotFound.
type QuoteResolver interface {
	Lookup(ctx context.Context, userID uuid.UUID, quoteID string) (*models.Quote, error)
}

// EventPublisher pushes confirmed bookings onto the event stream.
// Publishing is best-effort; failures never roll back a booking.
type EventPublisher interface {
	PublishConfirmed(ctx context.Context, b *models.Booking) error
}
