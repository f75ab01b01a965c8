package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/pkg/logger"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
	"github.com/fareline/fareline/pkg/metrics"
	"github.com/fareline/fareline/pkg/trm"
	"github.com/fareline/fareline/pkg/uuid"
)

const serviceName = "fareline"

// Placeholder dispatch details. A real system would obtain these from
// the provider's dispatch API at confirmation time.
const (
	pickupLeadTime = 5 * time.Minute

	placeholderDriverName   = "John Doe"
	placeholderDriverRating = 4.8
	placeholderVehicle      = "White Toyota Corolla"
	placeholderVehicleNum   = "DL 01 AB 1234"
)

// Service confirms bookings against selected quotes and serves the
// per-user ride history.
type Service struct {
	history HistoryRepo
	events  EventRepo
	quotes  QuoteResolver
	stream  EventPublisher
	txm     trm.TxManager
	idgen   *IDGenerator

	now func() time.Time

	log logger.Logger
}

func NewService(history HistoryRepo, events EventRepo, quotes QuoteResolver, stream EventPublisher, txm trm.TxManager, log logger.Logger) *Service {
	return &Service{
		history: history,
		events:  events,
		quotes:  quotes,
		stream:  stream,
		txm:     txm,
		idgen:   NewIDGenerator(),
		now:     time.Now,
		log:     log,
	}
}

// Confirm allocates a booking for the selected quote and appends it to the
// user's history. Two identical confirms are two distinct bookings; there
// is deliberately no idempotency key on this path.
func (s *Service) Confirm(ctx context.Context, userID uuid.UUID, req models.BookingRequest) (*models.Booking, error) {
	ctx = wrap.WithAction(ctx, "confirm_booking")

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	b := &models.Booking{
		BookingID:       s.idgen.Next(now),
		UserID:          userID,
		RideID:          req.RideID,
		Provider:        req.Provider,
		Origin:          req.Origin,
		Destination:     req.Destination,
		Status:          types.BookingConfirmed,
		DriverName:      placeholderDriverName,
		DriverRating:    placeholderDriverRating,
		VehicleDetails:  placeholderVehicle,
		VehicleNumber:   placeholderVehicleNum,
		EstimatedPickup: now.Add(pickupLeadTime),
		CreatedAt:       now,
	}

	ctx = wrap.WithBookingID(ctx, b.BookingID)

	// Enrich from the cached search when the quote is still around. The
	// cache expiring between search and book is not an error: the
	// original flow never validated the quote either.
	if s.quotes != nil {
		if q, err := s.quotes.Lookup(ctx, userID, req.RideID); err == nil {
			b.VehicleType = q.Type
			b.Price = q.Price
			b.Currency = q.Currency
		} else if !errors.Is(err, types.ErrNotFound) {
			s.log.Warn(ctx, "quote cache lookup failed", "reason", err.Error())
		}
	}

	err := s.txm.Do(ctx, func(ctx context.Context) error {
		if err := s.history.Append(ctx, b); err != nil {
			return fmt.Errorf("append booking: %w", err)
		}
		if s.events != nil {
			if err := s.events.Append(ctx, b.BookingID, b.Status.String()); err != nil {
				return fmt.Errorf("append booking event: %w", err)
			}
		}
		return nil
	})
	metrics.RecordBooking(serviceName, b.Provider, err)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	// Best-effort: a lost event never fails the booking.
	if s.stream != nil {
		if err := s.stream.PublishConfirmed(ctx, b); err != nil {
			s.log.Warn(ctx, "failed to publish booking event", "reason", err.Error())
		}
	}

	s.log.Info(ctx, "booking confirmed",
		"provider", b.Provider,
		"origin", b.Origin,
		"destination", b.Destination,
	)

	return b, nil
}

// History returns the user's bookings, most recent first. A user can never
// observe another user's bookings: the repo filters on user id.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	ctx = wrap.WithAction(ctx, "list_history")

	list, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("list history: %w", err))
	}
	return list, nil
}

func validateRequest(req models.BookingRequest) error {
	var missing []string
	if strings.TrimSpace(req.RideID) == "" {
		missing = append(missing, "rideId")
	}
	if strings.TrimSpace(req.Provider) == "" {
		missing = append(missing, "provider")
	}
	if strings.TrimSpace(req.Origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(req.Destination) == "" {
		missing = append(missing, "destination")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", types.ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}
