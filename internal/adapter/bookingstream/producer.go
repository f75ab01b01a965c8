// Package bookingstream publishes confirmed bookings to RabbitMQ for
// downstream consumers (notifications, analytics).
package bookingstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/pkg/logger"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
	"github.com/fareline/fareline/pkg/metrics"
	"github.com/fareline/fareline/pkg/rabbit"
)

const (
	BookingExchange = "booking_topic"

	serviceName = "fareline"
)

type Producer struct {
	client   *rabbit.RabbitMQ
	exchange string

	l logger.Logger
}

func NewProducer(client *rabbit.RabbitMQ, log logger.Logger) (*Producer, error) {
	p := &Producer{
		client:   client,
		exchange: BookingExchange,

		l: log,
	}

	if err := p.declareExchange(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Producer) declareExchange() error {
	return p.client.Channel.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil)
}

// PublishConfirmed publishes a booking confirmation event with routing
// key 'booking.confirmed.{provider}'. Callers treat failures as
// non-fatal, the booking itself is already committed.
func (p *Producer) PublishConfirmed(ctx context.Context, b *models.Booking) error {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_booking_confirmed")
	ctx = wrap.WithBookingID(ctx, b.BookingID)

	if err := p.client.EnsureConnection(ctx); err != nil {
		p.l.Error(ctx, "ensure connection failed", err)
		metrics.RecordRabbitMQPublish(serviceName, p.exchange, err)
		return wrap.Error(ctx, err)
	}

	msg := models.BookingConfirmedMessage{
		BookingID:       b.BookingID,
		UserID:          b.UserID.String(),
		RideID:          b.RideID,
		Provider:        b.Provider,
		VehicleType:     b.VehicleType,
		Origin:          b.Origin,
		Destination:     b.Destination,
		Price:           b.Price,
		Currency:        b.Currency,
		Status:          string(b.Status),
		EstimatedPickup: b.EstimatedPickup,
		ConfirmedAt:     b.CreatedAt,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	key := fmt.Sprintf("booking.confirmed.%s", b.Provider)

	err = retry(3, time.Second, func() error {
		return p.client.Channel.PublishWithContext(
			ctx,
			p.exchange, // exchange
			key,        // routing key
			false,      // mandatory
			false,      // immediate
			amqp091.Publishing{
				ContentType:   "application/json",
				CorrelationId: b.BookingID,
				Body:          body,
				Timestamp:     time.Now(),
			},
		)
	})
	metrics.RecordRabbitMQPublish(serviceName, p.exchange, err)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to publish booking event: %w", err))
	}

	return nil
}

func retry(n int, sleep time.Duration, fn func() error) error {
	var err error
	for range n {
		if err = fn(); err == nil {
			return nil
		}
		time.Sleep(sleep)
	}
	return err
}
