package provider

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/fareline/fareline/internal/domain/models"
)

var ErrSourceDown = errors.New("provider temporarily unavailable")

// MockSource serves quotes from a static catalog, simulating a real
// provider API with price/ETA jitter and optional latency and flakiness.
type MockSource struct {
	name    string
	catalog []models.Quote

	// simulation knobs
	Latency     time.Duration
	FailureRate float64 // 0..1, probability a call fails
}

func NewMockSource(name string, catalog []models.Quote) *MockSource {
	return &MockSource{
		name:    name,
		catalog: catalog,
	}
}

func (s *MockSource) Name() string { return s.name }

// Quotes returns the catalog with independent ±10% jitter applied to
// price and ETA. Provider, vehicle class, distance, and capacity are
// never jittered.
func (s *MockSource) Quotes(ctx context.Context, origin, destination string) ([]models.Quote, error) {
	if s.Latency > 0 {
		select {
		case <-time.After(s.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.FailureRate > 0 && rand.Float64() < s.FailureRate {
		return nil, ErrSourceDown
	}

	out := make([]models.Quote, len(s.catalog))
	for i, q := range s.catalog {
		q.Price = jitterPrice(q.Price)
		q.EstimatedTime = jitterMinutes(q.EstimatedTime)
		out[i] = q
	}
	return out, nil
}

// jitterPrice scales by a uniform factor in [0.9, 1.1) and truncates,
// matching the behavior real provider estimates tend to show between
// repeated searches.
func jitterPrice(base int64) int64 {
	return int64(float64(base) * (0.9 + rand.Float64()*0.2))
}

func jitterMinutes(base int) int {
	m := int(float64(base) * (0.9 + rand.Float64()*0.2))
	if m < 1 {
		m = 1
	}
	return m
}

// DefaultSources returns the demo provider set: Uber, Ola, and Rapido
// catalogs for the Gurugram/Delhi area.
func DefaultSources() []QuoteSource {
	return []QuoteSource{
		NewMockSource("Uber", []models.Quote{
			{ID: "1", Provider: "Uber", Type: "UberX", Price: 250, Currency: "INR", EstimatedTime: 15, DistanceKm: 5.2, AvailableSeats: 4},
			{ID: "4", Provider: "Uber", Type: "Premier", Price: 350, Currency: "INR", EstimatedTime: 15, DistanceKm: 5.2, AvailableSeats: 4},
		}),
		NewMockSource("Ola", []models.Quote{
			{ID: "2", Provider: "Ola", Type: "Mini", Price: 230, Currency: "INR", EstimatedTime: 18, DistanceKm: 5.2, AvailableSeats: 4},
			{ID: "5", Provider: "Ola", Type: "Prime", Price: 320, Currency: "INR", EstimatedTime: 16, DistanceKm: 5.2, AvailableSeats: 4},
		}),
		NewMockSource("Rapido", []models.Quote{
			{ID: "3", Provider: "Rapido", Type: "Bike", Price: 120, Currency: "INR", EstimatedTime: 12, DistanceKm: 5.2, AvailableSeats: 1},
		}),
	}
}
