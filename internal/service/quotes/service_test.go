package quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/internal/provider"
	"github.com/fareline/fareline/pkg/logger"
	"github.com/fareline/fareline/pkg/uuid"
)

type memCache struct {
	stored map[uuid.UUID][]models.Quote
}

func newMemCache() *memCache {
	return &memCache{stored: make(map[uuid.UUID][]models.Quote)}
}

func (c *memCache) Store(ctx context.Context, userID uuid.UUID, quotes []models.Quote) error {
	c.stored[userID] = quotes
	return nil
}

func (c *memCache) Lookup(ctx context.Context, userID uuid.UUID, quoteID string) (*models.Quote, error) {
	for _, q := range c.stored[userID] {
		if q.ID == quoteID {
			return &q, nil
		}
	}
	return nil, types.ErrNotFound
}

func testLogger() logger.Logger {
	return logger.InitLogger("test", logger.LevelError)
}

func TestSearchReturnsAllProviderQuotes(t *testing.T) {
	sources := provider.DefaultSources()
	svc := NewService(sources, newMemCache(), time.Second, testLogger())

	quotes, err := svc.Search(context.Background(), uuid.New(), "Cyber City, Gurugram", "Connaught Place, Delhi")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(quotes) != 5 {
		t.Fatalf("expected 5 quotes, got %d", len(quotes))
	}

	registered := map[string]bool{"Uber": true, "Ola": true, "Rapido": true}
	for _, q := range quotes {
		if !registered[q.Provider] {
			t.Errorf("provider %q not in the registered set", q.Provider)
		}
		if q.Price < 0 {
			t.Errorf("%s/%s: negative price", q.Provider, q.Type)
		}
		if q.EstimatedTime <= 0 {
			t.Errorf("%s/%s: non-positive ETA", q.Provider, q.Type)
		}
		if q.Price < 108 || q.Price > 420 {
			t.Errorf("%s/%s: price %d outside expected jitter envelope", q.Provider, q.Type, q.Price)
		}
	}
}

func TestSearchRejectsEmptyEndpoints(t *testing.T) {
	svc := NewService(provider.DefaultSources(), newMemCache(), time.Second, testLogger())

	cases := []struct{ origin, destination string }{
		{"", "X"},
		{"X", ""},
		{"", ""},
		{"   ", "X"},
	}
	for _, c := range cases {
		_, err := svc.Search(context.Background(), uuid.New(), c.origin, c.destination)
		if !errors.Is(err, types.ErrInvalidRequest) {
			t.Errorf("search(%q, %q): expected ErrInvalidRequest, got %v", c.origin, c.destination, err)
		}
	}
}

func TestSearchToleratesPartialFailure(t *testing.T) {
	healthy := provider.NewMockSource("Healthy", []models.Quote{
		{ID: "h1", Provider: "Healthy", Type: "Std", Price: 100, Currency: "INR", EstimatedTime: 10, DistanceKm: 3, AvailableSeats: 4},
	})
	broken := provider.NewMockSource("Broken", nil)
	broken.FailureRate = 1

	svc := NewService([]provider.QuoteSource{healthy, broken}, newMemCache(), time.Second, testLogger())

	quotes, err := svc.Search(context.Background(), uuid.New(), "A", "B")
	if err != nil {
		t.Fatalf("partial failure must not fail the search: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Provider != "Healthy" {
		t.Fatalf("expected only the healthy provider's quote, got %+v", quotes)
	}
}

func TestSearchFailsWhenAllProvidersDown(t *testing.T) {
	broken := provider.NewMockSource("Broken", nil)
	broken.FailureRate = 1

	svc := NewService([]provider.QuoteSource{broken}, newMemCache(), time.Second, testLogger())

	_, err := svc.Search(context.Background(), uuid.New(), "A", "B")
	if !errors.Is(err, types.ErrProvidersUnavailable) {
		t.Fatalf("expected ErrProvidersUnavailable, got %v", err)
	}
}

func TestSearchAllowsEmptySuccess(t *testing.T) {
	// every source answers, none has inventory: a valid empty result,
	// not an outage
	empty := provider.NewMockSource("Empty", nil)
	alsoEmpty := provider.NewMockSource("AlsoEmpty", []models.Quote{})

	svc := NewService([]provider.QuoteSource{empty, alsoEmpty}, newMemCache(), time.Second, testLogger())

	quotes, err := svc.Search(context.Background(), uuid.New(), "A", "B")
	if err != nil {
		t.Fatalf("empty catalogs must not fail the search: %v", err)
	}
	if len(quotes) != 0 {
		t.Fatalf("expected no quotes, got %d", len(quotes))
	}
}

func TestSearchDropsSlowProvider(t *testing.T) {
	fast := provider.NewMockSource("Fast", []models.Quote{
		{ID: "f1", Provider: "Fast", Type: "Std", Price: 90, Currency: "INR", EstimatedTime: 8, DistanceKm: 2, AvailableSeats: 4},
	})
	slow := provider.NewMockSource("Slow", []models.Quote{
		{ID: "s1", Provider: "Slow", Type: "Std", Price: 80, Currency: "INR", EstimatedTime: 9, DistanceKm: 2, AvailableSeats: 4},
	})
	slow.Latency = 300 * time.Millisecond

	svc := NewService([]provider.QuoteSource{fast, slow}, newMemCache(), 20*time.Millisecond, testLogger())

	quotes, err := svc.Search(context.Background(), uuid.New(), "A", "B")
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 1 || quotes[0].Provider != "Fast" {
		t.Fatalf("expected the slow provider to be dropped, got %+v", quotes)
	}
}

func TestSearchCachesQuotesPerUser(t *testing.T) {
	cache := newMemCache()
	svc := NewService(provider.DefaultSources(), cache, time.Second, testLogger())

	user := uuid.New()
	quotes, err := svc.Search(context.Background(), user, "A", "B")
	if err != nil {
		t.Fatal(err)
	}

	got, err := cache.Lookup(context.Background(), user, quotes[0].ID)
	if err != nil {
		t.Fatalf("lookup cached quote: %v", err)
	}
	if got.Provider != quotes[0].Provider {
		t.Fatalf("cache returned wrong quote: %+v", got)
	}

	// another user's cache stays empty
	if _, err := cache.Lookup(context.Background(), uuid.New(), quotes[0].ID); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected miss for another user, got %v", err)
	}
}
