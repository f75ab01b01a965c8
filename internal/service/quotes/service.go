package quotes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/internal/provider"
	"github.com/fareline/fareline/pkg/logger"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
	"github.com/fareline/fareline/pkg/metrics"
	"github.com/fareline/fareline/pkg/uuid"
)

const serviceName = "fareline"

// Service aggregates quotes across every registered provider source.
type Service struct {
	sources []provider.QuoteSource
	cache   QuoteCache

	// per-provider call budget; a source that does not answer within it
	// is dropped from the result set
	timeout time.Duration

	log logger.Logger
}

func NewService(sources []provider.QuoteSource, cache QuoteCache, timeout time.Duration, log logger.Logger) *Service {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Service{
		sources: sources,
		cache:   cache,
		timeout: timeout,
		log:     log,
	}
}

// Search fans out to all registered quote sources concurrently and merges
// their results into one list, ordered by source registration. A failed or
// timed-out source only shrinks the result; Search fails hard only when
// origin/destination are missing or when every source failed.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, origin, destination string) ([]models.Quote, error) {
	ctx = wrap.WithAction(ctx, "search_quotes")

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, fmt.Errorf("%w: origin and destination are required", types.ErrInvalidRequest)
	}

	results := make([][]models.Quote, len(s.sources))

	var (
		wg     sync.WaitGroup
		failed atomic.Int64
	)
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src provider.QuoteSource) {
			defer wg.Done()

			qs, err := s.querySource(ctx, src, origin, destination)
			if err != nil {
				// partial-result tolerance: log and move on
				failed.Add(1)
				s.log.Warn(ctx, "quote source failed, omitting its quotes",
					"provider", src.Name(),
					"reason", err.Error(),
				)
				return
			}
			results[i] = qs
		}(i, src)
	}
	wg.Wait()

	merged := make([]models.Quote, 0, len(s.sources))
	for _, qs := range results {
		merged = append(merged, qs...)
	}

	// A source answering with zero quotes is a valid answer; only a full
	// wipe-out of sources is an outage.
	if len(s.sources) > 0 && failed.Load() == int64(len(s.sources)) {
		return nil, wrap.Error(ctx, types.ErrProvidersUnavailable)
	}

	metrics.QuotesReturned.WithLabelValues(serviceName).Observe(float64(len(merged)))

	// Cache failures degrade to a cache miss at booking time, never fail
	// the search itself.
	if s.cache != nil {
		if err := s.cache.Store(ctx, userID, merged); err != nil {
			s.log.Warn(ctx, "failed to cache search quotes", "reason", err.Error())
		}
	}

	s.log.Debug(ctx, "search completed",
		"origin", origin,
		"destination", destination,
		"quotes", len(merged),
	)

	return merged, nil
}

// querySource calls one provider with a bounded timeout, retrying once.
func (s *Service) querySource(ctx context.Context, src provider.QuoteSource, origin, destination string) ([]models.Quote, error) {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)

		start := time.Now()
		qs, err := src.Quotes(callCtx, origin, destination)
		metrics.RecordProviderQuote(serviceName, src.Name(), err, time.Since(start))
		cancel()

		if err == nil {
			return qs, nil
		}
		lastErr = err

		// no point retrying when the parent request is gone
		if ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}
