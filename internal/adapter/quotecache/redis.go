// Package quotecache keeps each user's most recent quote search in
// Redis so a booking can be matched back to the quote it came from.
package quotecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/pkg/uuid"
)

const (
	quoteKeyPrefix = "quotes:user:%s"

	// quotes go stale quickly; a new search replaces the set anyway
	DefaultTTL = 10 * time.Minute
)

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{redis: client, ttl: ttl}
}

// Store replaces the user's cached quote set with the given one.
// Quotes from a previous search become unreachable.
func (s *Store) Store(ctx context.Context, userID uuid.UUID, quotes []models.Quote) error {
	key := userKey(userID)

	payload, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to encode quotes: %w", err)
	}

	return s.redis.Set(ctx, key, payload, s.ttl).Err()
}

// Lookup finds a quote by id within the user's latest search.
// A missing key or unknown id is reported as types.ErrNotFound.
func (s *Store) Lookup(ctx context.Context, userID uuid.UUID, quoteID string) (*models.Quote, error) {
	val, err := s.redis.Get(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}

	var quotes []models.Quote
	if err := json.Unmarshal([]byte(val), &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode cached quotes: %w", err)
	}

	for i := range quotes {
		if quotes[i].ID == quoteID {
			return &quotes[i], nil
		}
	}

	return nil, types.ErrNotFound
}

func userKey(userID uuid.UUID) string {
	return fmt.Sprintf(quoteKeyPrefix, userID.String())
}
