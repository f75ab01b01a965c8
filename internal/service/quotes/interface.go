package quotes

import (
	"context"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/pkg/uuid"
)

// QuoteCache holds the quotes produced by a user's latest search so a
// subsequent booking can resolve one by id. Storing a new set supersedes
// the previous search.
type QuoteCache interface {
	Store(ctx context.Context, userID uuid.UUID, quotes []models.Quote) error
	Lookup(ctx context.Context, userID uuid.UUID, quoteID string) (*models.Quote, error)
}
