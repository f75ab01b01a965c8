package provider

import (
	"context"

	"github.com/fareline/fareline/internal/domain/models"
)

// QuoteSource is a single ride-hailing provider able to price an
// origin/destination pair. Implementations must be safe for concurrent
// use; one search fans out to every registered source at once.
type QuoteSource interface {
	Name() string
	Quotes(ctx context.Context, origin, destination string) ([]models.Quote, error)
}
