package models

// Quote is a single provider's priced offer for an origin/destination
// pair. Immutable once produced by a quote source; it lives only for the
// duration of one search.
type Quote struct {
	ID             string  `json:"id"`
	Provider       string  `json:"provider"`
	Type           string  `json:"type"`
	Price          int64   `json:"price"`
	Currency       string  `json:"currency"`
	EstimatedTime  int     `json:"estimatedTime"` // minutes
	DistanceKm     float64 `json:"distance"`
	AvailableSeats int     `json:"availableSeats"`
}
