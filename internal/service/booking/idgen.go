package booking

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator issues process-unique booking ids of the form
// BOOK-<unix-ms>, appending a monotonic sequence number when several
// bookings land in the same millisecond.
type IDGenerator struct {
	mu     sync.Mutex
	lastMs int64
	seq    int
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

func (g *IDGenerator) Next(now time.Time) string {
	ms := now.UnixMilli()

	g.mu.Lock()
	defer g.mu.Unlock()

	if ms <= g.lastMs {
		// same millisecond, or the wall clock stepped back: keep the
		// last timestamp and disambiguate with the sequence counter
		ms = g.lastMs
		g.seq++
	} else {
		g.lastMs = ms
		g.seq = 0
	}

	if g.seq == 0 {
		return fmt.Sprintf("BOOK-%d", ms)
	}
	return fmt.Sprintf("BOOK-%d-%d", ms, g.seq)
}
