package booking

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestIDGeneratorPrefix(t *testing.T) {
	g := NewIDGenerator()
	id := g.Next(time.Now())
	if !strings.HasPrefix(id, "BOOK-") {
		t.Fatalf("expected BOOK- prefix, got %q", id)
	}
}

func TestIDGeneratorSameMillisecond(t *testing.T) {
	g := NewIDGenerator()
	now := time.Now()

	a := g.Next(now)
	b := g.Next(now)
	c := g.Next(now)

	if a == b || b == c || a == c {
		t.Fatalf("ids within one millisecond must be distinct: %q %q %q", a, b, c)
	}
}

func TestIDGeneratorClockStepBack(t *testing.T) {
	g := NewIDGenerator()
	now := time.Now()

	a := g.Next(now)
	b := g.Next(now.Add(-time.Second))

	if a == b {
		t.Fatalf("ids must stay unique when the clock steps back: %q", a)
	}
}

func TestIDGeneratorConcurrent(t *testing.T) {
	g := NewIDGenerator()
	const n = 200

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- g.Next(time.Now())
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
