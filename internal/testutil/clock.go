package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// FixedClock returns a fake clock set to 2024-01-15 10:30:00 UTC, outside
// daylight saving time in every northern zone.
func FixedClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
}

// SummerClock returns a fake clock set to 2024-07-15 10:30:00 UTC.
func SummerClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC))
}

// StubIDGenerator returns sequential IDs: "id-1", "id-2", etc.
type StubIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("id-%d", g.counter)
}
