package mocks

import (
	"time"

	"github.com/mcoot/edgepuzzle/internal/dependencies/clock"
)

// MockClock is a Clock that only moves when told to
type MockClock struct {
	CurrentTime time.Time

	// SinceResult, when non-zero, is returned from Since instead of the
	// difference from CurrentTime
	SinceResult time.Duration
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Since returns SinceResult if set, otherwise CurrentTime minus t
func (c *MockClock) Since(t time.Time) time.Duration {
	if c.SinceResult != 0 {
		return c.SinceResult
	}
	return c.CurrentTime.Sub(t)
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}
