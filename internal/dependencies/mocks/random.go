package mocks

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mcoot/edgepuzzle/internal/dependencies/random"
)

// MockRandom replays queued results. It is safe to share between the
// goroutines an HTTP test server spawns.
type MockRandom struct {
	mu sync.Mutex

	intn      []int
	intnIndex int
	bounds    []int

	strings     []string
	stringIndex int
}

var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining
func (r *MockRandom) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bounds = append(r.bounds, n)
	if r.intnIndex >= len(r.intn) {
		return 0
	}
	result := r.intn[r.intnIndex]
	r.intnIndex++
	return result
}

// String returns the next queued result, or empty string if none remaining
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stringIndex >= len(r.strings) {
		return ""
	}
	result := r.strings[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intn = append(r.intn, values...)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strings = append(r.strings, values...)
}

// QueueShuffle queues the draws a bank shuffle makes so that slot i ends up
// holding the piece that was in slot order[i], then turned turns[i] times.
// The shuffle fills slots from the last one, each taking an index into the
// pieces not yet placed. Missing turns are zero.
func (r *MockRandom) QueueShuffle(order []int, turns ...int) {
	remaining := make([]int, len(order))
	for i := range remaining {
		remaining[i] = i
	}

	draws := make([]int, 0, 2*len(order))
	for i := len(order) - 1; i >= 0; i-- {
		idx := slices.Index(remaining, order[i])
		if idx < 0 {
			panic(fmt.Sprintf("QueueShuffle: %v is not a permutation", order))
		}
		draws = append(draws, idx)
		remaining = slices.Delete(remaining, idx, idx+1)
	}
	for i := range order {
		t := 0
		if i < len(turns) {
			t = turns[i]
		}
		draws = append(draws, t)
	}

	r.QueueIntn(draws...)
}

// IntnBounds returns the n passed to every Intn call so far
func (r *MockRandom) IntnBounds() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.bounds)
}

// Reset clears all queued results and recorded bounds
func (r *MockRandom) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intn = nil
	r.intnIndex = 0
	r.bounds = nil
	r.strings = nil
	r.stringIndex = 0
}
