package mocks

import (
	"github.com/manhuntgame/manhunt/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing. Queued game
// codes are returned in order; once the queue is exhausted it keeps
// returning the fallback so code-collision retry loops terminate.
type MockRandom struct {
	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// Fallback is returned once the queue runs out
	Fallback string
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{Fallback: "ZZZZZZ"}
}

// String returns the next queued result, or the fallback if none remain
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		return r.Fallback
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}
