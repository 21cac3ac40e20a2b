package factory

import (
	"time"

	"github.com/manhuntgame/manhunt/internal/dependencies/mocks"
	"github.com/manhuntgame/manhunt/internal/storage/memory"
	"github.com/manhuntgame/manhunt/internal/testutil"
)

// TestApp wraps App with mocked dependencies exposed for assertions
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewForTesting creates an App backed by in-memory storage with a mocked
// clock and code generator.
func NewForTesting() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(memory.New(), mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
