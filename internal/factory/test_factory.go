package factory

import (
	"time"

	"github.com/mcoot/matchthree/internal/dependencies/mocks"
	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/storage/memory"
	"github.com/mcoot/matchthree/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp(height, width int) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	cfg, err := normalize(Config{Height: height, Width: width, Logger: testutil.NopLogger()})
	if err != nil {
		panic(err)
	}
	app, err := newWithDependencies(cfg, memory.New(), mockClock, mockRandom)
	if err != nil {
		panic(err)
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueGrid queues the gems of the next random grid, row by row
func (t *TestApp) QueueGrid(rows [][]model.Gem) {
	for _, row := range rows {
		for _, gem := range row {
			t.MockRandom.QueueIntn(int(gem))
		}
	}
}
