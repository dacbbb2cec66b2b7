package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/matchthree/internal/dependencies/mocks"
	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/services/scoring"
	"github.com/mcoot/matchthree/internal/testutil"
)

const (
	G = model.GemGreen
	R = model.GemRed
	Y = model.GemYellow
	B = model.GemBlue
	W = model.GemWhite
	P = model.GemPink
	C = model.GemCyan
)

type ControllerSuite struct {
	suite.Suite
	scoringService *scoring.Service
	clock          *mocks.MockClock
	random         *mocks.MockRandom
	events         []model.Event
	ctx            context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.scoringService = scoring.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.events = nil
	s.ctx = context.Background()
}

func (s *ControllerSuite) newController(rows [][]model.Gem) *Controller {
	grid, err := model.NewGridFromRows(rows, s.random)
	s.Require().NoError(err)

	s.random.QueueString("SESSION00001")
	cfg := DefaultConfig()
	cfg.CascadePause = 500 * time.Millisecond
	c := NewController(grid, s.scoringService, s.clock, s.random, cfg, testutil.NopLogger())
	c.Subscribe(func(event model.Event) {
		s.events = append(s.events, event)
	})
	return c
}

// cleanRows has no match, and swapping (2,2) with (3,2) completes a red row
func cleanRows() [][]model.Gem {
	return [][]model.Gem{
		{R, G, B, Y},
		{G, B, Y, R},
		{R, R, G, B},
		{B, Y, R, G},
	}
}

func (s *ControllerSuite) eventTypes() []model.EventType {
	types := make([]model.EventType, len(s.events))
	for i, e := range s.events {
		types[i] = e.Type
	}
	return types
}

// NewController tests

func (s *ControllerSuite) TestNewControllerStartsIdle() {
	c := s.newController(cleanRows())

	session := c.Session()
	s.Equal(model.SessionID("SESSION00001"), session.ID)
	s.Equal(4, session.Height)
	s.Equal(4, session.Width)
	s.Equal(s.clock.Now(), session.StartedAt)
	s.Zero(session.Score)
	s.Equal(model.TurnStateIdle, c.State())
}

// Stabilize tests

func (s *ControllerSuite) TestStabilizeCleanGridNeedsNoPass() {
	c := s.newController(cleanRows())

	passes, err := c.Stabilize(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, passes)
	s.Equal([]model.EventType{model.EventGridStabilized}, s.eventTypes())
}

func (s *ControllerSuite) TestStabilizeRemovesInitialMatchesWithoutScoring() {
	c := s.newController([][]model.Gem{
		{R, R, R},
		{G, B, Y},
		{B, Y, G},
	})
	s.random.QueueIntn(int(W), int(P), int(C))

	passes, err := c.Stabilize(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, passes)
	s.Equal([]model.Gem{W, P, C}, c.Grid().Row(0))
	s.Zero(c.Session().Score)

	cells, _ := c.Grid().ScanMatches()
	s.Empty(cells)
}

func (s *ControllerSuite) TestStabilizeGivesUpAfterMaxAttempts() {
	grid, err := model.NewFilledGrid(3, 3, G, s.random)
	s.Require().NoError(err)
	// Every refill is green, so the grid can never clean itself
	s.random.Fallback = int(G)

	c := NewController(grid, s.scoringService, s.clock, s.random, Config{MaxStabilizeAttempts: 5}, testutil.NopLogger())

	passes, err := c.Stabilize(s.ctx)
	s.ErrorIs(err, model.ErrGridNotStable)
	s.Equal(5, passes)
}

func (s *ControllerSuite) TestStabilizeHonoursCancelledContext() {
	c := s.newController(cleanRows())
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := c.Stabilize(ctx)
	s.ErrorIs(err, context.Canceled)
}

// Swap tests

func (s *ControllerSuite) TestSwapAcceptedSingleCascade() {
	c := s.newController(cleanRows())
	s.random.QueueIntn(int(W), int(P), int(C))

	result, err := c.Swap(s.ctx, model.Position{Row: 2, Col: 2}, model.Position{Row: 3, Col: 2})
	s.Require().NoError(err)

	s.Equal([]model.Match{{Gem: R, Length: 3, Start: model.Position{Row: 2, Col: 0}, Horizontal: true}}, result.Matches)
	s.Equal(1, result.Cascades)
	s.InDelta(1.0, result.Score, 1e-9)
	s.InDelta(1.0, result.TotalScore, 1e-9)

	grid := c.Grid()
	s.Equal([]model.Gem{W, P, C, Y}, grid.Row(0))
	s.Equal([]model.Gem{R, G, B, R}, grid.Row(1))
	s.Equal([]model.Gem{G, B, Y, B}, grid.Row(2))
	s.Equal([]model.Gem{B, Y, G, G}, grid.Row(3))

	s.Equal(model.TurnStateIdle, c.State())
	s.Equal(1, c.Session().Turns)
	s.Empty(s.clock.Sleeps)
	s.Equal([]model.EventType{model.EventCascadeStep, model.EventTurnComplete}, s.eventTypes())
}

func (s *ControllerSuite) TestSwapCascadesIntoRefilledMatch() {
	c := s.newController(cleanRows())
	// Level 0 refills the top of columns 0-2 with yellow, completing row 0
	s.random.QueueIntn(int(Y), int(Y), int(Y), int(W), int(P), int(C), int(W))

	result, err := c.Swap(s.ctx, model.Position{Row: 3, Col: 2}, model.Position{Row: 2, Col: 2})
	s.Require().NoError(err)

	s.Equal([]model.Match{
		{Gem: R, Length: 3, Start: model.Position{Row: 2, Col: 0}, Horizontal: true},
		{Gem: Y, Length: 4, Start: model.Position{Row: 0, Col: 0}, Horizontal: true},
	}, result.Matches)
	s.Equal(2, result.Cascades)
	s.InDelta(1.0+16.0/9.0, result.Score, 1e-9)
	s.Equal([]model.Gem{W, P, C, W}, c.Grid().Row(0))

	// Only one pause: between the two cascade steps
	s.Equal([]time.Duration{500 * time.Millisecond}, s.clock.Sleeps)

	s.Equal([]model.EventType{model.EventCascadeStep, model.EventCascadeStep, model.EventTurnComplete}, s.eventTypes())
	step := s.events[1].Payload.(model.CascadeStepPayload)
	s.Equal(1, step.Level)
	s.Len(step.Cells, 4)
	s.Equal(model.SessionID("SESSION00001"), s.events[1].SessionID)

	session := c.Session()
	s.Equal(2, session.Cascades)
	s.InDelta(1.0+16.0/9.0, session.BestTurn, 1e-9)
}

func (s *ControllerSuite) TestSwapAccumulatesSessionScore() {
	c := s.newController(cleanRows())
	s.random.QueueIntn(int(W), int(P), int(C))

	_, err := c.Swap(s.ctx, model.Position{Row: 2, Col: 2}, model.Position{Row: 3, Col: 2})
	s.Require().NoError(err)

	// Grid is now:
	// W P C Y
	// R G B R
	// G B Y B
	// B Y G G
	_, err = c.Swap(s.ctx, model.Position{Row: 1, Col: 3}, model.Position{Row: 2, Col: 3})
	s.ErrorIs(err, model.ErrNoMatch)

	session := c.Session()
	s.Equal(1, session.Turns)
	s.Equal(1, session.Rejected)
	s.InDelta(1.0, session.Score, 1e-9)
}

func (s *ControllerSuite) TestSwapRejectedIsReverted() {
	c := s.newController(cleanRows())
	before := c.Grid().Clone()

	result, err := c.Swap(s.ctx, model.Position{Row: 0, Col: 0}, model.Position{Row: 0, Col: 1})
	s.ErrorIs(err, model.ErrNoMatch)
	s.Nil(result)

	s.True(c.Grid().Equal(before))
	s.Equal(model.TurnStateIdle, c.State())
	s.Equal(1, c.Session().Rejected)
	s.Zero(c.Session().Turns)
	s.Equal([]model.EventType{model.EventSwapRejected}, s.eventTypes())
}

func (s *ControllerSuite) TestSwapRejectsNonAdjacentCells() {
	c := s.newController(cleanRows())
	before := c.Grid().Clone()

	_, err := c.Swap(s.ctx, model.Position{Row: 0, Col: 0}, model.Position{Row: 1, Col: 1})
	s.ErrorIs(err, model.ErrNotAdjacent)

	_, err = c.Swap(s.ctx, model.Position{Row: 0, Col: 0}, model.Position{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrNotAdjacent)

	s.True(c.Grid().Equal(before))
	s.Zero(c.Session().Rejected)
}

func (s *ControllerSuite) TestSwapRejectsOutOfBounds() {
	c := s.newController(cleanRows())

	_, err := c.Swap(s.ctx, model.Position{Row: 3, Col: 3}, model.Position{Row: 4, Col: 3})
	s.ErrorIs(err, model.ErrInvalidPosition)

	_, err = c.Swap(s.ctx, model.Position{Row: 0, Col: -1}, model.Position{Row: 0, Col: 0})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ControllerSuite) TestSwapCancelledDuringPause() {
	c := s.newController(cleanRows())
	s.random.QueueIntn(int(Y), int(Y), int(Y))
	ctx, cancel := context.WithCancel(s.ctx)

	c.Subscribe(func(event model.Event) {
		if event.Type == model.EventCascadeStep {
			cancel()
		}
	})

	_, err := c.Swap(ctx, model.Position{Row: 2, Col: 2}, model.Position{Row: 3, Col: 2})
	s.ErrorIs(err, context.Canceled)
	s.Equal(model.TurnStateIdle, c.State())
	s.Zero(c.Session().Turns)
}

// Summary tests

func (s *ControllerSuite) TestSummary() {
	c := s.newController(cleanRows())
	s.random.QueueIntn(int(W), int(P), int(C))

	_, err := c.Swap(s.ctx, model.Position{Row: 2, Col: 2}, model.Position{Row: 3, Col: 2})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)

	summary := c.Summary("greedy")
	s.Equal(model.SessionID("SESSION00001"), summary.ID)
	s.Equal("greedy", summary.Strategy)
	s.Equal(1, summary.Turns)
	s.InDelta(1.0, summary.Score, 1e-9)
	s.Equal(map[model.Gem]int{R: 3}, summary.GemsCleared)
	s.Equal(time.Minute, summary.CompletedAt.Sub(summary.StartedAt))
}
