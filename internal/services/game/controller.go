package game

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/mcoot/matchthree/internal/dependencies/clock"
	"github.com/mcoot/matchthree/internal/dependencies/random"
	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/services/scoring"
)

const (
	// SessionIDAlphabet is the character set for generating session IDs
	SessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// SessionIDLength is the length of generated session IDs
	SessionIDLength = 12
)

// Config holds turn resolution settings
type Config struct {
	// CascadePause is the delay between two cascade steps, for display pacing only
	CascadePause time.Duration
	// MaxStabilizeAttempts bounds the scan/destroy passes used to clean a new grid
	MaxStabilizeAttempts int
}

// DefaultConfig returns the default turn resolution settings
func DefaultConfig() Config {
	return Config{
		CascadePause:         time.Second,
		MaxStabilizeAttempts: 64,
	}
}

// Listener receives events synchronously while a turn resolves
type Listener func(event model.Event)

// Controller owns the grid and drives the turn state machine:
// idle -> tentative swap -> cascade (accepted) or revert (rejected) -> idle
type Controller struct {
	grid           *model.Grid
	scoringService *scoring.Service
	clock          clock.Clock
	config         Config
	logger         *slog.Logger

	state       model.TurnState
	session     model.Session
	gemsCleared map[model.Gem]int
	listeners   []Listener
}

// NewController creates a new GameController for the given grid
func NewController(
	grid *model.Grid,
	scoringService *scoring.Service,
	clock clock.Clock,
	random random.Random,
	config Config,
	logger *slog.Logger,
) *Controller {
	if config.MaxStabilizeAttempts <= 0 {
		config.MaxStabilizeAttempts = DefaultConfig().MaxStabilizeAttempts
	}
	sessionID := model.SessionID(random.String(SessionIDLength, SessionIDAlphabet))

	return &Controller{
		grid:           grid,
		scoringService: scoringService,
		clock:          clock,
		config:         config,
		logger:         logger.With(slog.String("component", "game-controller"), slog.String("session_id", string(sessionID))),
		state:          model.TurnStateIdle,
		session: model.Session{
			ID:        sessionID,
			Height:    grid.Height(),
			Width:     grid.Width(),
			StartedAt: clock.Now(),
		},
		gemsCleared: make(map[model.Gem]int),
	}
}

// Subscribe registers a listener for turn events
func (c *Controller) Subscribe(listener Listener) {
	c.listeners = append(c.listeners, listener)
}

// Grid returns the grid owned by the controller. Callers must not mutate it.
func (c *Controller) Grid() *model.Grid {
	return c.grid
}

// State returns the current turn state
func (c *Controller) State() model.TurnState {
	return c.state
}

// Session returns a snapshot of the running session
func (c *Controller) Session() model.Session {
	return c.session
}

// Stabilize removes matches present on a fresh grid, without scoring them,
// until a scan comes back empty. It returns the number of destroy passes.
func (c *Controller) Stabilize(ctx context.Context) (int, error) {
	for pass := 0; pass < c.config.MaxStabilizeAttempts; pass++ {
		if err := ctx.Err(); err != nil {
			return pass, err
		}
		cells, _ := c.grid.ScanMatches()
		if len(cells) == 0 {
			c.logger.Debug("grid stabilized", slog.Int("passes", pass))
			c.publish(model.EventGridStabilized, model.GridStabilizedPayload{Passes: pass})
			return pass, nil
		}
		c.grid.DestroyAndRefill(cells)
	}

	c.logger.Warn("grid did not stabilize",
		slog.Int("attempts", c.config.MaxStabilizeAttempts),
	)
	return c.config.MaxStabilizeAttempts, fmt.Errorf("%w after %d passes", model.ErrGridNotStable, c.config.MaxStabilizeAttempts)
}

// Swap plays a move. The swap is applied tentatively and reverted with
// ErrNoMatch when neither cell ends up in a match; otherwise matches are
// destroyed and refilled until the grid is stable again.
func (c *Controller) Swap(ctx context.Context, a, b model.Position) (*model.TurnResult, error) {
	for _, pos := range []model.Position{a, b} {
		if !c.grid.InBounds(pos) {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidPosition, pos)
		}
	}
	if !model.Adjacent(a, b) {
		return nil, fmt.Errorf("%w: %s and %s", model.ErrNotAdjacent, a, b)
	}

	swap := model.Swap{A: a, B: b}
	c.state = model.TurnStateTentative
	c.grid.Swap(a, b)

	if !c.grid.WouldMatch(a, b) {
		c.grid.Swap(a, b)
		c.state = model.TurnStateIdle
		c.session.Rejected++

		c.logger.Debug("swap rejected",
			slog.String("swap", swap.String()),
		)
		c.publish(model.EventSwapRejected, model.SwapRejectedPayload{Swap: swap})
		return nil, model.ErrNoMatch
	}

	c.state = model.TurnStateCascade
	result, err := c.cascade(ctx, swap)
	c.state = model.TurnStateIdle
	if err != nil {
		return nil, err
	}

	c.session.Turns++
	c.session.Cascades += result.Cascades
	c.session.Score += result.Score
	if result.Score > c.session.BestTurn {
		c.session.BestTurn = result.Score
	}
	result.TotalScore = c.session.Score

	c.logger.Info("turn resolved",
		slog.String("swap", swap.String()),
		slog.Int("matches", len(result.Matches)),
		slog.Int("cascades", result.Cascades),
		slog.Float64("score", result.Score),
		slog.Float64("total_score", result.TotalScore),
	)
	c.publish(model.EventTurnComplete, model.TurnCompletePayload{Result: *result})
	return result, nil
}

// cascade repeats scan and destroy until a scan finds nothing,
// pausing between consecutive steps
func (c *Controller) cascade(ctx context.Context, swap model.Swap) (*model.TurnResult, error) {
	result := &model.TurnResult{Swap: swap}

	cells, matches := c.grid.ScanMatches()
	for level := 0; len(cells) > 0; level++ {
		if level > 0 {
			if err := c.clock.Sleep(ctx, c.config.CascadePause); err != nil {
				c.logger.Warn("cascade interrupted",
					slog.Int("level", level),
					slog.String("error", err.Error()),
				)
				return nil, err
			}
		}

		c.publish(model.EventCascadeStep, model.CascadeStepPayload{
			Level:   level,
			Cells:   cells,
			Matches: matches,
			Grid:    c.grid,
		})

		c.grid.DestroyAndRefill(cells)
		result.Matches = append(result.Matches, matches...)
		result.Score += c.scoringService.ScoreMatches(matches)
		result.Cascades++
		c.gemsCleared = c.scoringService.CountGems(matches, c.gemsCleared)

		cells, matches = c.grid.ScanMatches()
	}

	return result, nil
}

// Summary returns a record of the session so far
func (c *Controller) Summary(strategy string) *model.SessionSummary {
	return &model.SessionSummary{
		ID:          c.session.ID,
		Strategy:    strategy,
		Height:      c.session.Height,
		Width:       c.session.Width,
		Score:       c.session.Score,
		Turns:       c.session.Turns,
		Rejected:    c.session.Rejected,
		Cascades:    c.session.Cascades,
		BestTurn:    c.session.BestTurn,
		GemsCleared: maps.Clone(c.gemsCleared),
		StartedAt:   c.session.StartedAt,
		CompletedAt: c.clock.Now(),
	}
}

func (c *Controller) publish(eventType model.EventType, payload any) {
	if len(c.listeners) == 0 {
		return
	}
	event := model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		SessionID: c.session.ID,
		Payload:   payload,
	}
	for _, listener := range c.listeners {
		listener(event)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	Subscribe(listener Listener)
	Grid() *model.Grid
	State() model.TurnState
	Session() model.Session
	Stabilize(ctx context.Context) (int, error)
	Swap(ctx context.Context, a, b model.Position) (*model.TurnResult, error)
	Summary(strategy string) *model.SessionSummary
}

var _ ControllerInterface = (*Controller)(nil)
