package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/services/game"
)

// Service plays turns on behalf of a player
type Service struct {
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// Strategy returns the named strategy
func (s *Service) Strategy(name string) (Strategy, error) {
	st, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot strategy: %s", name)
	}
	return st, nil
}

// Hint suggests a swap for the current grid using the named strategy
func (s *Service) Hint(grid *model.Grid, strategy string) (model.Swap, error) {
	st, err := s.Strategy(strategy)
	if err != nil {
		return model.Swap{}, err
	}
	swap, ok := st.ChooseSwap(grid)
	if !ok {
		return model.Swap{}, model.ErrNoMovesLeft
	}
	return swap, nil
}

// PlayTurns plays up to n turns on the controller. It stops early with
// ErrNoMovesLeft when the grid has no valid swap, returning the turns
// played so far.
func (s *Service) PlayTurns(ctx context.Context, controller game.ControllerInterface, strategy string, n int) ([]model.TurnResult, error) {
	st, err := s.Strategy(strategy)
	if err != nil {
		return nil, err
	}

	results := make([]model.TurnResult, 0, n)
	for range n {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		swap, ok := st.ChooseSwap(controller.Grid())
		if !ok {
			s.logger.Info("no moves left",
				slog.String("session_id", string(controller.Session().ID)),
				slog.Int("turns", len(results)),
			)
			return results, model.ErrNoMovesLeft
		}

		result, err := controller.Swap(ctx, swap.A, swap.B)
		if errors.Is(err, model.ErrNoMatch) {
			// Strategies only pick matching swaps
			return results, fmt.Errorf("strategy %s chose a non-matching swap %s: %w", strategy, swap, err)
		}
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}

	return results, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Strategy(name string) (Strategy, error)
	Hint(grid *model.Grid, strategy string) (model.Swap, error)
	PlayTurns(ctx context.Context, controller game.ControllerInterface, strategy string, n int) ([]model.TurnResult, error)
}

var _ ServiceInterface = (*Service)(nil)
