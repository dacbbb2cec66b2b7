package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/matchthree/internal/dependencies/clock"
	"github.com/mcoot/matchthree/internal/dependencies/random"
	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/services/bot"
	"github.com/mcoot/matchthree/internal/services/game"
	"github.com/mcoot/matchthree/internal/services/scoring"
	"github.com/mcoot/matchthree/internal/storage"
	"github.com/mcoot/matchthree/internal/storage/memory"
)

// Defaults
const (
	DefaultHeight          = 8
	DefaultWidth           = 6
	DefaultMaxGridAttempts = 8
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	ScoringService *scoring.Service
	BotService     *bot.Service

	config Config
	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Height and Width size every new grid. Zero selects the default 8x6.
	Height int
	Width  int
	// CascadePause is the delay between cascade steps. Zero disables pacing.
	CascadePause time.Duration
	// MaxStabilizeAttempts bounds the clean-up passes on a new grid (optional)
	MaxStabilizeAttempts int
	// MaxGridAttempts bounds how many fresh grids are rolled before giving up (optional)
	MaxGridAttempts int
	// CandidateCacheSize is the number of grid layouts whose bot swap candidates
	// are cached (optional). Zero selects bot.DefaultCacheSize.
	CandidateCacheSize int
	// Seed makes every grid and refill reproducible (optional)
	// If nil, a cryptographic source is used
	Seed *uint64
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	cfg, err := normalize(cfg)
	if err != nil {
		return nil, err
	}

	var rnd random.Random
	if cfg.Seed != nil {
		rnd = random.NewSeeded(*cfg.Seed)
	} else {
		rnd = random.New()
	}

	return newWithDependencies(cfg, memory.New(), clock.New(), rnd)
}

func normalize(cfg Config) (Config, error) {
	// Use no-op logger if not provided
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height < model.MinGridDimension || cfg.Width < model.MinGridDimension {
		return cfg, fmt.Errorf("%w: %dx%d", model.ErrInvalidDimensions, cfg.Height, cfg.Width)
	}
	if cfg.CascadePause < 0 {
		return cfg, errors.New("cascade pause must not be negative")
	}
	if cfg.MaxStabilizeAttempts <= 0 {
		cfg.MaxStabilizeAttempts = game.DefaultConfig().MaxStabilizeAttempts
	}
	if cfg.MaxGridAttempts <= 0 {
		cfg.MaxGridAttempts = DefaultMaxGridAttempts
	}
	if cfg.CandidateCacheSize == 0 {
		cfg.CandidateCacheSize = bot.DefaultCacheSize
	}
	return cfg, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(cfg Config, store storage.Storage, clk clock.Clock, rnd random.Random) (*App, error) {
	cache, err := bot.NewCandidateCache(cfg.CandidateCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating candidate cache: %w", err)
	}
	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		ScoringService: scoring.New(),
		BotService:     bot.NewService(bot.NewStrategies(rnd, cache), cfg.Logger),
		config:         cfg,
		logger:         cfg.Logger.With(slog.String("component", "factory")),
	}, nil
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.config.Logger
}

// NewSession rolls a grid, clears any match it starts with and returns a
// controller ready for the first swap. A grid that will not settle is
// replaced by a fresh one, up to MaxGridAttempts times.
func (a *App) NewSession(ctx context.Context) (*game.Controller, error) {
	gameCfg := game.Config{
		CascadePause:         a.config.CascadePause,
		MaxStabilizeAttempts: a.config.MaxStabilizeAttempts,
	}

	for attempt := 1; attempt <= a.config.MaxGridAttempts; attempt++ {
		grid, err := model.NewRandomGrid(a.config.Height, a.config.Width, a.Random)
		if err != nil {
			return nil, err
		}

		controller := game.NewController(grid, a.ScoringService, a.Clock, a.Random, gameCfg, a.config.Logger)
		_, err = controller.Stabilize(ctx)
		if errors.Is(err, model.ErrGridNotStable) {
			a.logger.Warn("discarding unstable grid", slog.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}
		return controller, nil
	}

	return nil, fmt.Errorf("%w: gave up after %d grids", model.ErrGridNotStable, a.config.MaxGridAttempts)
}

// PlayAutoGame plays one headless game of up to turns turns with the named
// strategy and stores its summary. Running out of moves ends the game early.
func (a *App) PlayAutoGame(ctx context.Context, strategy string, turns int) (*model.SessionSummary, error) {
	if _, err := a.BotService.Strategy(strategy); err != nil {
		return nil, err
	}

	controller, err := a.NewSession(ctx)
	if err != nil {
		return nil, err
	}

	_, err = a.BotService.PlayTurns(ctx, controller, strategy, turns)
	if err != nil && !errors.Is(err, model.ErrNoMovesLeft) {
		return nil, err
	}

	summary := controller.Summary(strategy)
	if err := a.Storage.SaveSummary(ctx, summary); err != nil {
		return nil, err
	}

	a.logger.Info("game complete",
		slog.String("session_id", string(summary.ID)),
		slog.String("strategy", strategy),
		slog.Int("turns", summary.Turns),
		slog.Float64("score", summary.Score),
	)
	return summary, nil
}
