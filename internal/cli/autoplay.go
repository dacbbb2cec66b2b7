package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/matchthree/internal/factory"
	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/services/bot"
)

func newAutoplayCmd() *cobra.Command {
	var (
		games    int
		turns    int
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "autoplay",
		Short: "Let a bot play headless games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if games < 1 {
				return fmt.Errorf("games must be at least 1")
			}
			if turns < 1 {
				return fmt.Errorf("turns must be at least 1")
			}

			logger, closeLog, err := cfg.NewLogger(true)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			factoryCfg, err := cfg.FactoryConfig(logger)
			if err != nil {
				return err
			}
			// Bots need no pacing between cascade steps
			factoryCfg.CascadePause = 0
			app, err := factory.New(factoryCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := runAutoplay(ctx, app, strategy, games, turns)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(*result)
			return nil
		},
	}

	cmd.Flags().IntVar(&games, "games", 1, "Number of games to play")
	cmd.Flags().IntVar(&turns, "turns", 50, "Maximum turns per game")
	cmd.Flags().StringVar(&strategy, "strategy", bot.StrategyGreedy, "Bot strategy: random, greedy")

	return cmd
}

func runAutoplay(ctx context.Context, app *factory.App, strategy string, games, turns int) (*AutoplayResult, error) {
	result := &AutoplayResult{}
	cleared := make(map[model.Gem]int)

	for range games {
		summary, err := app.PlayAutoGame(ctx, strategy, turns)
		if err != nil {
			return nil, err
		}
		result.Games = append(result.Games, NewSummary(summary))
		for gem, n := range summary.GemsCleared {
			cleared[gem] += n
		}
	}

	best, err := app.Storage.ListSummaries(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(best) > 0 {
		s := NewSummary(best[0])
		result.Best = &s
	}
	result.GemRanking = NewGemRanking(app.ScoringService.RankGems(cleared))

	return result, nil
}
