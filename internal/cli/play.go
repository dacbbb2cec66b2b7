package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/mcoot/matchthree/internal/factory"
	"github.com/mcoot/matchthree/internal/term"
)

// PlayerStrategy labels sessions played from the keyboard
const PlayerStrategy = "player"

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play interactively in the terminal",
		Long: `Play interactively in the terminal.

Keys:
  arrows      move the cursor
  z q s d     swap the selected gem up, left, down or right
  h           show a hint
  w, Esc      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs on stderr would draw over the game
			logger, closeLog, err := cfg.NewLogger(false)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			factoryCfg, err := cfg.FactoryConfig(logger)
			if err != nil {
				return err
			}
			app, err := factory.New(factoryCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			controller, err := app.NewSession(ctx)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initialising terminal: %w", err)
			}

			game := term.NewGame(screen, term.DefaultLayout(), controller, app.BotService, app.Logger())
			runErr := runOnScreen(screen, func() error { return game.Run(ctx) })
			if runErr != nil && !errors.Is(runErr, context.Canceled) {
				return runErr
			}

			summary := controller.Summary(PlayerStrategy)
			if err := app.Storage.SaveSummary(ctx, summary); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if runErr != nil {
				out.PrintMessage("Game interrupted")
			}
			out.Print(NewSummary(summary))
			return nil
		},
	}

	return cmd
}

// runOnScreen runs fn and releases the screen afterwards, also when fn
// panics, so the terminal is usable again before anything is printed
func runOnScreen(screen tcell.Screen, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			panic(r)
		}
	}()
	err := fn()
	screen.Fini()
	return err
}
