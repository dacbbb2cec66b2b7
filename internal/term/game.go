package term

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/services/bot"
	"github.com/mcoot/matchthree/internal/services/game"
)

// Status messages
const (
	WelcomeMessage  = "Press 'w' to exit."
	NoMatchMessage  = "No match!"
	NoMovesMessage  = "No moves left!"
	NonASCIIMessage = "Only ASCII keys are supported."
)

// Game runs an interactive session: it reads keys from the screen, plays
// swaps on the controller and redraws after every step.
type Game struct {
	screen     tcell.Screen
	view       *View
	controller game.ControllerInterface
	bots       bot.ServiceInterface
	logger     *slog.Logger

	cursor model.Position
	msg    string
}

// NewGame creates a Game. The screen must already be initialised.
func NewGame(
	screen tcell.Screen,
	layout Layout,
	controller game.ControllerInterface,
	bots bot.ServiceInterface,
	logger *slog.Logger,
) *Game {
	g := &Game{
		screen:     screen,
		view:       NewView(screen, layout),
		controller: controller,
		bots:       bots,
		logger:     logger.With(slog.String("component", "term-game")),
		msg:        WelcomeMessage,
	}
	controller.Subscribe(g.onEvent)
	return g
}

// Cursor returns the selected tile
func (g *Game) Cursor() model.Position {
	return g.cursor
}

// Message returns the status message
func (g *Game) Message() string {
	return g.msg
}

// Run draws the grid and processes input until the player quits or ctx is
// done. Cascades are drawn step by step while a swap resolves.
func (g *Game) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	events := make(chan tcell.Event)
	polled := make(chan struct{})
	defer func() {
		cancel()
		// Wake the poller if it is waiting on the screen
		_ = g.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-polled
	}()

	go func() {
		defer close(polled)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		g.draw()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			key, err := DecodeKey(ev)
			if errors.Is(err, model.ErrNonASCIIKey) {
				g.msg = NonASCIIMessage
				continue
			}
			if err != nil {
				g.logger.Debug("ignored key", slog.String("error", err.Error()))
				continue
			}

			quit, err := g.HandleKey(ctx, key)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// HandleKey applies one decoded key. It returns true when the player quits.
func (g *Game) HandleKey(ctx context.Context, key KeyEvent) (bool, error) {
	switch key.Kind {
	case KeyQuit:
		return true, nil
	case KeyResize:
		g.screen.Sync()
	case KeyNav:
		g.moveCursor(key.Dir)
	case KeyChar:
		if key.Char == quitKey {
			return true, nil
		}
		if key.Char == hintKey {
			g.hint()
			return false, nil
		}
		if dir, ok := swapKeys[key.Char]; ok {
			return false, g.swap(ctx, dir)
		}
	}
	return false, nil
}

// moveCursor steps the cursor, wrapping around at the grid edges
func (g *Game) moveCursor(dir Direction) {
	grid := g.controller.Grid()
	next := dir.Step(g.cursor)
	next.Row = (next.Row + grid.Height()) % grid.Height()
	next.Col = (next.Col + grid.Width()) % grid.Width()
	g.cursor = next
}

func (g *Game) swap(ctx context.Context, dir Direction) error {
	target := dir.Step(g.cursor)
	if !g.controller.Grid().InBounds(target) {
		return nil
	}

	result, err := g.controller.Swap(ctx, g.cursor, target)
	if errors.Is(err, model.ErrNoMatch) {
		g.msg = NoMatchMessage
		return nil
	}
	if err != nil {
		return err
	}

	g.msg = ScoreMessage(result.Score)
	return nil
}

func (g *Game) hint() {
	swap, err := g.bots.Hint(g.controller.Grid(), bot.StrategyGreedy)
	if err != nil {
		g.msg = NoMovesMessage
		return
	}
	g.logger.Debug("hint shown", slog.String("swap", swap.String()))
	g.cursor = swap.A
	g.msg = fmt.Sprintf("Try swapping %s with %s", swap.A, swap.B)
}

func (g *Game) onEvent(event model.Event) {
	if payload, ok := event.Payload.(model.CascadeStepPayload); ok {
		g.msg = CascadeMessage(payload.Level)
		g.draw()
	}
}

func (g *Game) draw() {
	g.view.Draw(g.controller.Grid(), g.cursor, g.msg)
}

// ScoreMessage formats the message shown after an accepted turn
func ScoreMessage(score float64) string {
	return fmt.Sprintf("Score of %s, great!", strconv.FormatFloat(score, 'f', -1, 32))
}

// CascadeMessage formats the message shown while a cascade level resolves
func CascadeMessage(level int) string {
	return fmt.Sprintf("%d...", level)
}
