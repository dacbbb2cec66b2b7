package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/mcoot/matchthree/internal/model"
	"github.com/mcoot/matchthree/internal/services/scoring"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == OutputJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == OutputJSON {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == OutputJSON {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Summary:
		o.printSummary(v)
	case AutoplayResult:
		o.printAutoplayResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Summary is the printable form of a finished session
type Summary struct {
	ID          string         `json:"id"`
	Strategy    string         `json:"strategy"`
	Height      int            `json:"height"`
	Width       int            `json:"width"`
	Score       float64        `json:"score"`
	Turns       int            `json:"turns"`
	Rejected    int            `json:"rejected"`
	Cascades    int            `json:"cascades"`
	BestTurn    float64        `json:"best_turn"`
	GemsCleared map[string]int `json:"gems_cleared"`
	StartedAt   time.Time      `json:"started_at"`
	Duration    string         `json:"duration"`
}

// GemCount is one entry of a gem ranking
type GemCount struct {
	Gem   string `json:"gem"`
	Count int    `json:"count"`
}

// AutoplayResult reports a batch of headless games
type AutoplayResult struct {
	Games      []Summary  `json:"games"`
	Best       *Summary   `json:"best"`
	GemRanking []GemCount `json:"gem_ranking"`
}

// NewSummary converts a session summary into its printable form
func NewSummary(s *model.SessionSummary) Summary {
	gems := make(map[string]int, len(s.GemsCleared))
	for gem, count := range s.GemsCleared {
		gems[gem.String()] = count
	}
	return Summary{
		ID:          string(s.ID),
		Strategy:    s.Strategy,
		Height:      s.Height,
		Width:       s.Width,
		Score:       s.Score,
		Turns:       s.Turns,
		Rejected:    s.Rejected,
		Cascades:    s.Cascades,
		BestTurn:    s.BestTurn,
		GemsCleared: gems,
		StartedAt:   s.StartedAt,
		Duration:    s.CompletedAt.Sub(s.StartedAt).Round(time.Millisecond).String(),
	}
}

// NewGemRanking converts ranked tallies into their printable form
func NewGemRanking(tallies []scoring.GemTally) []GemCount {
	ranking := make([]GemCount, len(tallies))
	for i, t := range tallies {
		ranking[i] = GemCount{Gem: t.Gem.String(), Count: t.Count}
	}
	return ranking
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func (o *Output) printSummary(s Summary) {
	fmt.Fprintf(o.out, "Session: %s (%s)\n", s.ID, s.Strategy)
	fmt.Fprintf(o.out, "Grid: %dx%d\n", s.Height, s.Width)
	fmt.Fprintf(o.out, "Score: %s (best turn %s)\n", formatScore(s.Score), formatScore(s.BestTurn))
	fmt.Fprintf(o.out, "Turns: %d (rejected %d, cascades %d)\n", s.Turns, s.Rejected, s.Cascades)
	fmt.Fprintf(o.out, "Duration: %s\n", s.Duration)

	if len(s.GemsCleared) > 0 {
		parts := make([]string, 0, len(s.GemsCleared))
		for _, gem := range model.AllGems() {
			if n, ok := s.GemsCleared[gem.String()]; ok {
				parts = append(parts, fmt.Sprintf("%s %d", gem, n))
			}
		}
		fmt.Fprintf(o.out, "Gems cleared: %s\n", strings.Join(parts, ", "))
	}
}

func (o *Output) printAutoplayResult(r AutoplayResult) {
	for i, game := range r.Games {
		if i > 0 {
			fmt.Fprintln(o.out)
		}
		o.printSummary(game)
	}

	if r.Best != nil {
		fmt.Fprintf(o.out, "\nBest: %s with %s points\n", r.Best.ID, formatScore(r.Best.Score))
	}

	if len(r.GemRanking) > 0 {
		fmt.Fprintln(o.out, "\nMost cleared:")
		for _, g := range r.GemRanking {
			fmt.Fprintf(o.out, "  %s: %d\n", g.Gem, g.Count)
		}
	}
}
