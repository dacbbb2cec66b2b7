package bot

import (
	"github.com/mcoot/matchthree/internal/dependencies/random"
	"github.com/mcoot/matchthree/internal/model"
)

// Strategy names
const (
	StrategyRandom = "random"
	StrategyGreedy = "greedy"
)

// Strategy defines how a bot chooses a swap
type Strategy interface {
	// ChooseSwap selects a valid swap, or returns false when none exists
	ChooseSwap(grid *model.Grid) (model.Swap, bool)
}

// ValidStrategies returns all valid strategy names
func ValidStrategies() []string {
	return []string{StrategyRandom, StrategyGreedy}
}

// NewStrategies returns every strategy keyed by name, sharing one
// candidate cache. cache may be nil.
func NewStrategies(rnd random.Random, cache *CandidateCache) map[string]Strategy {
	return map[string]Strategy{
		StrategyRandom: NewRandomStrategy(rnd, cache),
		StrategyGreedy: NewGreedyStrategy(cache),
	}
}
