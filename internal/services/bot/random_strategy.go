package bot

import (
	"github.com/mcoot/matchthree/internal/dependencies/random"
	"github.com/mcoot/matchthree/internal/model"
)

// RandomStrategy picks uniformly among the valid swaps
type RandomStrategy struct {
	random random.Random
	cache  *CandidateCache
}

// NewRandomStrategy creates a new RandomStrategy. cache may be nil.
func NewRandomStrategy(rnd random.Random, cache *CandidateCache) *RandomStrategy {
	return &RandomStrategy{random: rnd, cache: cache}
}

// ChooseSwap returns a random valid swap
func (s *RandomStrategy) ChooseSwap(grid *model.Grid) (model.Swap, bool) {
	candidates := s.cache.Candidates(grid)
	if len(candidates) == 0 {
		return model.Swap{}, false
	}
	return candidates[s.random.Intn(len(candidates))].Swap, true
}
