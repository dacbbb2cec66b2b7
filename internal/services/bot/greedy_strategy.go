package bot

import "github.com/mcoot/matchthree/internal/model"

// GreedyStrategy picks the swap forming the longest run. Ties go to the
// first candidate in scan order.
type GreedyStrategy struct {
	cache *CandidateCache
}

// NewGreedyStrategy creates a new GreedyStrategy. cache may be nil.
func NewGreedyStrategy(cache *CandidateCache) *GreedyStrategy {
	return &GreedyStrategy{cache: cache}
}

// ChooseSwap returns the valid swap with the longest immediate run
func (s *GreedyStrategy) ChooseSwap(grid *model.Grid) (model.Swap, bool) {
	var best Candidate
	found := false
	for _, c := range s.cache.Candidates(grid) {
		if !found || c.RunLength > best.RunLength {
			best = c
			found = true
		}
	}
	return best.Swap, found
}
