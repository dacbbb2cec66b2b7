package bot

import (
	"sync"

	"github.com/hashicorp/golang-lru/simplelru"

	"github.com/mcoot/matchthree/internal/model"
)

// DefaultCacheSize is the number of grid layouts whose candidates are kept
const DefaultCacheSize = 256

// CandidateCache is an LRU cache of FindCandidates results keyed by grid
// layout. A nil cache computes candidates on every call.
type CandidateCache struct {
	mux sync.Mutex
	lru *simplelru.LRU
}

// NewCandidateCache creates a cache holding up to size grid layouts
func NewCandidateCache(size int) (*CandidateCache, error) {
	l, err := simplelru.NewLRU(size, nil)
	if err != nil {
		return nil, err
	}
	return &CandidateCache{lru: l}, nil
}

// Candidates returns the valid swaps for the grid, from the cache when the
// same layout has been probed before. Callers must not modify the result.
func (cc *CandidateCache) Candidates(grid *model.Grid) []Candidate {
	if cc == nil {
		return FindCandidates(grid)
	}
	key := grid.String()

	cc.mux.Lock()
	defer cc.mux.Unlock()
	if cached, ok := cc.lru.Get(key); ok {
		return cached.([]Candidate)
	}
	candidates := FindCandidates(grid)
	cc.lru.Add(key, candidates)
	return candidates
}

// Len returns the number of cached layouts
func (cc *CandidateCache) Len() int {
	if cc == nil {
		return 0
	}
	cc.mux.Lock()
	defer cc.mux.Unlock()
	return cc.lru.Len()
}
