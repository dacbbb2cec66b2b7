package scoring

import (
	"sort"

	"github.com/mcoot/matchthree/internal/model"
)

// matchScoreDivisor normalises a minimum-length match to one point
const matchScoreDivisor = model.MinMatchLength * model.MinMatchLength

// Service scores matches found on the grid
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ScoreMatch returns length²/9, so a run of three is worth one point
// and longer runs grow quadratically
func (s *Service) ScoreMatch(m model.Match) float64 {
	return float64(m.Length*m.Length) / matchScoreDivisor
}

// ScoreMatches sums the score of every match
func (s *Service) ScoreMatches(matches []model.Match) float64 {
	total := 0.0
	for _, m := range matches {
		total += s.ScoreMatch(m)
	}
	return total
}

// GemTally is the number of gems of one kind counted across matches
type GemTally struct {
	Gem   model.Gem
	Count int
}

// CountGems adds the length of each match to its gem kind. A gem claimed by
// a horizontal and a vertical match counts twice, as it scores twice.
func (s *Service) CountGems(matches []model.Match, into map[model.Gem]int) map[model.Gem]int {
	if into == nil {
		into = make(map[model.Gem]int)
	}
	for _, m := range matches {
		into[m.Gem] += m.Length
	}
	return into
}

// RankGems orders tallies by count descending, then by gem kind
func (s *Service) RankGems(counts map[model.Gem]int) []GemTally {
	tallies := make([]GemTally, 0, len(counts))
	for gem, count := range counts {
		tallies = append(tallies, GemTally{Gem: gem, Count: count})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Gem < tallies[j].Gem
	})
	return tallies
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreMatch(m model.Match) float64
	ScoreMatches(matches []model.Match) float64
	CountGems(matches []model.Match, into map[model.Gem]int) map[model.Gem]int
	RankGems(counts map[model.Gem]int) []GemTally
}

var _ ServiceInterface = (*Service)(nil)
