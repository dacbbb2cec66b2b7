package bot

import "github.com/mcoot/matchthree/internal/model"

// Candidate is a swap that would produce a match
type Candidate struct {
	Swap model.Swap
	// RunLength is the longest run either swapped cell ends up in
	RunLength int
}

// FindSwaps lists every adjacent swap that would produce a match
func FindSwaps(grid *model.Grid) []model.Swap {
	candidates := FindCandidates(grid)
	swaps := make([]model.Swap, len(candidates))
	for i, c := range candidates {
		swaps[i] = c.Swap
	}
	return swaps
}

// FindCandidates probes every adjacent pair on a copy of the grid, scanning
// rows top to bottom and trying the right then the lower neighbour of each
// cell. The grid passed in is left untouched.
func FindCandidates(grid *model.Grid) []Candidate {
	probe := grid.Clone()
	var candidates []Candidate

	for row := 0; row < probe.Height(); row++ {
		for col := 0; col < probe.Width(); col++ {
			a := model.Position{Row: row, Col: col}
			for _, b := range []model.Position{{Row: row, Col: col + 1}, {Row: row + 1, Col: col}} {
				if !probe.InBounds(b) || probe.Get(a) == probe.Get(b) {
					continue
				}
				probe.Swap(a, b)
				if length := longestRun(probe, a, b); length >= model.MinMatchLength {
					candidates = append(candidates, Candidate{
						Swap:      model.Swap{A: a, B: b},
						RunLength: length,
					})
				}
				probe.Swap(a, b)
			}
		}
	}
	return candidates
}

func longestRun(grid *model.Grid, cells ...model.Position) int {
	longest := 0
	for _, pos := range cells {
		border := grid.MatchBorder(pos)
		longest = max(longest, border.HorizontalLen(), border.VerticalLen())
	}
	return longest
}
