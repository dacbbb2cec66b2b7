package model

import "sort"

// MinMatchLength is the shortest run that counts as a match
const MinMatchLength = 3

// Match is a run of at least MinMatchLength same-kind gems in one row or column
type Match struct {
	Gem        Gem
	Length     int
	Start      Position // Leftmost or topmost cell of the run
	Horizontal bool     // true = along a row, false = along a column
}

// Positions returns every cell covered by the match
func (m Match) Positions() []Position {
	result := make([]Position, m.Length)
	for i := range result {
		if m.Horizontal {
			result[i] = Position{Row: m.Start.Row, Col: m.Start.Col + i}
		} else {
			result[i] = Position{Row: m.Start.Row + i, Col: m.Start.Col}
		}
	}
	return result
}

// Border holds the inclusive bounds of the same-kind runs through a cell:
// Top..Bottom along its column and Left..Right along its row.
type Border struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// VerticalLen returns the length of the column run
func (b Border) VerticalLen() int {
	return b.Bottom - b.Top + 1
}

// HorizontalLen returns the length of the row run
func (b Border) HorizontalLen() int {
	return b.Right - b.Left + 1
}

// IsMatch returns true if either run is long enough to match
func (b Border) IsMatch() bool {
	return b.VerticalLen() >= MinMatchLength || b.HorizontalLen() >= MinMatchLength
}

// MatchBorder walks outward from root in all four directions while the gem
// kind stays the same, stopping at the first different gem or the grid edge.
func (g *Grid) MatchBorder(root Position) Border {
	gem := g.cells[g.index(root)]
	b := Border{Top: root.Row, Left: root.Col, Bottom: root.Row, Right: root.Col}

	for b.Top > 0 && g.cells[(b.Top-1)*g.width+root.Col] == gem {
		b.Top--
	}
	for b.Left > 0 && g.cells[root.Row*g.width+b.Left-1] == gem {
		b.Left--
	}
	for b.Bottom < g.height-1 && g.cells[(b.Bottom+1)*g.width+root.Col] == gem {
		b.Bottom++
	}
	for b.Right < g.width-1 && g.cells[root.Row*g.width+b.Right+1] == gem {
		b.Right++
	}
	return b
}

// WouldMatch reports whether a or b now anchors a match.
// Call it right after swapping a and b to validate the move.
func (g *Grid) WouldMatch(a, b Position) bool {
	return g.MatchBorder(a).IsMatch() || g.MatchBorder(b).IsMatch()
}

// run is the fold state of a run-length scan over one line
type run struct {
	gem    Gem
	length int
	start  int
}

// step folds the next gem of a line into the current run. When the gem ends
// the run, the finished run is returned as closed.
func step(current run, idx int, gem Gem) (next run, closed run, ended bool) {
	if gem == current.gem {
		current.length++
		return current, run{}, false
	}
	return run{gem: gem, length: 1, start: idx}, current, true
}

// scanLine folds over one row or column and returns the matches it contains.
// cell maps an index along the line to its grid position.
func scanLine(gems []Gem, horizontal bool, cell func(idx int) Position) []Match {
	var matches []Match
	emit := func(r run) {
		if r.length >= MinMatchLength {
			matches = append(matches, Match{
				Gem:        r.gem,
				Length:     r.length,
				Start:      cell(r.start),
				Horizontal: horizontal,
			})
		}
	}

	current := run{gem: gems[0], length: 1, start: 0}
	for idx := 1; idx < len(gems); idx++ {
		var closed run
		var ended bool
		current, closed, ended = step(current, idx, gems[idx])
		if ended {
			emit(closed)
		}
	}
	// The line end closes the open run.
	emit(current)
	return matches
}

// ScanMatches finds every match on the grid. It returns the deduplicated
// cells to remove, sorted by row then column, and the matches in discovery
// order: all rows top to bottom, then all columns left to right. A cell in
// both a horizontal and a vertical match yields two Match entries.
func (g *Grid) ScanMatches() ([]Position, []Match) {
	var matches []Match
	for row := 0; row < g.height; row++ {
		matches = append(matches, scanLine(g.Row(row), true,
			func(idx int) Position { return Position{Row: row, Col: idx} })...)
	}
	for col := 0; col < g.width; col++ {
		matches = append(matches, scanLine(g.Col(col), false,
			func(idx int) Position { return Position{Row: idx, Col: col} })...)
	}

	if len(matches) == 0 {
		return nil, nil
	}

	seen := make(map[Position]struct{})
	var cells []Position
	for _, m := range matches {
		for _, pos := range m.Positions() {
			if _, ok := seen[pos]; ok {
				continue
			}
			seen[pos] = struct{}{}
			cells = append(cells, pos)
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells, matches
}
