package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcoot/matchthree/internal/dependencies/random"
)

// MinGridDimension is the smallest allowed height or width
const MinGridDimension = 2

// Grid is a dense height x width board of gems.
// Cells are stored in row-major order: index = row*width + col.
type Grid struct {
	height int
	width  int
	cells  []Gem

	// rnd draws the gems that refill the top of a column
	rnd random.Random
}

// NewFilledGrid creates a grid with every cell set to gem.
// rnd is used for later refills; nil selects a crypto-backed source.
func NewFilledGrid(height, width int, gem Gem, rnd random.Random) (*Grid, error) {
	if height < MinGridDimension || width < MinGridDimension {
		return nil, fmt.Errorf("%w: got %dx%d, need at least %dx%d",
			ErrInvalidDimensions, height, width, MinGridDimension, MinGridDimension)
	}
	if rnd == nil {
		rnd = random.New()
	}

	cells := make([]Gem, height*width)
	for i := range cells {
		cells[i] = gem
	}
	return &Grid{
		height: height,
		width:  width,
		cells:  cells,
		rnd:    rnd,
	}, nil
}

// NewRandomGrid creates a grid with every cell drawn independently from rnd
func NewRandomGrid(height, width int, rnd random.Random) (*Grid, error) {
	g, err := NewFilledGrid(height, width, GemGreen, rnd)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		g.cells[i] = RandomGem(g.rnd)
	}
	return g, nil
}

// NewGridFromRows creates a grid holding the given rows.
// All rows must have the same length.
func NewGridFromRows(rows [][]Gem, rnd random.Random) (*Grid, error) {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	g, err := NewFilledGrid(height, width, GemGreen, rnd)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrInvalidDimensions, r, len(row), width)
		}
		copy(g.cells[r*width:(r+1)*width], row)
	}
	return g, nil
}

// Height returns the number of rows
func (g *Grid) Height() int {
	return g.height
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// InBounds returns true if pos lies on the grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.height && pos.Col >= 0 && pos.Col < g.width
}

// index converts a position to a flat cell index.
// Out-of-bounds positions are caller bugs and panic.
func (g *Grid) index(pos Position) int {
	if !g.InBounds(pos) {
		panic(fmt.Errorf("%w: %s on %dx%d grid", ErrOutOfBounds, pos, g.height, g.width))
	}
	return pos.Row*g.width + pos.Col
}

// Get returns the gem at pos
func (g *Grid) Get(pos Position) Gem {
	return g.cells[g.index(pos)]
}

// Set overwrites the gem at pos
func (g *Grid) Set(pos Position, gem Gem) {
	g.cells[g.index(pos)] = gem
}

// Swap exchanges the gems at a and b.
// Adjacency is not checked here.
func (g *Grid) Swap(a, b Position) {
	i, j := g.index(a), g.index(b)
	g.cells[i], g.cells[j] = g.cells[j], g.cells[i]
}

// Row returns a copy of the gems in the given row
func (g *Grid) Row(row int) []Gem {
	g.index(Position{Row: row, Col: 0})
	result := make([]Gem, g.width)
	copy(result, g.cells[row*g.width:(row+1)*g.width])
	return result
}

// Col returns a copy of the gems in the given column, top to bottom
func (g *Grid) Col(col int) []Gem {
	g.index(Position{Row: 0, Col: col})
	result := make([]Gem, g.height)
	for row := 0; row < g.height; row++ {
		result[row] = g.cells[row*g.width+col]
	}
	return result
}

// Clone returns a deep copy sharing the same random source
func (g *Grid) Clone() *Grid {
	cells := make([]Gem, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		height: g.height,
		width:  g.width,
		cells:  cells,
		rnd:    g.rnd,
	}
}

// Equal returns true if both grids have the same shape and gems
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.height != other.height || g.width != other.width {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// DestroyAndRefill removes every cell in cells. The gems above each removed
// cell fall by one row and row 0 of that column receives a fresh random gem.
// The input order does not matter and duplicates are ignored.
func (g *Grid) DestroyAndRefill(cells []Position) {
	targets := make([]Position, len(cells))
	copy(targets, cells)
	// Ascending rows: shifting rows above r never moves a gem at or below r,
	// so later targets in the same column still point at their matched gem.
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Less(targets[j])
	})

	for i, pos := range targets {
		if i > 0 && targets[i-1] == pos {
			continue
		}
		g.index(pos)
		for row := pos.Row; row > 0; row-- {
			g.cells[row*g.width+pos.Col] = g.cells[(row-1)*g.width+pos.Col]
		}
		g.cells[pos.Col] = RandomGem(g.rnd)
	}
}

// String renders the grid one row per line using gem initials
func (g *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.cells[row*g.width+col].String()[:1])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
