package model

import "fmt"

// Position identifies a cell on the grid
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// String renders the position as (row,col)
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Less orders positions by row, then column
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Adjacent returns true if a and b share an edge
func Adjacent(a, b Position) bool {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	return dr*dr+dc*dc == 1
}

// Swap is a pair of cells to exchange
type Swap struct {
	A Position
	B Position
}

// String renders the swap as (row,col)<->(row,col)
func (s Swap) String() string {
	return s.A.String() + "<->" + s.B.String()
}
