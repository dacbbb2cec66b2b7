package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/mcoot/matchthree/internal/model"
)

// TooSmallMessage is shown instead of the grid when the terminal cannot fit it
const TooSmallMessage = "The screen is too small"

// Layout sizes a tile and the gaps between tiles, in terminal cells
type Layout struct {
	TileWidth  int
	TileHeight int
	GapWidth   int
	GapHeight  int
}

// DefaultLayout returns 4x2 tiles separated by 2 columns and 1 line
func DefaultLayout() Layout {
	return Layout{
		TileWidth:  4,
		TileHeight: 2,
		GapWidth:   2,
		GapHeight:  1,
	}
}

// TileOrigin returns the screen coordinates of the top-left cell of a tile
func (l Layout) TileOrigin(pos model.Position) (x, y int) {
	return pos.Col * (l.TileWidth + l.GapWidth), pos.Row * (l.TileHeight + l.GapHeight)
}

// GridSize returns the screen size needed for the grid, status line excluded
func (l Layout) GridSize(grid *model.Grid) (width, height int) {
	width = grid.Width()*l.TileWidth + (grid.Width()-1)*l.GapWidth
	height = grid.Height()*l.TileHeight + (grid.Height()-1)*l.GapHeight
	return width, height
}

var gemColors = map[model.Gem]tcell.Color{
	model.GemGreen:  tcell.ColorGreen,
	model.GemRed:    tcell.ColorRed,
	model.GemYellow: tcell.ColorYellow,
	model.GemBlue:   tcell.ColorBlue,
	model.GemWhite:  tcell.ColorWhite,
	model.GemPink:   tcell.ColorFuchsia,
	model.GemCyan:   tcell.ColorAqua,
}

// GemStyle returns the style a gem's tile is painted with
func GemStyle(gem model.Gem) tcell.Style {
	return tcell.StyleDefault.Background(gemColors[gem]).Foreground(tcell.ColorBlack)
}

// View renders a grid onto a tcell screen
type View struct {
	screen tcell.Screen
	layout Layout
}

// NewView creates a View drawing onto screen
func NewView(screen tcell.Screen, layout Layout) *View {
	return &View{
		screen: screen,
		layout: layout,
	}
}

// CanDraw reports whether the grid and the status line fit on the screen
func (v *View) CanDraw(grid *model.Grid) bool {
	cols, lines := v.screen.Size()
	width, height := v.layout.GridSize(grid)
	return width <= cols && height+v.layout.GapHeight+1 <= lines
}

// Draw paints the grid, the cursor and the status message, then shows the
// frame. A screen too small for the grid gets a notice instead.
func (v *View) Draw(grid *model.Grid, cursor model.Position, msg string) {
	v.screen.Clear()

	if !v.CanDraw(grid) {
		_, lines := v.screen.Size()
		v.drawText(0, lines/2, TooSmallMessage, tcell.StyleDefault)
		v.screen.Show()
		return
	}

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			pos := model.Position{Row: row, Col: col}
			v.drawTile(pos, GemStyle(grid.Get(pos)))
		}
	}

	if grid.InBounds(cursor) {
		x, y := v.layout.TileOrigin(cursor)
		v.screen.SetContent(x, y, tcell.RuneDiamond, nil, GemStyle(grid.Get(cursor)))
	}

	_, height := v.layout.GridSize(grid)
	v.drawText(0, height+v.layout.GapHeight, msg, tcell.StyleDefault)
	v.screen.Show()
}

func (v *View) drawTile(pos model.Position, style tcell.Style) {
	x0, y0 := v.layout.TileOrigin(pos)
	for dy := 0; dy < v.layout.TileHeight; dy++ {
		for dx := 0; dx < v.layout.TileWidth; dx++ {
			v.screen.SetContent(x0+dx, y0+dy, ' ', nil, style)
		}
	}
}

func (v *View) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}
