package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/mcoot/matchthree/internal/model"
)

// KeyKind tags a decoded key event
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyNav
	KeyResize
	KeyQuit
)

// Direction is one of the four grid directions
type Direction int

const (
	DirUp Direction = iota
	DirLeft
	DirDown
	DirRight
)

// Offset returns the row and column deltas of one step in the direction
func (d Direction) Offset() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirLeft:
		return 0, -1
	case DirDown:
		return 1, 0
	default:
		return 0, 1
	}
}

// Step returns the neighbour of pos in the direction. It may be out of bounds.
func (d Direction) Step(pos model.Position) model.Position {
	dr, dc := d.Offset()
	return model.Position{Row: pos.Row + dr, Col: pos.Col + dc}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// KeyEvent is a decoded terminal event. Char is set for KeyChar, Dir for KeyNav.
type KeyEvent struct {
	Kind KeyKind
	Char byte
	Dir  Direction
}

// DecodeKey turns a terminal event into a KeyEvent. Printable keys must be
// ASCII; anything else the game has no use for is ErrUnrecognizedKey.
func DecodeKey(ev tcell.Event) (KeyEvent, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return KeyEvent{Kind: KeyResize}, nil
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyRune:
			r := ev.Rune()
			if r > 0x7F {
				return KeyEvent{}, fmt.Errorf("%w: %q", model.ErrNonASCIIKey, r)
			}
			return KeyEvent{Kind: KeyChar, Char: byte(r)}, nil
		case tcell.KeyUp:
			return KeyEvent{Kind: KeyNav, Dir: DirUp}, nil
		case tcell.KeyLeft:
			return KeyEvent{Kind: KeyNav, Dir: DirLeft}, nil
		case tcell.KeyDown:
			return KeyEvent{Kind: KeyNav, Dir: DirDown}, nil
		case tcell.KeyRight:
			return KeyEvent{Kind: KeyNav, Dir: DirRight}, nil
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return KeyEvent{Kind: KeyQuit}, nil
		default:
			return KeyEvent{}, fmt.Errorf("%w: %s", model.ErrUnrecognizedKey, ev.Name())
		}
	default:
		return KeyEvent{}, fmt.Errorf("%w: %T", model.ErrUnrecognizedKey, ev)
	}
}

// swapKeys maps the swap bindings to the direction of the neighbour
var swapKeys = map[byte]Direction{
	'z': DirUp,
	'q': DirLeft,
	's': DirDown,
	'd': DirRight,
}

const (
	quitKey = 'w'
	hintKey = 'h'
)
