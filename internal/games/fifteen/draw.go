package fifteen

import (
	"fmt"
	"strconv"

	"go-puzzles/internal/puzzle"
)

type drawState struct {
	started bool
	w, h    int
	bg      int
	tiles   []int
	tile    int
}

func border(tile int) int             { return tile / 2 }
func coord(x, tile int) int           { return x*tile + border(tile) }
func fromCoord(x, tile int) int       { return (x-border(tile)+tile)/tile - 1 }
func (ds *drawState) coord(x int) int { return coord(x, ds.tile) }

// ComputeSize allows half a tile of border on each side.
func (*Game) ComputeSize(p puzzle.Params, tile int) (int, int) {
	pp := p.(Params)
	return tile*pp.W + 2*border(tile), tile*pp.H + 2*border(tile)
}

func (*Game) SetSize(dr puzzle.Drawing, d puzzle.DrawState, p puzzle.Params, tile int) {
	d.(*drawState).tile = tile
}

// Colours derives highlight and lowlight from the frontend background.
func (*Game) Colours(fe puzzle.Frontend) []puzzle.Colour {
	bg := fe.DefaultColour()
	ret := make([]puzzle.Colour, numColours)
	ret[colBackground] = bg
	ret[colText] = puzzle.Colour{}
	ret[colHighlight] = scale(bg, 1.2)
	ret[colLowlight] = scale(bg, 0.8)
	return ret
}

func scale(c puzzle.Colour, f float64) puzzle.Colour {
	clamp := func(v float64) float64 { return min(v*f, 1) }
	return puzzle.Colour{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B)}
}

func (*Game) NewDrawState(dr puzzle.Drawing, st puzzle.State) puzzle.DrawState {
	s := st.(*State)
	ds := &drawState{w: s.W, h: s.H, bg: -1, tiles: make([]int, len(s.Tiles))}
	for i := range ds.tiles {
		ds.tiles[i] = -1
	}
	return ds
}

// InterpretMove turns a click on a tile in line with the gap, or a cursor
// key, into a slide. Cursor keys move a tile into the gap, so the gap itself
// travels the opposite way.
func (*Game) InterpretMove(st puzzle.State, ui puzzle.UI, d puzzle.DrawState, x, y int, b puzzle.Button) (string, bool) {
	s := st.(*State)
	ds := d.(*drawState)
	cx, cy := s.x(s.Gap), s.y(s.Gap)
	nx, ny := cx, cy

	switch b = b.Unmodified(); {
	case b == puzzle.LeftButton:
		nx, ny = fromCoord(x, ds.tile), fromCoord(y, ds.tile)
		if nx < 0 || nx >= s.W || ny < 0 || ny >= s.H {
			return "", false
		}
	case b == puzzle.CursorUp:
		ny = min(cy+1, s.H-1)
	case b == puzzle.CursorDown:
		ny = max(cy-1, 0)
	case b == puzzle.CursorLeft:
		nx = min(cx+1, s.W-1)
	case b == puzzle.CursorRight:
		nx = max(cx-1, 0)
	default:
		return "", false
	}

	// The target must share exactly one coordinate with the gap.
	if (cx == nx) != (cy == ny) {
		return fmt.Sprintf("M%d,%d", nx, ny), true
	}
	return "", false
}

func (ds *drawState) drawTile(dr puzzle.Drawing, tile, x, y int) {
	size := ds.tile
	if tile == 0 {
		dr.DrawRect(x, y, size, size, ds.bg)
	} else {
		dr.DrawRect(x, y, size, size, colLowlight)
		dr.DrawRect(x, y, size-1, size-1, colHighlight)
		dr.DrawText(x+size/2, y+size/2, puzzle.AlignVCentre|puzzle.AlignHCentre, colText, strconv.Itoa(tile))
	}
	dr.DrawUpdate(x, y, size, size)
}

// Redraw repaints only the tiles that changed since the last call, sliding
// the moving tile while animT runs.
func (g *Game) Redraw(dr puzzle.Drawing, d puzzle.DrawState, oldSt, newSt puzzle.State, dir int, ui puzzle.UI, animT, flashT float64) {
	ds := d.(*drawState)
	s := newSt.(*State)

	bg := colBackground
	if flashT > 0 {
		if int(flashT/flashFrame)%2 != 0 {
			bg = colLowlight
		} else {
			bg = colHighlight
		}
	}

	if !ds.started {
		w, h := g.ComputeSize(Params{W: ds.w, H: ds.h}, ds.tile)
		dr.DrawRect(0, 0, w, h, colBackground)
		dr.DrawUpdate(0, 0, w, h)
		ds.started = true
	}
	if bg != ds.bg {
		ds.bg = bg
		for i := range ds.tiles {
			ds.tiles[i] = -1
		}
	}

	var old *State
	if oldSt != nil {
		old = oldSt.(*State)
	}

	// Tiles on the move are drawn part way between their old and new
	// squares. Clear every square they cross first so that one moving tile
	// never paints over another.
	type moving struct{ t, x, y int }
	var movers []moving
	for i, t := range s.Tiles {
		x, y := ds.coord(s.x(i)), ds.coord(s.y(i))
		if old != nil && t != 0 {
			if j := indexOf(old.Tiles, t); j >= 0 && j != i {
				frac := animT / animTime
				ox, oy := ds.coord(old.x(j)), ds.coord(old.y(j))
				ds.drawTile(dr, 0, ox, oy)
				ds.drawTile(dr, 0, x, y)
				movers = append(movers, moving{
					t: t,
					x: ox + int(float64(x-ox)*frac),
					y: oy + int(float64(y-oy)*frac),
				})
				ds.tiles[i] = -1
				continue
			}
		}
		if ds.tiles[i] != t {
			ds.drawTile(dr, t, x, y)
			ds.tiles[i] = t
		}
	}
	for _, mv := range movers {
		ds.drawTile(dr, mv.t, mv.x, mv.y)
	}

	// Show the new status only once the animation has finished.
	status := s
	if old != nil {
		status = old
	}
	switch {
	case status.UsedSolve:
		dr.StatusBar(fmt.Sprintf("Moves since auto-solve: %d", status.MoveCount-status.Completed))
	case status.Completed != 0:
		dr.StatusBar(fmt.Sprintf("COMPLETED! Moves: %d", status.Completed))
	default:
		dr.StatusBar(fmt.Sprintf("Moves: %d", status.MoveCount))
	}
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}
