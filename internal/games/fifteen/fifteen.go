// Package fifteen implements the sliding fifteen puzzle.
package fifteen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go-puzzles/internal/puzzle"
	"go-puzzles/internal/random"
)

const (
	animTime   = 0.13
	flashFrame = 0.13

	// MaxArea bounds the number of squares so that a game ID cannot make
	// generation or validation allocate without limit.
	MaxArea = 10000
)

// Palette indices.
const (
	colBackground = iota
	colText
	colHighlight
	colLowlight
	numColours
)

// Params is the grid size.
type Params struct {
	W, H int
}

// State is one arrangement of the tiles. Tiles holds tile numbers in
// row-major order, with 0 at index Gap.
type State struct {
	W, H      int
	Tiles     []int
	Gap       int
	Completed int // move count at completion, 0 while unsolved
	UsedSolve bool
	MoveCount int
}

func (s *State) x(i int) int { return i % s.W }
func (s *State) y(i int) int { return i / s.W }

// parity is the permutation parity a solvable grid needs given where the
// gap is. The target 1..n-1,0 is a cyclic shift of 0..n-1, so it is odd iff
// n is even.
func parity(w, h, gap int) int {
	x, y := gap%w, gap/w
	return ((x - (w - 1)) ^ (y - (h - 1)) ^ (w*h + 1)) & 1
}

func permParity(perm []int) int {
	ret := 0
	for i := 0; i < len(perm)-1; i++ {
		for j := i + 1; j < len(perm); j++ {
			if perm[i] > perm[j] {
				ret ^= 1
			}
		}
	}
	return ret
}

func isCompleted(tiles []int) bool {
	n := len(tiles)
	for p, t := range tiles {
		want := p + 1
		if p == n-1 {
			want = 0
		}
		if t != want {
			return false
		}
	}
	return true
}

// Game implements puzzle.Game for Fifteen.
type Game struct {
	puzzle.Base
}

// New returns the Fifteen game.
func New() *Game {
	return &Game{}
}

// Name is the game's display name.
func (*Game) Name() string { return "Fifteen" }

// PreferredTileSize is in terminal rows.
func (*Game) PreferredTileSize() int { return 3 }

// WantsStatusbar is true; the status line shows the move count.
func (*Game) WantsStatusbar() bool { return true }

// CanConfigure is true: the grid size can be set.
func (*Game) CanConfigure() bool { return true }

// CanSolve is true.
func (*Game) CanSolve() bool { return true }

// DefaultParams is the 4x4 grid.
func (*Game) DefaultParams() puzzle.Params {
	return Params{W: 4, H: 4}
}

// FetchPreset offers the one built-in size.
func (g *Game) FetchPreset(i int) (string, puzzle.Params, bool) {
	if i == 0 {
		return "4x4", g.DefaultParams(), true
	}
	return "", nil, false
}

// leadingInt parses the decimal prefix of s the way atoi does, returning 0
// when there is none.
func leadingInt(s string) (int, string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, _ := strconv.Atoi(s[:i])
	return n, s[i:]
}

// DecodeParams reads "WxH", or a bare "N" for a square grid.
func (*Game) DecodeParams(base puzzle.Params, s string) puzzle.Params {
	p := base.(Params)
	n, rest := leadingInt(s)
	p.W, p.H = n, n
	if strings.HasPrefix(rest, "x") {
		p.H, _ = leadingInt(rest[1:])
	}
	return p
}

// EncodeParams always writes "WxH"; Fifteen has no secondary parameters.
func (*Game) EncodeParams(p puzzle.Params, full bool) string {
	pp := p.(Params)
	return fmt.Sprintf("%dx%d", pp.W, pp.H)
}

// Configure describes the width and height fields of the custom dialog.
func (*Game) Configure(p puzzle.Params) []puzzle.ConfigItem {
	pp := p.(Params)
	return []puzzle.ConfigItem{
		{Name: "Width", Type: puzzle.ConfigString, Value: strconv.Itoa(pp.W)},
		{Name: "Height", Type: puzzle.ConfigString, Value: strconv.Itoa(pp.H)},
	}
}

// CustomParams parses the dialog fields. ValidateParams does the range checks.
func (*Game) CustomParams(items []puzzle.ConfigItem) (puzzle.Params, error) {
	if len(items) < 2 {
		return nil, errors.New("expected width and height")
	}
	w, err := strconv.Atoi(strings.TrimSpace(items[0].Value))
	if err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(items[1].Value))
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	return Params{W: w, H: h}, nil
}

// ValidateParams requires at least 2x2 and at most MaxArea squares.
func (*Game) ValidateParams(p puzzle.Params, full bool) error {
	pp := p.(Params)
	if pp.W < 2 || pp.H < 2 {
		return errors.New("width and height must both be at least two")
	}
	if pp.W > MaxArea/pp.H {
		return fmt.Errorf("width times height must not exceed %d", MaxArea)
	}
	return nil
}

// NewDesc shuffles a solvable grid and writes it as comma-separated tile
// numbers. There is no aux info.
func (*Game) NewDesc(p puzzle.Params, rs *random.State, interactive bool) (string, string) {
	pp := p.(Params)
	n := pp.W * pp.H
	tiles := make([]int, n)
	used := make([]bool, n)

	for {
		for i := range tiles {
			tiles[i] = -1
			used[i] = false
		}

		gap := rs.Intn(n)
		tiles[gap] = 0
		used[0] = true

		// Place everything except the last two tiles.
		x := 0
		for i := n - 1; i > 2; i-- {
			k := rs.Intn(i)
			j := 0
			for ; j < n; j++ {
				if !used[j] {
					if k == 0 {
						break
					}
					k--
				}
			}
			used[j] = true
			for tiles[x] >= 0 {
				x++
			}
			tiles[x] = j
		}

		// The last two go in whichever order gives a solvable grid.
		for tiles[x] >= 0 {
			x++
		}
		x1 := x
		x++
		for tiles[x] >= 0 {
			x++
		}
		x2 := x

		p1 := 0
		for used[p1] {
			p1++
		}
		p2 := p1 + 1
		for used[p2] {
			p2++
		}

		tiles[x1], tiles[x2] = p1, p2
		if permParity(tiles) != parity(pp.W, pp.H, gap) {
			tiles[x1], tiles[x2] = p2, p1
		}

		if !isCompleted(tiles) {
			break
		}
	}

	parts := make([]string, n)
	for i, t := range tiles {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ","), ""
}

// ValidateDesc checks that desc lists each tile number from 0 to W*H-1
// exactly once.
func (*Game) ValidateDesc(p puzzle.Params, desc string) error {
	pp := p.(Params)
	area := pp.W * pp.H
	used := make([]bool, area)
	rest := desc

	for i := 0; i < area; i++ {
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			return errors.New("not enough numbers in string")
		}
		j := 0
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		num, tail := rest[:j], rest[j:]
		if i < area-1 && !strings.HasPrefix(tail, ",") {
			return errors.New("expected comma after number")
		}
		if i == area-1 && tail != "" {
			return errors.New("excess junk at end of string")
		}
		v, err := strconv.Atoi(num)
		if err != nil || v < 0 || v >= area {
			return errors.New("number out of range")
		}
		if used[v] {
			return errors.New("number used twice")
		}
		used[v] = true
		rest = strings.TrimPrefix(tail, ",")
	}
	return nil
}

// NewGame builds the initial state from a description ValidateDesc accepted.
func (*Game) NewGame(p puzzle.Params, desc string) puzzle.State {
	pp := p.(Params)
	n := pp.W * pp.H
	fields := strings.Split(desc, ",")
	if len(fields) != n {
		return nil
	}
	s := &State{W: pp.W, H: pp.H, Tiles: make([]int, n)}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil
		}
		s.Tiles[i] = v
		if v == 0 {
			s.Gap = i
		}
	}
	return s
}

func (*Game) DupGame(st puzzle.State) puzzle.State {
	s := st.(*State)
	ret := *s
	ret.Tiles = append([]int(nil), s.Tiles...)
	return &ret
}

// Solve jumps straight to the solved grid. It does not show how to get
// there, but it gives a clean position to practise from.
func (*Game) Solve(initial, current puzzle.State, aux string) (string, error) {
	return "S", nil
}

func (*Game) CanFormatAsText(puzzle.Params) bool { return true }

// TextFormat renders the grid as right-aligned numbers, the gap as blanks.
func (*Game) TextFormat(st puzzle.State) string {
	s := st.(*State)
	col := len(strconv.Itoa(len(s.Tiles) - 1))
	var b strings.Builder
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			v := s.Tiles[y*s.W+x]
			if v == 0 {
				b.WriteString(strings.Repeat(" ", col))
			} else {
				fmt.Fprintf(&b, "%*d", col, v)
			}
			if x+1 == s.W {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

func (*Game) NewUI(puzzle.State) puzzle.UI { return nil }

// ExecuteMove applies "S" (solve) or "M<x>,<y>" (slide toward the gap).
// It returns nil for a move that is not legal in st.
func (g *Game) ExecuteMove(st puzzle.State, move string) puzzle.State {
	from := st.(*State)

	if move == "S" {
		ret := g.DupGame(from).(*State)
		n := len(ret.Tiles)
		for i := range ret.Tiles {
			ret.Tiles[i] = (i + 1) % n
		}
		ret.Gap = n - 1
		ret.UsedSolve = true
		ret.Completed, ret.MoveCount = 1, 1
		return ret
	}

	var dx, dy int
	if !strings.HasPrefix(move, "M") {
		return nil
	}
	if _, err := fmt.Sscanf(move[1:], "%d,%d", &dx, &dy); err != nil {
		return nil
	}
	gx, gy := from.x(from.Gap), from.y(from.Gap)
	if (dx == gx && dy == gy) || (dx != gx && dy != gy) ||
		dx < 0 || dx >= from.W || dy < 0 || dy >= from.H {
		return nil
	}

	// Slide every tile between the gap and the target one step towards
	// the gap.
	ux, uy := sign(dx-gx), sign(dy-gy)
	up := uy*from.W + ux

	ret := g.DupGame(from).(*State)
	ret.Gap = dy*from.W + dx
	ret.Tiles[ret.Gap] = 0
	for p := from.Gap; p != ret.Gap; p += up {
		ret.Tiles[p] = from.Tiles[p+up]
		ret.MoveCount++
	}

	if ret.Completed == 0 && isCompleted(ret.Tiles) {
		ret.Completed = ret.MoveCount
	}
	return ret
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func (*Game) AnimLength(old, new puzzle.State, dir int, ui puzzle.UI) float64 {
	return animTime
}

// FlashLength flashes once when a move first completes the grid, unless
// Solve was used.
func (*Game) FlashLength(old, new puzzle.State, dir int, ui puzzle.UI) float64 {
	o, n := old.(*State), new.(*State)
	if o.Completed == 0 && n.Completed != 0 && !o.UsedSolve && !n.UsedSolve {
		return 2 * flashFrame
	}
	return 0
}

// Status is +1 once solved, even by Solve, and 0 before that.
func (*Game) Status(st puzzle.State) int {
	if st.(*State).Completed != 0 {
		return 1
	}
	return 0
}
