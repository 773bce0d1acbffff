package frontend

import (
	"fmt"
	"strings"

	"go-puzzles/internal/puzzle"

	"github.com/charmbracelet/lipgloss"
)

// cellWidth is the number of terminal columns per drawing unit. Terminal
// cells are about twice as tall as they are wide, so two columns make a
// unit roughly square.
const cellWidth = 2

type cell struct {
	ch rune
	fg int
	bg int
}

type rect struct {
	x, y, w, h int
}

// canvas is a grid of terminal cells that puzzles draw onto. Coordinates
// passed in are drawing units; colours are palette indices.
type canvas struct {
	w, h  int
	cells [][]cell
	clip  *rect

	palette []lipgloss.Style
}

func newCanvas() *canvas {
	return &canvas{}
}

// resize sets the size in drawing units and clears everything.
func (c *canvas) resize(w, h int) {
	c.w, c.h = w, h
	c.cells = make([][]cell, h)
	for y := range c.cells {
		row := make([]cell, w*cellWidth)
		for x := range row {
			row[x] = cell{ch: ' ', fg: -1, bg: -1}
		}
		c.cells[y] = row
	}
	c.clip = nil
}

// setPalette turns module colours into lipgloss styles.
func (c *canvas) setPalette(cols []puzzle.Colour) {
	c.palette = make([]lipgloss.Style, len(cols))
	for i, col := range cols {
		c.palette[i] = lipgloss.NewStyle().Background(lipgloss.Color(hexColour(col)))
	}
}

func hexColour(c puzzle.Colour) string {
	b := func(v float64) int {
		return int(min(max(v, 0), 1)*255 + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", b(c.R), b(c.G), b(c.B))
}

// visible reports whether terminal cell (col, row) may be painted.
func (c *canvas) visible(col, row int) bool {
	if row < 0 || row >= c.h || col < 0 || col >= c.w*cellWidth {
		return false
	}
	if c.clip == nil {
		return true
	}
	cx := col / cellWidth
	return cx >= c.clip.x && cx < c.clip.x+c.clip.w && row >= c.clip.y && row < c.clip.y+c.clip.h
}

func (c *canvas) fillRect(x, y, w, h, colour int) {
	for row := y; row < y+h; row++ {
		for col := x * cellWidth; col < (x+w)*cellWidth; col++ {
			if c.visible(col, row) {
				c.cells[row][col] = cell{ch: ' ', fg: -1, bg: colour}
			}
		}
	}
}

func (c *canvas) text(x, y, align, colour int, s string) {
	runes := []rune(s)
	col := x * cellWidth
	switch {
	case align&puzzle.AlignHCentre != 0:
		col -= (len(runes) - 1) / 2
	case align&puzzle.AlignHRight != 0:
		col -= len(runes)
	}
	for i, r := range runes {
		if c.visible(col+i, y) {
			cl := &c.cells[y][col+i]
			cl.ch, cl.fg = r, colour
		}
	}
}

func (c *canvas) style(fg, bg int) lipgloss.Style {
	st := lipgloss.NewStyle()
	if bg >= 0 && bg < len(c.palette) {
		st = c.palette[bg]
	}
	if fg >= 0 && fg < len(c.palette) {
		st = st.Foreground(c.palette[fg].GetBackground())
	}
	return st
}

// render draws the canvas, one styled run per stretch of cells that share
// colours.
func (c *canvas) render() string {
	var b strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].fg == row[i].fg && row[j].bg == row[i].bg {
				run.WriteRune(row[j].ch)
				j++
			}
			b.WriteString(c.style(row[i].fg, row[i].bg).Render(run.String()))
			i = j
		}
	}
	return b.String()
}

// plain returns the canvas text without styling.
func (c *canvas) plain() string {
	lines := make([]string, len(c.cells))
	for y, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			b.WriteRune(cl.ch)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
