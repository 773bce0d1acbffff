package midend

import (
	"fmt"

	"go-puzzles/internal/puzzle"
)

// statusDrawing is the Drawing handed to the game. Status text goes through
// the session so that timed games get their clock prefix.
type statusDrawing struct {
	puzzle.Drawing
	m *Midend
}

func (d statusDrawing) StatusBar(text string) {
	d.m.lastStatus = text
	d.m.fe.StatusBar(d.m.RewriteStatusbar(text))
}

func (m *Midend) drawing() puzzle.Drawing {
	return statusDrawing{Drawing: m.fe, m: m}
}

// RewriteStatusbar prefixes the elapsed time for timed games.
func (m *Midend) RewriteStatusbar(text string) string {
	if !m.game.IsTimed() {
		return text
	}
	sec := int(m.elapsed)
	return fmt.Sprintf("[%d:%02d] %s", sec/60, sec%60, text)
}

// LastStatus returns the most recent status text set by the game.
func (m *Midend) LastStatus() string {
	return m.lastStatus
}
