package frontend

import (
	"go-puzzles/internal/puzzle"
	"go-puzzles/internal/random"
)

// host is the puzzle.Frontend handed to the session. It draws onto a
// canvas and remembers whether the session wants timer ticks; the
// bubbletea model turns that flag into tea.Tick commands.
type host struct {
	canvas *canvas
	timer  bool
	status string
	dirty  bool
}

var _ puzzle.Frontend = (*host)(nil)

func newHost() *host {
	return &host{canvas: newCanvas()}
}

func (h *host) StartDraw() {}
func (h *host) EndDraw()   { h.dirty = true }

func (h *host) DrawRect(x, y, w, ht, colour int) {
	h.canvas.fillRect(x, y, w, ht, colour)
}

func (h *host) DrawText(x, y, align, colour int, text string) {
	h.canvas.text(x, y, align, colour, text)
}

func (h *host) DrawUpdate(x, y, w, ht int) {}

func (h *host) Clip(x, y, w, ht int) {
	h.canvas.clip = &rect{x: x, y: y, w: w, h: ht}
}

func (h *host) Unclip() {
	h.canvas.clip = nil
}

func (h *host) StatusBar(text string) {
	h.status = text
}

func (h *host) ActivateTimer()   { h.timer = true }
func (h *host) DeactivateTimer() { h.timer = false }

// DefaultColour is a light grey, close to what most terminal themes leave
// readable with black text.
func (h *host) DefaultColour() puzzle.Colour {
	return puzzle.Colour{R: 0.75, G: 0.75, B: 0.75}
}

func (h *host) RandomSeed() []byte {
	return random.Entropy()
}
