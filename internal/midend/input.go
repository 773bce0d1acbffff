package midend

import "go-puzzles/internal/puzzle"

// ProcessKey feeds one input event to the session. It returns false if the
// user asked to quit.
//
// Pointer events are cleaned up before the game sees them, so every gesture
// reaches it as one press, any number of drags, then one release of the same
// button. Drags and releases are rewritten to the held button, or dropped if
// nothing is held. A press while another button is held first releases the
// held one, unless the game's flags say the held button beats the new one,
// in which case the press is ignored.
func (m *Midend) ProcessKey(x, y int, b puzzle.Button) bool {
	ret := true

	switch {
	case puzzle.IsMouseDrag(b) || puzzle.IsMouseRelease(b):
		if m.pressed == 0 {
			return true
		}
		if puzzle.IsMouseDrag(b) {
			b = puzzle.DragOf(m.pressed)
		} else {
			b = puzzle.ReleaseOf(m.pressed)
		}
	case puzzle.IsMouseDown(b) && m.pressed != 0:
		if m.game.Flags()&puzzle.ButtonBeats(m.pressed, b) != 0 {
			return true
		}
		ret = m.processButton(x, y, puzzle.ReleaseOf(m.pressed))
	}

	ret = ret && m.processButton(x, y, b)

	switch {
	case puzzle.IsMouseRelease(b):
		m.pressed = 0
	case puzzle.IsMouseDown(b):
		m.pressed = b
	}
	return ret
}
