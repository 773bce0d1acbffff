package midend

import (
	"reflect"

	"go-puzzles/internal/puzzle"
	"go-puzzles/internal/random"
)

// NewGame discards the current history and starts a puzzle. It uses the
// identity set by GameID if there is one, otherwise a freshly minted seed and
// the long-term params.
func (m *Midend) NewGame() {
	m.StopAnim()

	next := m.next
	m.next = pending{}
	m.states = nil
	m.statePos = 0

	cur := next.params
	if cur == nil {
		cur = m.params
	}

	switch next.mode {
	case genGotDesc:
		m.seed = ""
		m.desc = next.desc
		m.privDesc = ""
		m.aux = ""
	default:
		seed := next.seed
		if next.mode == genNothing {
			seed = random.NewSeedString(m.seeds)
			cur = m.params
			m.log.Debug().Str("seed", seed).Msg("minted seed")
		}
		rs := random.NewFromString(seed)
		m.seed = seed
		m.desc, m.aux = m.game.NewDesc(cur, rs, true)
		m.privDesc = ""
	}
	m.curParams = cur

	s := m.game.NewGame(cur, m.initialDesc())
	if s == nil {
		panic("midend: " + m.game.Name() + " failed to build a state from its own description")
	}
	m.states = append(m.states, entry{state: s, kind: KindNewGame})
	m.statePos = 1
	m.ui = m.game.NewUI(s)
	m.newDrawState(s)
	m.elapsed = 0
	m.pressed = 0
	m.setTimer()

	m.log.Info().
		Str("params", m.game.EncodeParams(cur, true)).
		Str("desc", m.desc).
		Msg("new game")
}

// truncate drops every entry after the current position.
func (m *Midend) truncate() {
	for i := m.statePos; i < len(m.states); i++ {
		m.states[i] = entry{}
	}
	m.states = m.states[:m.statePos]
}

func (m *Midend) push(e entry) {
	m.truncate()
	m.states = append(m.states, e)
	m.statePos = len(m.states)
}

// Undo steps back one entry. It reports false if there is nothing to undo.
func (m *Midend) Undo() bool {
	m.StopAnim()
	if m.statePos <= 1 {
		return false
	}
	old := m.current()
	special := m.states[m.statePos-1].kind.special()
	m.game.ChangedState(m.ui, old, m.states[m.statePos-2].state)
	m.statePos--
	m.dir = -1
	m.log.Debug().Int("pos", m.statePos).Msg("undo")

	m.animate(old, special)
	return true
}

// Redo steps forward one entry. It reports false if there is nothing to redo.
func (m *Midend) Redo() bool {
	m.StopAnim()
	if m.statePos >= len(m.states) {
		return false
	}
	old := m.current()
	m.game.ChangedState(m.ui, old, m.states[m.statePos].state)
	m.statePos++
	m.dir = +1
	m.log.Debug().Int("pos", m.statePos).Msg("redo")

	m.animate(old, m.states[m.statePos-1].kind.special())
	return true
}

// RestartGame appends a fresh copy of the initial position, built from the
// public description, as a new history entry.
func (m *Midend) RestartGame() {
	m.StopAnim()
	if m.statePos <= 1 {
		return
	}

	s := m.game.NewGame(m.curParams, m.desc)
	if s == nil {
		panic("midend: " + m.game.Name() + " failed to rebuild its public description")
	}
	old := m.current()
	m.push(entry{state: s, move: m.desc, kind: KindRestart})
	m.game.ChangedState(m.ui, old, s)
	m.dir = +1
	m.log.Debug().Msg("restart")

	m.animate(nil, true)
}

// Solve asks the game for a solving move and appends its result.
func (m *Midend) Solve() error {
	if !m.game.CanSolve() {
		return puzzle.ErrCannotSolve
	}
	if m.statePos < 1 {
		return ErrNoGameToSolve
	}

	move, err := m.game.Solve(m.states[0].state, m.current(), m.aux)
	if err != nil {
		return err
	}
	if move == "" {
		return ErrSolveFailed
	}
	s := m.game.ExecuteMove(m.current(), move)
	if s == nil {
		panic("midend: " + m.game.Name() + " rejected its own solve move")
	}

	m.StopAnim()
	old := m.current()
	m.push(entry{state: s, move: move, kind: KindSolve})
	m.game.ChangedState(m.ui, old, s)
	m.dir = +1
	m.log.Debug().Msg("solved")

	m.animate(nil, true)
	return nil
}

func isKey(b puzzle.Button, keys ...puzzle.Button) bool {
	for _, k := range keys {
		if b == k {
			return true
		}
	}
	return false
}

// processButton handles one harmonised event. It returns false only for a
// quit request.
func (m *Midend) processButton(x, y int, b puzzle.Button) bool {
	switch {
	case isKey(b, 'n', 'N', puzzle.Ctrl('n')):
		m.StopAnim()
		m.NewGame()
		m.Redraw()
		return true
	case isKey(b, 'u', 'U', puzzle.Ctrl('z'), puzzle.Ctrl('_')):
		m.Undo()
		return true
	case isKey(b, 'r', 'R', puzzle.Ctrl('r'), puzzle.Ctrl('y')):
		m.Redo()
		return true
	case isKey(b, 'q', 'Q', puzzle.Ctrl('q')):
		return false
	}

	if m.statePos == 0 {
		return true
	}
	cur := m.current()
	move, ok := m.game.InterpretMove(cur, m.ui, m.ds, x, y, b)
	if !ok {
		return true
	}
	if move == "" {
		m.Redraw()
		return true
	}

	s := m.game.ExecuteMove(cur, move)
	if s == nil {
		m.log.Debug().Str("move", move).Msg("move rejected")
		return true
	}
	if sameState(s, cur) {
		m.Redraw()
		return true
	}

	m.StopAnim()
	m.push(entry{state: s, move: move, kind: KindMove})
	m.supersede()
	m.dir = +1
	m.animate(cur, false)
	return true
}

// sameState reports whether a and b are the same value. Values of
// non-comparable types never are.
func sameState(a, b puzzle.State) bool {
	t := reflect.TypeOf(a)
	return t == reflect.TypeOf(b) && t != nil && t.Comparable() && a == b
}

// supersede asks a DescSuperseder whether the puzzle now has a different
// public description.
func (m *Midend) supersede() {
	sd, ok := m.game.(puzzle.DescSuperseder)
	if !ok {
		return
	}
	desc, privDesc, ok := sd.SupersedeDesc(m.states[0].state, m.current())
	if !ok || desc == m.desc {
		return
	}
	if err := m.game.ValidateDesc(m.curParams, desc); err != nil {
		m.log.Warn().Err(err).Str("desc", desc).Msg("ignoring superseding description")
		return
	}
	m.SupersedeGameDesc(desc, privDesc)
	m.log.Debug().Str("desc", desc).Msg("description superseded")
}
