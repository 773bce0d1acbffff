package midend

import (
	"context"

	"go-puzzles/internal/puzzle"

	"github.com/looplab/fsm"
)

const (
	animIdle    = "idle"
	animRunning = "animating"

	eventAnimate = "animate"
	eventFinish  = "finish"
)

// newAnimFSM builds the transition scheduler. Every history step passes
// through "animating"; a zero-length animation leaves it again at once.
// Entering "idle" finalises the move.
func newAnimFSM(m *Midend) *fsm.FSM {
	return fsm.NewFSM(
		animIdle,
		fsm.Events{
			{Name: eventAnimate, Src: []string{animIdle}, Dst: animRunning},
			{Name: eventFinish, Src: []string{animRunning}, Dst: animIdle},
		},
		fsm.Callbacks{
			"enter_" + animRunning: func(ctx context.Context, e *fsm.Event) {
				if m.animTime <= 0 {
					_ = e.FSM.Event(ctx, eventFinish)
				}
			},
			"enter_" + animIdle: func(_ context.Context, _ *fsm.Event) {
				m.finishMove()
			},
		},
	)
}

func (m *Midend) fire(event string) {
	if err := m.anim.Event(context.Background(), event); err != nil {
		m.log.Debug().Err(err).Str("event", event).Msg("animation event")
	}
}

// animate starts the transition from old to the current state. special
// transitions never animate.
func (m *Midend) animate(old puzzle.State, special bool) {
	var t float64
	if !special && old != nil {
		t = m.game.AnimLength(old, m.current(), m.dir, m.ui)
	}
	if t < 0 {
		t = 0
	}
	m.oldState = old
	m.animTime = t
	m.animPos = 0
	m.fire(eventAnimate)

	m.Redraw()
	m.setTimer()
}

// finishMove ends the running transition and starts the completion flash if
// the game wants one. A flash never follows a special entry.
func (m *Midend) finishMove() {
	n := len(m.states)
	pos := m.statePos
	later := -1
	switch {
	case m.dir > 0:
		later = pos - 1
	case m.dir < 0 && pos < n:
		later = pos
	}

	if (m.oldState != nil || pos > 1) && later >= 0 && !m.states[later].kind.special() {
		from, dir := m.oldState, m.dir
		if from == nil {
			from, dir = m.states[pos-2].state, +1
		}
		if ft := m.game.FlashLength(from, m.current(), dir, m.ui); ft > 0 {
			m.flashPos = 0
			m.flashTime = ft
		}
	}

	m.oldState = nil
	m.animPos = 0
	m.animTime = 0
	m.dir = 0
	m.setTimer()
}

// StopAnim finishes any running transition at once.
func (m *Midend) StopAnim() {
	if m.anim.Is(animRunning) {
		m.fire(eventFinish)
		m.Redraw()
	}
}

// resetAnim drops all transition state without finalising it.
func (m *Midend) resetAnim() {
	m.anim.SetState(animIdle)
	m.oldState = nil
	m.dir = 0
	m.animTime, m.animPos = 0, 0
	m.flashTime, m.flashPos = 0, 0
}

// Animating reports whether a transition is in progress.
func (m *Midend) Animating() bool {
	return m.anim.Is(animRunning)
}

// Flashing reports whether a completion flash is in progress.
func (m *Midend) Flashing() bool {
	return m.flashTime > 0
}

// Timer advances animation, flash and the game clock by tplus seconds.
func (m *Midend) Timer(tplus float64) {
	m.animPos += tplus
	if m.anim.Is(animRunning) && (m.animPos >= m.animTime || m.oldState == nil) {
		m.fire(eventFinish)
	}

	m.flashPos += tplus
	if m.flashPos >= m.flashTime || m.flashTime == 0 {
		m.flashPos, m.flashTime = 0, 0
	}

	m.Redraw()

	if m.timing {
		before := m.elapsed
		m.elapsed += tplus
		if int(before) != int(m.elapsed) {
			m.fe.StatusBar(m.RewriteStatusbar(m.lastStatus))
		}
	}

	m.setTimer()
}

// setTimer asks the host for ticks while anything time-based is active.
func (m *Midend) setTimer() {
	m.timing = m.statePos > 0 && m.game.IsTimed() && m.game.TimingState(m.current(), m.ui)
	if m.timing || m.flashTime > 0 || m.animTime > 0 {
		m.fe.ActivateTimer()
	} else {
		m.fe.DeactivateTimer()
	}
}

// Redraw draws the current state, interpolating a running transition.
func (m *Midend) Redraw() {
	if m.statePos == 0 || m.ds == nil {
		return
	}
	dr := m.drawing()
	m.fe.StartDraw()
	if m.oldState != nil && m.animTime > 0 && m.animPos < m.animTime {
		m.game.Redraw(dr, m.ds, m.oldState, m.current(), m.dir, m.ui, m.animPos, m.flashPos)
	} else {
		m.game.Redraw(dr, m.ds, nil, m.current(), +1, m.ui, 0, m.flashPos)
	}
	m.fe.EndDraw()
}
