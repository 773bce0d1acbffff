package frontend

import (
	"testing"
	"time"

	"go-puzzles/internal/games/fifteen"
	"go-puzzles/internal/midend"
	"go-puzzles/internal/savestore"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	entries map[string]savestore.Entry
	data    map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]savestore.Entry{}, data: map[string][]byte{}}
}

func (s *memStore) Save(e savestore.Entry, data []byte) error {
	s.entries[e.Game+"/"+e.Slot] = e
	s.data[e.Game+"/"+e.Slot] = append([]byte(nil), data...)
	return nil
}

func (s *memStore) Load(game, slot string) ([]byte, error) {
	d, ok := s.data[game+"/"+slot]
	if !ok {
		return nil, savestore.ErrNoSave
	}
	return d, nil
}

func (s *memStore) List(game string) ([]savestore.Entry, error) {
	var out []savestore.Entry
	for _, e := range s.entries {
		if e.Game == game {
			out = append(out, e)
		}
	}
	return out, nil
}

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newModel(t *testing.T, store savestore.Storage, presets ...midend.PresetSpec) *Model {
	t.Helper()
	m := New(fifteen.New(), Options{
		Logger:  zerolog.Nop(),
		Store:   store,
		Env:     func(string) (string, bool) { return "", false },
		Presets: presets,
	})
	m.now = func() time.Time { return epoch }
	return m
}

func tiles(m *Model) []int {
	return m.Midend().CurrentState().(*fifteen.State).Tiles
}

func press(m *Model, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestModel_MoveAnimatesUntilTick(t *testing.T) {
	m := newModel(t, nil)
	require.NoError(t, m.Start("2x2:0,3,2,1"))
	assert.Equal(t, 8, m.host.canvas.w)
	assert.Contains(t, m.host.canvas.plain(), "3")

	cmd := press(m, tea.KeyMsg{Type: tea.KeyUp})
	require.NotNil(t, cmd, "animation needs ticks")
	assert.Equal(t, []int{2, 3, 0, 1}, tiles(m))
	assert.True(t, m.Midend().Animating())

	assert.Nil(t, press(m, tea.KeyMsg{Type: tea.KeyDown}), "a tick is already pending")

	cmd = press(m, tickMsg(epoch.Add(time.Second)))
	assert.Nil(t, cmd)
	assert.False(t, m.Midend().Animating())
	assert.False(t, m.host.timer)
	assert.Equal(t, "Moves: 2", m.host.status)

	view := m.View()
	assert.Contains(t, view, "Fifteen 2x2")
	assert.Contains(t, view, "Moves: 2")
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		m := newModel(t, nil)
		require.NoError(t, m.Start("2x2:0,3,2,1"))
		cmd := press(m, msg)
		require.NotNil(t, cmd, msg.String())
		assert.IsType(t, tea.QuitMsg{}, cmd(), msg.String())
	}
}

func TestModel_Mouse(t *testing.T) {
	m := newModel(t, nil)
	require.NoError(t, m.Start("2x2:0,3,2,1"))

	// The tile at (1,0) spans units 4..6 across and 1..3 down.
	press(m, tea.MouseMsg{X: 4 * cellWidth, Y: 1 + canvasTop, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, []int{3, 0, 2, 1}, tiles(m))

	press(m, tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 2, m.Midend().NumStates())
}

func TestModel_SolveAndRestart(t *testing.T) {
	m := newModel(t, nil)
	require.NoError(t, m.Start("2x2:0,3,2,1"))

	press(m, tea.KeyMsg{Type: tea.KeyUp})
	press(m, runeKey('S'))
	require.NoError(t, m.err)
	assert.Equal(t, []int{1, 2, 3, 0}, tiles(m))

	press(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, []int{0, 3, 2, 1}, tiles(m))
	kind, _ := m.Midend().Entry(m.Midend().NumStates() - 1)
	assert.Equal(t, midend.KindRestart, kind)
}

func TestModel_GameIDDialog(t *testing.T) {
	m := newModel(t, nil)
	require.NoError(t, m.Start("3x3"))
	assert.Equal(t, 3*3+2, m.host.canvas.w)

	press(m, runeKey('G'))
	require.True(t, m.input.Focused())
	assert.Contains(t, m.input.Value(), "3x3#")

	m.input.SetValue("2x2#1234567890123")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.input.Focused())
	require.NoError(t, m.err)
	assert.Equal(t, "0,3,2,1", m.Midend().Desc())
	assert.Equal(t, 8, m.host.canvas.w)

	press(m, runeKey('g'))
	assert.Equal(t, "2x2:0,3,2,1", m.input.Value())
	assert.Contains(t, m.View(), "Game ID")
	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.input.Focused())

	press(m, runeKey('g'))
	m.input.SetValue("2x2:0,0,0,0")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Error(t, m.err)
	assert.Equal(t, "0,3,2,1", m.Midend().Desc(), "a bad id changes nothing")
	assert.Contains(t, m.View(), m.err.Error())
}

func TestModel_Presets(t *testing.T) {
	m := newModel(t, nil, midend.PresetSpec{Title: "Tiny", Params: "2x2"})
	require.NoError(t, m.Start(""))
	require.Equal(t, 2, m.Midend().NumPresets())

	press(m, runeKey('2'))
	assert.Equal(t, "Tiny", m.message)
	assert.Equal(t, "2x2", m.game.EncodeParams(m.Midend().CurrentParams(), true))
	assert.Equal(t, 8, m.host.canvas.w)

	press(m, runeKey('9'))
	assert.Empty(t, m.message)
	assert.Equal(t, "2x2", m.game.EncodeParams(m.Midend().CurrentParams(), true))
}

func TestModel_SaveAndLoad(t *testing.T) {
	store := newMemStore()
	m := newModel(t, store)
	require.NoError(t, m.Start("2x2:0,3,2,1"))
	press(m, tea.KeyMsg{Type: tea.KeyUp})
	press(m, tickMsg(epoch.Add(time.Second)))

	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NoError(t, m.err)
	assert.Equal(t, "Saved", m.message)
	entry := store.entries["Fifteen/quick"]
	assert.Equal(t, "2x2:0,3,2,1", entry.GameID)

	press(m, runeKey('u'))
	assert.Equal(t, 1, m.Midend().StatePos())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NoError(t, m.err)
	assert.Equal(t, "Loaded", m.message)
	assert.Equal(t, 2, m.Midend().StatePos())
	assert.Equal(t, []int{2, 3, 0, 1}, tiles(m))
}

func TestModel_SaveErrors(t *testing.T) {
	m := newModel(t, newMemStore())
	require.NoError(t, m.Start("2x2:0,3,2,1"))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.ErrorIs(t, m.err, savestore.ErrNoSave)

	m = newModel(t, nil)
	require.NoError(t, m.Start("2x2:0,3,2,1"))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Error(t, m.err)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Error(t, m.err)
}

func TestModel_StartRejectsBadID(t *testing.T) {
	m := newModel(t, nil)
	err := m.Start("2x2:junk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2x2:junk")
}
