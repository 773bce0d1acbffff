package midend

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"go-puzzles/internal/games/fifteen"
	"go-puzzles/internal/obfuscate"
	"go-puzzles/internal/puzzle"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func save(t *testing.T, m *Midend) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, m.Serialise(&buf))
	return buf.String()
}

func record(key, val string) string {
	return fmt.Sprintf("%-8s:%d:%s\n", key, len(val), val)
}

func TestSerialise_NoGame(t *testing.T) {
	m, _ := newSession(&tally{})
	assert.ErrorIs(t, m.Serialise(&bytes.Buffer{}), ErrNoGame)
}

func TestSerialise_Layout(t *testing.T) {
	m, _ := newSession(&tally{})
	startAt(t, m, 3)
	m.ProcessKey(0, 0, puzzle.LeftButton)

	want := record("SAVEFILE", "go-puzzles saved game") +
		record("VERSION", "1") +
		record("GAME", "Tally") +
		record("PARAMS", "20") +
		record("CPARAMS", "20") +
		record("DESC", "3") +
		record("NSTATES", "2") +
		record("STATEPOS", "2") +
		record("MOVE", "+1")
	assert.Equal(t, want, save(t, m))
}

func TestSerialise_RoundTrip(t *testing.T) {
	m, _ := newSession(&tally{timed: true})
	require.NoError(t, m.GameID("20#1234567890123"))
	m.NewGame()
	m.ProcessKey(0, 0, '=')
	m.ProcessKey(0, 0, puzzle.LeftButton)
	m.ProcessKey(0, 0, puzzle.LeftRelease)
	m.ProcessKey(0, 0, puzzle.RightButton)
	m.ProcessKey(0, 0, puzzle.RightRelease)
	require.True(t, m.Undo())
	m.Timer(2.5)

	data := save(t, m)
	assert.Contains(t, data, record("UI", "c1"))
	assert.Contains(t, data, record("TIME", "2.5"))
	assert.Contains(t, data, record("SEED", "1234567890123"))
	assert.Contains(t, data, "AUXINFO :8:")
	assert.NotContains(t, data, "aux6", "solver hints are hidden")

	m2, _ := newSession(&tally{timed: true})
	require.NoError(t, m2.Deserialise(strings.NewReader(data)))
	assert.Equal(t, data, save(t, m2))

	assert.Equal(t, 2, m2.StatePos())
	assert.Equal(t, 3, m2.NumStates())
	assert.Equal(t, 7, counter(m2))
	assert.Equal(t, "aux6", m2.AuxInfo())
	assert.Equal(t, "6", m2.Desc())
	assert.InDelta(t, 2.5, m2.Elapsed(), 1e-9)
	assert.Equal(t, 1, m2.ui.(*tallyUI).Cursor)

	require.True(t, m2.Redo())
	assert.Equal(t, 9, counter(m2))
}

func TestSerialise_RestartAndSolveReplay(t *testing.T) {
	m, _ := newSession(&tally{})
	startAt(t, m, 3)
	m.ProcessKey(0, 0, puzzle.LeftButton)
	m.RestartGame()
	require.NoError(t, m.Solve())

	data := save(t, m)
	assert.Contains(t, data, record("RESTART", "3"))
	assert.Contains(t, data, record("SOLVE", "S"))

	m2, _ := newSession(&tally{})
	require.NoError(t, m2.Deserialise(strings.NewReader(data)))
	assert.Equal(t, data, save(t, m2))
	assert.Equal(t, 20, counter(m2))

	kind, _ := m2.Entry(2)
	assert.Equal(t, KindRestart, kind)
}

func TestSerialise_PlainTransform(t *testing.T) {
	m, _ := newSession(&tally{}, WithTransform(obfuscate.None))
	require.NoError(t, m.GameID("20#1234567890123"))
	m.NewGame()
	assert.Contains(t, save(t, m), record("AUXINFO", "61757836"))
}

func TestDeserialise_FailureLeavesSessionIntact(t *testing.T) {
	src, _ := newSession(&tally{})
	startAt(t, src, 5)
	src.ProcessKey(0, 0, puzzle.LeftButton)
	src.ProcessKey(0, 0, puzzle.LeftRelease)
	src.ProcessKey(0, 0, puzzle.LeftButton)
	good := save(t, src)

	head := record("SAVEFILE", "go-puzzles saved game") + record("VERSION", "1") + record("GAME", "Tally")

	// The last move record claims one byte fewer than it holds. "+" alone
	// would otherwise replay as a different move.
	last := strings.LastIndex(good, "MOVE    :2:")
	require.GreaterOrEqual(t, last, 0)
	shortLast := good[:last] + "MOVE    :1:" + good[last+len("MOVE    :2:"):]

	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "", ErrNotSaveFile},
		{"not a save", "hello, world", ErrNotSaveFile},
		{"wrong magic", record("SAVEFILE", "something else"), ErrNotSaveFile},
		{"truncated", good[:len(good)-3], ErrTruncated},
		{"no final newline", good[:len(good)-1], ErrTruncated},
		{"short last length", shortLast, ErrBadFormat},
		{"short desc length", strings.Replace(good, record("DESC", "5"), "DESC    :0:5\n", 1), ErrBadFormat},
		{"version", strings.Replace(good, record("VERSION", "1"), record("VERSION", "2"), 1), ErrVersion},
		{"wrong game", strings.Replace(good, record("GAME", "Tally"), record("GAME", "Other"), 1), ErrWrongGame},
		{"bad header", strings.Replace(good, "DESC    :", "DESC     ", 1), ErrBadFormat},
		{"bad length", strings.Replace(good, "DESC    :1:", "DESC    :x:", 1), ErrBadFormat},
		{"state pos", strings.Replace(good, record("STATEPOS", "3"), record("STATEPOS", "4"), 1), ErrCorrupt},
		{"zero state pos", strings.Replace(good, record("STATEPOS", "3"), record("STATEPOS", "0"), 1), ErrCorrupt},
		{"bad move", strings.Replace(good, record("MOVE", "+1"), record("MOVE", "xx"), 1), ErrCorrupt},
		{"bad desc", strings.Replace(good, record("DESC", "5"), record("DESC", "x"), 1), ErrCorrupt},
		{"bad params", strings.Replace(good, record("CPARAMS", "20"), record("CPARAMS", "0"), 1), ErrCorrupt},
		{"move before count", head + record("DESC", "5") + record("MOVE", "+1"), ErrBadFormat},
		{"no desc", head + record("PARAMS", "20") + record("CPARAMS", "20") + record("NSTATES", "1") + record("STATEPOS", "1"), ErrCorrupt},
		{"two counts", head + record("NSTATES", "2") + record("NSTATES", "2"), ErrCorrupt},
		{"negative count", head + record("NSTATES", "-1"), ErrCorrupt},
		{"bad aux", head + record("AUXINFO", "zz"), ErrBadFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newSession(&tally{})
			startAt(t, m, 3)
			m.ProcessKey(0, 0, puzzle.LeftButton)
			before := save(t, m)

			err := m.Deserialise(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, save(t, m))
			assert.True(t, m.Animating(), "a failed load does not touch the running move")

			n := m.NumStates()
			m.ProcessKey(0, 0, puzzle.LeftRelease)
			m.ProcessKey(0, 0, puzzle.LeftButton)
			assert.Equal(t, n+1, m.NumStates(), "the session still takes moves")
		})
	}
}

func TestDeserialise_OverlongValue(t *testing.T) {
	src, _ := newSession(&tally{})
	startAt(t, src, 5)
	good := save(t, src)

	m, _ := newSession(&tally{})
	startAt(t, m, 3)
	before := save(t, m)

	data := strings.Replace(good, record("DESC", "5"), "DESC    :9:5\n", 1)
	assert.Error(t, m.Deserialise(strings.NewReader(data)))
	assert.Equal(t, before, save(t, m))
}

func TestDeserialise_SkipsUnknownRecords(t *testing.T) {
	src, _ := newSession(&tally{})
	startAt(t, src, 5)
	good := save(t, src)

	data := strings.Replace(good, record("NSTATES", "1"), record("EXTRA", "abc")+"\r\n"+record("NSTATES", "1"), 1)
	m, _ := newSession(&tally{})
	require.NoError(t, m.Deserialise(strings.NewReader(data)))
	assert.Equal(t, good, save(t, m))
}

func TestDeserialise_StopsAnimation(t *testing.T) {
	src, _ := newSession(&tally{})
	startAt(t, src, 5)
	good := save(t, src)

	m, h := newSession(&tally{})
	startAt(t, m, 3)
	m.ProcessKey(0, 0, puzzle.LeftButton)
	require.True(t, m.Animating())

	require.NoError(t, m.Deserialise(strings.NewReader(good)))
	assert.False(t, m.Animating())
	assert.False(t, m.Flashing())
	assert.False(t, h.timer)
	assert.Equal(t, 5, counter(m))
}

func TestSerialise_Golden(t *testing.T) {
	m := New(&host{}, fifteen.New(), WithEnv(noEnv))
	require.NoError(t, m.GameID("2x2#1234567890123"))
	m.NewGame()
	require.Equal(t, "0,3,2,1", m.Desc())

	m.ProcessKey(0, 0, puzzle.CursorUp)
	m.ProcessKey(0, 0, puzzle.CursorLeft)
	m.ProcessKey(0, 0, 'u')

	data := save(t, m)
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "fifteen_2x2", []byte(data))

	m2 := New(&host{}, fifteen.New(), WithEnv(noEnv))
	require.NoError(t, m2.Deserialise(strings.NewReader(data)))
	assert.Equal(t, m.CurrentState(), m2.CurrentState())
	assert.Equal(t, 2, m2.StatePos())
	require.True(t, m2.Redo())
	assert.Equal(t, []int{2, 3, 1, 0}, m2.CurrentState().(*fifteen.State).Tiles)
}
