// Package midend drives one puzzle session on behalf of a host. It owns the
// parameters, the puzzle identity, the undo history, animation timing and
// save/restore, and delegates everything puzzle-specific to a puzzle.Game.
package midend

import (
	"os"
	"strings"

	"go-puzzles/internal/obfuscate"
	"go-puzzles/internal/puzzle"
	"go-puzzles/internal/random"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

// Kind says how a timeline entry was reached.
type Kind int

const (
	KindNewGame Kind = iota
	KindMove
	KindSolve
	KindRestart
)

func (k Kind) String() string {
	switch k {
	case KindNewGame:
		return "NEWGAME"
	case KindMove:
		return "MOVE"
	case KindSolve:
		return "SOLVE"
	case KindRestart:
		return "RESTART"
	}
	return "UNKNOWN"
}

// Solve and restart entries are special: they never animate or flash.
func (k Kind) special() bool {
	return k != KindMove
}

type entry struct {
	state puzzle.State
	move  string
	kind  Kind
}

type genMode int

const (
	genNothing genMode = iota
	genGotSeed
	genGotDesc
)

// pending is the identity requested by GameID, consumed by the next NewGame.
type pending struct {
	mode   genMode
	params puzzle.Params
	seed   string
	desc   string
}

// Midend is a single puzzle session. It is not safe for concurrent use; every
// method is a synchronous response to one host event.
type Midend struct {
	fe   puzzle.Frontend
	game puzzle.Game
	log  zerolog.Logger

	transform    obfuscate.Transform
	lookupEnv    func(string) (string, bool)
	extraPresets []PresetSpec

	// seeds mints fresh seed strings; it is never used for generation.
	seeds *random.State

	params    puzzle.Params
	curParams puzzle.Params
	next      pending

	seed     string
	desc     string
	privDesc string
	aux      string

	states   []entry
	statePos int

	ui       puzzle.UI
	ds       puzzle.DrawState
	tileSize int

	anim      *fsm.FSM
	oldState  puzzle.State
	dir       int
	animTime  float64
	animPos   float64
	flashTime float64
	flashPos  float64

	timing     bool
	elapsed    float64
	lastStatus string

	pressed puzzle.Button

	presets       []preset
	presetsLoaded bool
}

// Option configures a Midend.
type Option func(*Midend)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Midend) { m.log = l }
}

// WithTransform replaces the transform used to hide solver hints in saves.
func WithTransform(t obfuscate.Transform) Option {
	return func(m *Midend) { m.transform = t }
}

// WithEnv replaces os.LookupEnv for preset, colour and default overrides.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(m *Midend) { m.lookupEnv = lookup }
}

// WithExtraPresets appends presets after the built-in and environment ones.
func WithExtraPresets(specs []PresetSpec) Option {
	return func(m *Midend) { m.extraPresets = append(m.extraPresets, specs...) }
}

// New creates a session for game. No puzzle exists until NewGame is called.
func New(fe puzzle.Frontend, game puzzle.Game, opts ...Option) *Midend {
	m := &Midend{
		fe:        fe,
		game:      game,
		log:       zerolog.Nop(),
		transform: obfuscate.Bitmap,
		lookupEnv: os.LookupEnv,
		tileSize:  game.PreferredTileSize(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With().Str("game", game.Name()).Logger()
	m.seeds = random.New(fe.RandomSeed())
	m.anim = newAnimFSM(m)

	m.params = game.DefaultParams()
	if s, ok := m.lookupEnv(envName(game, "DEFAULT")); ok {
		p := game.DecodeParams(m.params, s)
		if err := game.ValidateParams(p, true); err == nil {
			m.params = p
		} else {
			m.log.Warn().Err(err).Str("params", s).Msg("ignoring default params from environment")
		}
	}
	return m
}

// envName builds the environment variable name for a per-game override,
// e.g. FIFTEEN_PRESETS.
func envName(game puzzle.Game, suffix string) string {
	name := strings.ToUpper(strings.ReplaceAll(game.Name(), " ", ""))
	return name + "_" + suffix
}

// Game returns the game this session plays.
func (m *Midend) Game() puzzle.Game {
	return m.game
}

func (m *Midend) current() puzzle.State {
	return m.states[m.statePos-1].state
}

// CurrentState returns the state at the current history position, or nil
// before the first NewGame.
func (m *Midend) CurrentState() puzzle.State {
	if m.statePos == 0 {
		return nil
	}
	return m.current()
}

// StatePos is the 1-based position of the current state in the history.
func (m *Midend) StatePos() int { return m.statePos }

// NumStates is the length of the history, including any redo tail.
func (m *Midend) NumStates() int { return len(m.states) }

// CanUndo reports whether there is a state before the current one.
func (m *Midend) CanUndo() bool { return m.statePos > 1 }

// CanRedo reports whether undone states remain to be redone.
func (m *Midend) CanRedo() bool { return m.statePos < len(m.states) }

// Entry reports the kind and move string of history entry i (0-based).
func (m *Midend) Entry(i int) (Kind, string) {
	return m.states[i].kind, m.states[i].move
}

// Seed is the random seed the current game was generated from, if any.
func (m *Midend) Seed() string { return m.seed }

// Desc is the public description of the current game.
func (m *Midend) Desc() string { return m.desc }

// PrivDesc is the description the initial state is built from when it
// differs from Desc, and empty otherwise.
func (m *Midend) PrivDesc() string { return m.privDesc }

// AuxInfo is the generator's private data, used by Solve.
func (m *Midend) AuxInfo() string { return m.aux }

// Elapsed is the game clock in seconds.
func (m *Midend) Elapsed() float64 { return m.elapsed }

// Params returns the long-term parameters used for the next new game.
func (m *Midend) Params() puzzle.Params {
	return m.params
}

// CurrentParams returns the parameters of the puzzle being played.
func (m *Midend) CurrentParams() puzzle.Params {
	return m.curParams
}

// SetParams replaces the long-term parameters. It takes effect at the next
// NewGame.
func (m *Midend) SetParams(p puzzle.Params) {
	m.params = p
}

// Status is +1 once the puzzle is solved, -1 if it is lost, 0 otherwise.
func (m *Midend) Status() int {
	if m.statePos == 0 {
		return 0
	}
	return m.game.Status(m.current())
}

// TextFormat renders the current state as text if the game supports it.
func (m *Midend) TextFormat() (string, bool) {
	if m.statePos == 0 || !m.game.CanFormatAsText(m.curParams) {
		return "", false
	}
	return m.game.TextFormat(m.current()), true
}

// WantsStatusbar reports whether the frontend should show a status line.
func (m *Midend) WantsStatusbar() bool {
	return m.game.WantsStatusbar()
}

// SupersedeGameDesc replaces the public description. privDesc, if not
// empty, is kept for rebuilding the initial state.
func (m *Midend) SupersedeGameDesc(desc, privDesc string) {
	m.desc = desc
	m.privDesc = privDesc
}

// initialDesc is the description the first state is built from.
func (m *Midend) initialDesc() string {
	if m.privDesc != "" {
		return m.privDesc
	}
	return m.desc
}

// Size records the tile size and returns the puzzle's dimensions in host
// units. A non-positive tile keeps the current size.
func (m *Midend) Size(tile int) (w, h int) {
	if tile > 0 {
		m.tileSize = tile
	}
	if m.ds != nil {
		m.game.SetSize(m.drawing(), m.ds, m.curParams, m.tileSize)
	}
	p := m.curParams
	if p == nil {
		p = m.params
	}
	return m.game.ComputeSize(p, m.tileSize)
}

// ForceRedraw throws away the draw cache and draws everything again.
func (m *Midend) ForceRedraw() {
	if m.statePos == 0 {
		return
	}
	m.newDrawState(m.states[0].state)
	m.Redraw()
}

func (m *Midend) newDrawState(s puzzle.State) {
	m.ds = m.game.NewDrawState(m.drawing(), s)
	m.game.SetSize(m.drawing(), m.ds, m.curParams, m.tileSize)
}
