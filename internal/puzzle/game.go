// Package puzzle defines the contract between the engine and the puzzle
// modules it drives, and the contract between the engine and its host.
package puzzle

import (
	"errors"

	"go-puzzles/internal/random"
)

// Opaque module-owned values. The engine stores and passes them around but
// never looks inside.
type (
	Params    any
	State     any
	UI        any
	DrawState any
)

// Game is implemented once per puzzle type.
//
// Params values are treated as immutable: DecodeParams and CustomParams
// return fresh values. States are never modified after construction;
// ExecuteMove returns a new State. UI values are mutable scratch owned by the
// engine.
type Game interface {
	Name() string
	PreferredTileSize() int

	DefaultParams() Params
	// FetchPreset returns the i'th built-in preset, or ok=false once the
	// list is exhausted.
	FetchPreset(i int) (title string, p Params, ok bool)
	// DecodeParams applies an encoded parameter string on top of base.
	DecodeParams(base Params, s string) Params
	// EncodeParams encodes p. With full=false only the fields that should
	// persist across games are written.
	EncodeParams(p Params, full bool) string
	CanConfigure() bool
	Configure(p Params) []ConfigItem
	CustomParams(items []ConfigItem) (Params, error)
	ValidateParams(p Params, full bool) error

	// NewDesc generates a puzzle description from params and a seeded
	// random stream. It must be a pure function of (p, rs).
	NewDesc(p Params, rs *random.State, interactive bool) (desc, aux string)
	ValidateDesc(p Params, desc string) error
	NewGame(p Params, desc string) State
	DupGame(s State) State

	CanSolve() bool
	Solve(initial, current State, aux string) (move string, err error)
	CanFormatAsText(p Params) bool
	TextFormat(s State) string

	NewUI(s State) UI
	EncodeUI(ui UI) string
	DecodeUI(ui UI, enc string)
	// ChangedState tells the UI that the current state jumped from old to
	// new outside of an ordinary move (undo, redo, solve, restart).
	ChangedState(ui UI, old, new State)

	// InterpretMove decodes an input event. ok=false means the event is
	// ignored; an empty move means only the UI changed.
	InterpretMove(s State, ui UI, ds DrawState, x, y int, b Button) (move string, ok bool)
	// ExecuteMove applies a move. A nil result rejects it.
	ExecuteMove(s State, move string) State

	ComputeSize(p Params, tile int) (w, h int)
	SetSize(dr Drawing, ds DrawState, p Params, tile int)
	Colours(fe Frontend) []Colour
	NewDrawState(dr Drawing, s State) DrawState
	Redraw(dr Drawing, ds DrawState, old, new State, dir int, ui UI, animTime, flashTime float64)
	AnimLength(old, new State, dir int, ui UI) float64
	FlashLength(old, new State, dir int, ui UI) float64

	// Status is +1 for a solved puzzle, -1 for a lost one, 0 otherwise.
	Status(s State) int
	WantsStatusbar() bool
	IsTimed() bool
	TimingState(s State, ui UI) bool
	Flags() Flags
}

// DescSuperseder is implemented by games that only settle their puzzle
// once play has started, for example by generating the layout around the
// first click. After each accepted move the engine passes the initial and
// current states; ok=true publishes desc as the game's description, with
// privDesc kept to rebuild the initial state on load.
type DescSuperseder interface {
	SupersedeDesc(initial, current State) (desc, privDesc string, ok bool)
}

// ErrCannotSolve is returned by Base.Solve.
var ErrCannotSolve = errors.New("this game does not support the solve operation")

// Base provides the optional parts of Game for modules that do not need
// them. Embed it and override what the puzzle supports.
type Base struct{}

func (Base) CanConfigure() bool                      { return false }
func (Base) Configure(Params) []ConfigItem           { return nil }
func (Base) CanSolve() bool                          { return false }
func (Base) CanFormatAsText(Params) bool             { return false }
func (Base) TextFormat(State) string                 { return "" }
func (Base) EncodeUI(UI) string                      { return "" }
func (Base) DecodeUI(UI, string)                     {}
func (Base) ChangedState(UI, State, State)           {}
func (Base) SetSize(Drawing, DrawState, Params, int) {}
func (Base) Status(State) int                        { return 0 }
func (Base) WantsStatusbar() bool                    { return false }
func (Base) IsTimed() bool                           { return false }
func (Base) TimingState(State, UI) bool              { return false }
func (Base) Flags() Flags                            { return 0 }

func (Base) CustomParams([]ConfigItem) (Params, error) {
	return nil, errors.New("this game does not support custom settings")
}

func (Base) Solve(State, State, string) (string, error) {
	return "", ErrCannotSolve
}

func (Base) AnimLength(State, State, int, UI) float64  { return 0 }
func (Base) FlashLength(State, State, int, UI) float64 { return 0 }
