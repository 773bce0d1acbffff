package frontend

import (
	"go-puzzles/internal/puzzle"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the bindings the host handles itself. Everything else is
// translated to a puzzle.Button and given to the session.
type keyMap struct {
	Quit    key.Binding
	New     key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Restart key.Binding
	Solve   key.Binding
	GameID  key.Binding
	Seed    key.Binding
	Preset  key.Binding
	Save    key.Binding
	Load    key.Binding
	Help    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		// New, undo and redo are handled by the session; these exist for
		// the help line.
		New:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Undo: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redo")),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "restart"),
		),
		Solve: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "solve"),
		),
		GameID: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "game id"),
		),
		Seed: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "seed"),
		),
		Preset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "presets"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "load"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Undo, k.Redo, k.Solve, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Undo, k.Redo, k.Restart},
		{k.Solve, k.GameID, k.Seed, k.Preset},
		{k.Save, k.Load, k.Quit, k.Help},
	}
}

// buttonFor translates a key press into a puzzle button.
func buttonFor(msg tea.KeyMsg) (puzzle.Button, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return puzzle.CursorUp, true
	case tea.KeyDown:
		return puzzle.CursorDown, true
	case tea.KeyLeft:
		return puzzle.CursorLeft, true
	case tea.KeyRight:
		return puzzle.CursorRight, true
	case tea.KeyShiftUp:
		return puzzle.CursorUp | puzzle.ModShift, true
	case tea.KeyShiftDown:
		return puzzle.CursorDown | puzzle.ModShift, true
	case tea.KeyShiftLeft:
		return puzzle.CursorLeft | puzzle.ModShift, true
	case tea.KeyShiftRight:
		return puzzle.CursorRight | puzzle.ModShift, true
	case tea.KeyCtrlUp:
		return puzzle.CursorUp | puzzle.ModCtrl, true
	case tea.KeyCtrlDown:
		return puzzle.CursorDown | puzzle.ModCtrl, true
	case tea.KeyCtrlLeft:
		return puzzle.CursorLeft | puzzle.ModCtrl, true
	case tea.KeyCtrlRight:
		return puzzle.CursorRight | puzzle.ModCtrl, true
	case tea.KeyEnter:
		return puzzle.CursorSelect, true
	case tea.KeySpace:
		return puzzle.CursorSelect2, true
	case tea.KeyBackspace:
		return 127, true
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return puzzle.Button(msg.Runes[0]), true
		}
		return 0, false
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlUnderscore && msg.Type != tea.KeyEscape {
		return puzzle.Button(msg.Type), true
	}
	return 0, false
}

// mouseButton translates a mouse event. Releases are reported as a left
// release; the session rewrites them to whichever button is held.
func mouseButton(msg tea.MouseMsg) (puzzle.Button, bool) {
	var press puzzle.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		press = puzzle.LeftButton
	case tea.MouseButtonMiddle:
		press = puzzle.MiddleButton
	case tea.MouseButtonRight:
		press = puzzle.RightButton
	default:
		if msg.Action == tea.MouseActionRelease {
			return puzzle.LeftRelease, true
		}
		return 0, false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		return press, true
	case tea.MouseActionMotion:
		return puzzle.DragOf(press), true
	case tea.MouseActionRelease:
		return puzzle.ReleaseOf(press), true
	}
	return 0, false
}
