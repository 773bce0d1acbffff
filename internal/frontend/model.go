// Package frontend is the terminal host: a bubbletea program that draws a
// puzzle session, feeds it input and drives its timer.
package frontend

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"go-puzzles/internal/midend"
	"go-puzzles/internal/puzzle"
	"go-puzzles/internal/savestore"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	tickInterval = 20 * time.Millisecond
	quickSlot    = "quick"
	// canvasTop is the screen row where the canvas starts, below the title.
	canvasTop = 1
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	Logger  zerolog.Logger
	Store   savestore.Storage
	Env     func(string) (string, bool)
	Presets []midend.PresetSpec
}

// Model is the bubbletea model wrapping one puzzle session.
type Model struct {
	mid   *midend.Midend
	game  puzzle.Game
	host  *host
	store savestore.Storage
	log   zerolog.Logger
	title string

	keys  keyMap
	help  help.Model
	input textinput.Model
	// inputKind is the dialog the text input is filling in, when focused.
	inputKind midend.ConfigKind

	ticking  bool
	lastTick time.Time
	now      func() time.Time

	message string
	err     error
}

// New creates a model for game. Call Start or Load before running it.
func New(game puzzle.Game, opts Options) *Model {
	session := uuid.NewString()
	log := opts.Logger.With().Str("session", session).Logger()

	h := newHost()
	mopts := []midend.Option{
		midend.WithLogger(log),
		midend.WithExtraPresets(opts.Presets),
	}
	if opts.Env != nil {
		mopts = append(mopts, midend.WithEnv(opts.Env))
	}

	ti := textinput.New()
	ti.CharLimit = 4096

	return &Model{
		mid:   midend.New(h, game, mopts...),
		game:  game,
		host:  h,
		store: opts.Store,
		log:   log,
		title: cases.Title(language.English).String(game.Name()),
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: ti,
		now:   time.Now,
	}
}

// Midend exposes the session, mainly for tests and the CLI.
func (m *Model) Midend() *midend.Midend {
	return m.mid
}

// Start begins a game. A non-empty id is applied first, as with the game
// ID dialog.
func (m *Model) Start(id string) error {
	if id != "" {
		if err := m.mid.GameID(id); err != nil {
			return fmt.Errorf("game id %q: %w", id, err)
		}
	}
	m.mid.NewGame()
	m.relayout()
	return nil
}

// Load replaces the session with a saved one.
func (m *Model) Load(r io.Reader) error {
	if err := m.mid.Deserialise(r); err != nil {
		return err
	}
	m.relayout()
	return nil
}

// relayout resizes the canvas to the current puzzle and repaints it.
func (m *Model) relayout() {
	w, h := m.mid.Size(0)
	m.host.canvas.resize(w, h)
	m.host.canvas.setPalette(m.mid.Colours())
	m.mid.ForceRedraw()
}

// Init starts the tick loop if the session already wants ticks.
func (m *Model) Init() tea.Cmd {
	return m.scheduleTick()
}

// scheduleTick starts the tick loop if the session wants ticks and none is
// pending.
func (m *Model) scheduleTick() tea.Cmd {
	if !m.host.timer || m.ticking {
		return nil
	}
	m.ticking = true
	m.lastTick = m.now()
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update feeds ticks, mouse events and key presses to the session.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ticking = false
		t := time.Time(msg)
		m.mid.Timer(t.Sub(m.lastTick).Seconds())
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.MouseMsg:
		if b, ok := mouseButton(msg); ok {
			x, y := msg.X/cellWidth, msg.Y-canvasTop
			if !m.mid.ProcessKey(x, y, b) {
				return m, tea.Quit
			}
		}
	case tea.KeyMsg:
		if m.input.Focused() {
			return m, m.updateInput(msg)
		}
		if quit := m.handleKey(msg); quit {
			return m, tea.Quit
		}
	}
	return m, m.scheduleTick()
}

// handleKey deals with one key press outside the text input. It reports
// whether the program should exit.
func (m *Model) handleKey(msg tea.KeyMsg) bool {
	m.message, m.err = "", nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Restart):
		m.mid.RestartGame()
	case key.Matches(msg, m.keys.Solve):
		if err := m.mid.Solve(); err != nil {
			m.err = err
		}
	case key.Matches(msg, m.keys.GameID):
		m.openInput(midend.CfgDesc)
	case key.Matches(msg, m.keys.Seed):
		m.openInput(midend.CfgSeed)
	case key.Matches(msg, m.keys.Preset):
		m.choosePreset(int(msg.Runes[0] - '1'))
	case key.Matches(msg, m.keys.Save):
		m.save()
	case key.Matches(msg, m.keys.Load):
		m.load()
	default:
		b, ok := buttonFor(msg)
		if !ok {
			return false
		}
		if !m.mid.ProcessKey(0, 0, b) {
			return true
		}
		// A new game starts from a blank canvas.
		if b == 'n' || b == 'N' || b == puzzle.Ctrl('n') {
			m.relayout()
		}
	}
	return false
}

func (m *Model) openInput(which midend.ConfigKind) {
	_, items, err := m.mid.GetConfig(which)
	if err != nil {
		m.err = err
		return
	}
	m.inputKind = which
	m.input.Prompt = items[0].Name + ": "
	m.input.SetValue(items[0].Value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		m.input.Blur()
		val := strings.TrimSpace(m.input.Value())
		if err := m.mid.SetConfig(m.inputKind, []puzzle.ConfigItem{{Value: val}}); err != nil {
			m.err = err
			return nil
		}
		m.mid.NewGame()
		m.relayout()
		return m.scheduleTick()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) choosePreset(i int) {
	if i < 0 || i >= m.mid.NumPresets() {
		return
	}
	title, p := m.mid.Preset(i)
	m.mid.SetParams(p)
	m.mid.NewGame()
	m.relayout()
	m.message = title
}

func (m *Model) save() {
	if m.store == nil {
		m.err = fmt.Errorf("saving is not available")
		return
	}
	var buf bytes.Buffer
	if err := m.mid.Serialise(&buf); err != nil {
		m.err = err
		return
	}
	entry := savestore.Entry{
		Game:   m.game.Name(),
		Slot:   quickSlot,
		GameID: m.mid.GameIDString(midend.CfgDesc),
	}
	if err := m.store.Save(entry, buf.Bytes()); err != nil {
		m.log.Error().Err(err).Msg("save failed")
		m.err = err
		return
	}
	m.message = "Saved"
}

func (m *Model) load() {
	if m.store == nil {
		m.err = fmt.Errorf("loading is not available")
		return
	}
	data, err := m.store.Load(m.game.Name(), quickSlot)
	if err != nil {
		m.err = err
		return
	}
	if err := m.Load(bytes.NewReader(data)); err != nil {
		m.err = err
		return
	}
	m.message = "Loaded"
}

// View draws the title, the canvas, the status line and one line of help
// or feedback.
func (m *Model) View() string {
	var b strings.Builder

	title := m.title
	if p := m.mid.CurrentParams(); p != nil {
		title += " " + m.game.EncodeParams(p, true)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	b.WriteString(m.host.canvas.render())
	b.WriteByte('\n')

	if m.mid.WantsStatusbar() {
		b.WriteString(statusStyle.Render(m.host.status))
		b.WriteByte('\n')
	}

	switch {
	case m.input.Focused():
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.message != "":
		b.WriteString(messageStyle.Render(m.message))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}
