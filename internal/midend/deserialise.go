package midend

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-puzzles/internal/obfuscate"
	"go-puzzles/internal/puzzle"
)

// maxValueLen bounds a single record so a corrupt length cannot make us
// allocate without limit.
const maxValueLen = 1 << 26

// readRecord reads one "KEY     :LEN:VALUE\n" record. Newlines before the
// key are skipped.
func readRecord(br *bufio.Reader) (key, val string, err error) {
	var c byte
	for {
		c, err = br.ReadByte()
		if err != nil {
			return "", "", ErrTruncated
		}
		if c != '\r' && c != '\n' {
			break
		}
	}

	var hdr [9]byte
	hdr[0] = c
	if _, err := io.ReadFull(br, hdr[1:]); err != nil {
		return "", "", ErrTruncated
	}
	if hdr[8] != ':' {
		return "", "", fmt.Errorf("%w: bad record header %q", ErrBadFormat, hdr[:])
	}
	key = string(hdr[:8])
	if i := strings.IndexAny(key, ": "); i >= 0 {
		key = key[:i]
	}

	n := 0
	for {
		c, err := br.ReadByte()
		if err != nil {
			return "", "", ErrTruncated
		}
		if c == ':' {
			break
		}
		if c < '0' || c > '9' {
			return "", "", fmt.Errorf("%w: bad length in %s record", ErrBadFormat, key)
		}
		n = n*10 + int(c-'0')
		if n > maxValueLen {
			return "", "", fmt.Errorf("%w: %s record too long", ErrBadFormat, key)
		}
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return "", "", ErrTruncated
	}

	// Every value ends a line. Anything else means LEN does not match the
	// value actually written.
	c, err = br.ReadByte()
	if err != nil {
		return "", "", ErrTruncated
	}
	if c != '\n' && c != '\r' {
		return "", "", fmt.Errorf("%w: %s record longer than its length", ErrBadFormat, key)
	}
	return key, string(buf), nil
}

// loaded collects the records of a save stream before anything is checked.
type loaded struct {
	parStr, cparStr string
	seed, desc      string
	privDesc, aux   string
	ui              string
	hasDesc         bool
	elapsed         float64
	nStates         int
	statePos        int
	moves           []entry
}

func (m *Midend) readSave(r io.Reader) (*loaded, error) {
	br := bufio.NewReader(r)
	ld := &loaded{statePos: -1}
	started := false

	for ld.nStates <= 0 || ld.statePos < 0 || len(ld.moves) < ld.nStates-1 {
		key, val, err := readRecord(br)
		if err != nil {
			if !started {
				return nil, fmt.Errorf("%w: %v", ErrNotSaveFile, err)
			}
			return nil, err
		}

		if !started {
			if key != "SAVEFILE" || val != saveMagic {
				return nil, ErrNotSaveFile
			}
			started = true
			continue
		}

		switch key {
		case "VERSION":
			if val != saveVersion {
				return nil, fmt.Errorf("%w: version %q", ErrVersion, val)
			}
		case "GAME":
			if val != m.game.Name() {
				return nil, fmt.Errorf("%w: %q", ErrWrongGame, val)
			}
		case "PARAMS":
			ld.parStr = val
		case "CPARAMS":
			ld.cparStr = val
		case "SEED":
			ld.seed = val
		case "DESC":
			ld.desc, ld.hasDesc = val, true
		case "PRIVDESC":
			ld.privDesc = val
		case "AUXINFO":
			aux, err := obfuscate.Reveal(m.transform, val)
			if err != nil {
				return nil, fmt.Errorf("%w: auxiliary data: %v", ErrBadFormat, err)
			}
			ld.aux = aux
		case "UI":
			ld.ui = val
		case "TIME":
			t, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: elapsed time: %v", ErrBadFormat, err)
			}
			ld.elapsed = t
		case "NSTATES":
			if ld.nStates > 0 {
				return nil, corrupt("two state counts provided", nil)
			}
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%w: state count: %v", ErrBadFormat, err)
			}
			if n <= 0 {
				return nil, corrupt("number of states is not positive", nil)
			}
			ld.nStates = n
		case "STATEPOS":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("%w: state position: %v", ErrBadFormat, err)
			}
			ld.statePos = n
		case "MOVE", "SOLVE", "RESTART":
			if ld.nStates <= 0 {
				return nil, fmt.Errorf("%w: %s record before state count", ErrBadFormat, key)
			}
			kind := KindMove
			switch key {
			case "SOLVE":
				kind = KindSolve
			case "RESTART":
				kind = KindRestart
			}
			ld.moves = append(ld.moves, entry{move: val, kind: kind})
		}
		// Unknown records are skipped.
	}
	return ld, nil
}

// Deserialise replaces the session with one read from r. The stream is
// read and checked in full, and the history rebuilt, before anything live
// is touched: on error the running session is exactly as it was.
func (m *Midend) Deserialise(r io.Reader) error {
	ld, err := m.readSave(r)
	if err != nil {
		m.log.Warn().Err(err).Msg("load failed")
		return err
	}

	params := m.game.DecodeParams(m.game.DefaultParams(), ld.parStr)
	if err := m.game.ValidateParams(params, true); err != nil {
		return corrupt("long-term parameters are invalid", err)
	}
	cparams := m.game.DecodeParams(m.game.DefaultParams(), ld.cparStr)
	if err := m.game.ValidateParams(cparams, true); err != nil {
		return corrupt("short-term parameters are invalid", err)
	}
	if !ld.hasDesc {
		return corrupt("game description is missing", nil)
	}
	if err := m.game.ValidateDesc(cparams, ld.desc); err != nil {
		return corrupt("game description is invalid", err)
	}
	if ld.privDesc != "" {
		if err := m.game.ValidateDesc(cparams, ld.privDesc); err != nil {
			return corrupt("private game description is invalid", err)
		}
	}
	if ld.statePos < 1 || ld.statePos > ld.nStates {
		return corrupt("game position is out of range", nil)
	}

	states, err := m.replay(cparams, ld)
	if err != nil {
		return err
	}

	ui := m.game.NewUI(states[0].state)
	if ld.ui != "" {
		m.game.DecodeUI(ui, ld.ui)
	}

	// Nothing below can fail.
	m.resetAnim()
	m.params, m.curParams = params, cparams
	m.next = pending{}
	m.seed, m.desc, m.privDesc, m.aux = ld.seed, ld.desc, ld.privDesc, ld.aux
	m.states = states
	m.statePos = ld.statePos
	m.ui = ui
	m.elapsed = ld.elapsed
	m.pressed = 0
	m.newDrawState(m.current())
	m.setTimer()

	m.log.Info().Int("states", len(states)).Int("pos", m.statePos).Msg("loaded")
	return nil
}

// replay rebuilds the history of a loaded save into a fresh slice.
func (m *Midend) replay(cparams puzzle.Params, ld *loaded) ([]entry, error) {
	initial := ld.desc
	if ld.privDesc != "" {
		initial = ld.privDesc
	}
	s := m.game.NewGame(cparams, initial)
	if s == nil {
		return nil, corrupt("game description could not be built", nil)
	}

	states := make([]entry, 0, ld.nStates)
	states = append(states, entry{state: s, kind: KindNewGame})
	for _, e := range ld.moves {
		prev := states[len(states)-1].state
		switch e.kind {
		case KindRestart:
			if err := m.game.ValidateDesc(cparams, e.move); err != nil {
				return nil, corrupt("invalid restart move", err)
			}
			e.state = m.game.NewGame(cparams, e.move)
		default:
			e.state = m.game.ExecuteMove(prev, e.move)
		}
		if e.state == nil {
			return nil, corrupt(fmt.Sprintf("invalid move %q", e.move), nil)
		}
		states = append(states, e)
	}
	if len(states) != ld.nStates {
		return nil, corrupt("history length does not match state count", nil)
	}
	return states, nil
}
