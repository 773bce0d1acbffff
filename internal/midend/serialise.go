package midend

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"go-puzzles/internal/obfuscate"
)

const (
	saveMagic   = "go-puzzles saved game"
	saveVersion = "1"
)

// recordWriter writes "KEY     :LEN:VALUE\n" records and keeps the first
// write error.
type recordWriter struct {
	w   *bufio.Writer
	err error
}

func (rw *recordWriter) write(key, val string) {
	if rw.err != nil {
		return
	}
	_, rw.err = fmt.Fprintf(rw.w, "%-8.8s:%d:%s\n", key, len(val), val)
}

// Serialise writes the whole session: params, identity, UI, elapsed time and
// every history entry.
func (m *Midend) Serialise(w io.Writer) error {
	if m.statePos == 0 {
		return ErrNoGame
	}
	rw := &recordWriter{w: bufio.NewWriter(w)}

	rw.write("SAVEFILE", saveMagic)
	rw.write("VERSION", saveVersion)
	rw.write("GAME", m.game.Name())
	rw.write("PARAMS", m.game.EncodeParams(m.params, true))
	rw.write("CPARAMS", m.game.EncodeParams(m.curParams, true))
	if m.seed != "" {
		rw.write("SEED", m.seed)
	}
	rw.write("DESC", m.desc)
	if m.privDesc != "" && m.privDesc != m.desc {
		rw.write("PRIVDESC", m.privDesc)
	}
	if m.aux != "" {
		// Hidden so that peeking at a save file does not give the answer away.
		rw.write("AUXINFO", obfuscate.Hide(m.transform, m.aux))
	}
	if ui := m.game.EncodeUI(m.ui); ui != "" {
		rw.write("UI", ui)
	}
	if m.game.IsTimed() {
		rw.write("TIME", strconv.FormatFloat(m.elapsed, 'g', -1, 64))
	}
	rw.write("NSTATES", strconv.Itoa(len(m.states)))
	rw.write("STATEPOS", strconv.Itoa(m.statePos))

	for _, e := range m.states[1:] {
		rw.write(e.kind.String(), e.move)
	}

	if rw.err != nil {
		return fmt.Errorf("writing save data: %w", rw.err)
	}
	if err := rw.w.Flush(); err != nil {
		return fmt.Errorf("writing save data: %w", err)
	}
	m.log.Debug().Int("states", len(m.states)).Msg("serialised")
	return nil
}
