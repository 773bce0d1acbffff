package midend

import (
	"encoding/hex"
	"strconv"

	"go-puzzles/internal/puzzle"
)

// Colours returns the game's palette with environment overrides applied.
// FIFTEEN_COLOUR_2=ff8000 replaces colour 2 of Fifteen.
func (m *Midend) Colours() []puzzle.Colour {
	cols := m.game.Colours(m.fe)
	for i := range cols {
		v, ok := m.lookupEnv(envName(m.game, "COLOUR_"+strconv.Itoa(i)))
		if !ok || len(v) < 6 {
			continue
		}
		rgb, err := hex.DecodeString(v[:6])
		if err != nil {
			m.log.Warn().Err(err).Int("colour", i).Msg("ignoring colour override")
			continue
		}
		cols[i] = puzzle.Colour{
			R: float64(rgb[0]) / 255,
			G: float64(rgb[1]) / 255,
			B: float64(rgb[2]) / 255,
		}
	}
	return cols
}
