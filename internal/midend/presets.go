package midend

import (
	"strings"

	"go-puzzles/internal/puzzle"
)

// PresetSpec is a preset supplied from outside the game: a menu title and an
// encoded params string.
type PresetSpec struct {
	Title  string
	Params string
}

type preset struct {
	title  string
	params puzzle.Params
}

// ParsePresetList splits "title:params:title:params". There is no escaping,
// so a title cannot contain a colon. A trailing title without params gets
// an empty params string.
func ParsePresetList(s string) []PresetSpec {
	var specs []PresetSpec
	for s != "" {
		var spec PresetSpec
		spec.Title, s, _ = strings.Cut(s, ":")
		spec.Params, s, _ = strings.Cut(s, ":")
		specs = append(specs, spec)
	}
	return specs
}

func (m *Midend) loadPresets() {
	if m.presetsLoaded {
		return
	}
	m.presetsLoaded = true

	for i := 0; ; i++ {
		title, p, ok := m.game.FetchPreset(i)
		if !ok {
			break
		}
		m.presets = append(m.presets, preset{title: title, params: p})
	}

	var extra []PresetSpec
	if v, ok := m.lookupEnv(envName(m.game, "PRESETS")); ok {
		extra = append(extra, ParsePresetList(v)...)
	}
	extra = append(extra, m.extraPresets...)

	for _, spec := range extra {
		p := m.game.DecodeParams(m.game.DefaultParams(), spec.Params)
		if err := m.game.ValidateParams(p, true); err != nil {
			m.log.Debug().Err(err).Str("title", spec.Title).Msg("dropping invalid preset")
			continue
		}
		m.presets = append(m.presets, preset{title: spec.Title, params: p})
	}
}

// NumPresets returns the number of presets, built-in ones first.
func (m *Midend) NumPresets() int {
	m.loadPresets()
	return len(m.presets)
}

// Preset returns the title and params of preset i.
func (m *Midend) Preset(i int) (string, puzzle.Params) {
	m.loadPresets()
	p := m.presets[i]
	return p.title, p.params
}

// PresetIndex returns the preset matching the long-term params, or -1.
func (m *Midend) PresetIndex() int {
	m.loadPresets()
	want := m.game.EncodeParams(m.params, true)
	for i, p := range m.presets {
		if m.game.EncodeParams(p.params, true) == want {
			return i
		}
	}
	return -1
}
