package midend

import (
	"fmt"
	"strings"

	"go-puzzles/internal/puzzle"
)

// IDMode says how a game ID without a '#' or ':' separator is read.
type IDMode int

const (
	DefParams IDMode = iota
	DefSeed
	DefDesc
)

// ConfigKind selects one of the three settings dialogs.
type ConfigKind int

const (
	CfgSettings ConfigKind = iota
	CfgSeed
	CfgDesc
)

// GameID parses "params", "params#seed" or "params:desc" and arranges for
// the next NewGame to use it. On error nothing changes.
func (m *Midend) GameID(id string) error {
	return m.gameID(id, DefParams)
}

func (m *Midend) gameID(id string, def IDMode) error {
	var par, seed, desc string
	var hasPar, hasSeed, hasDesc bool

	hash := strings.IndexByte(id, '#')
	colon := strings.IndexByte(id, ':')
	switch {
	case colon >= 0 && (hash < 0 || colon < hash):
		par, desc = id[:colon], id[colon+1:]
		hasPar, hasDesc = true, true
	case hash >= 0:
		par, seed = id[:hash], id[hash+1:]
		hasPar, hasSeed = true, true
	case def == DefSeed:
		seed, hasSeed = id, true
	case def == DefDesc:
		desc, hasDesc = id, true
	default:
		par, hasPar = id, true
	}

	params := m.params
	curParams := m.curParams
	if curParams == nil {
		curParams = m.params
	}

	if hasPar {
		tmp := m.game.DecodeParams(m.params, par)
		if err := m.game.ValidateParams(tmp, true); err != nil {
			return err
		}
		curParams = tmp

		// Only the persistent subset reaches the long-term params unless
		// the ID was nothing but params.
		if hasSeed || hasDesc {
			params = m.game.DecodeParams(m.params, m.game.EncodeParams(tmp, false))
		} else {
			params = tmp
		}
	}

	if hasDesc {
		if err := m.game.ValidateDesc(curParams, desc); err != nil {
			return err
		}
	}

	m.params = params
	m.next = pending{mode: genNothing}
	switch {
	case hasDesc:
		m.next = pending{mode: genGotDesc, params: curParams, desc: desc}
	case hasSeed:
		m.next = pending{mode: genGotSeed, params: curParams, seed: seed}
	}

	m.log.Debug().
		Str("id", id).
		Bool("seed", hasSeed).
		Bool("desc", hasDesc).
		Msg("game id accepted")
	return nil
}

// GameIDString returns the ID of the puzzle being played: "params:desc" for
// CfgDesc or "params#seed" for CfgSeed. It is empty before the first game.
func (m *Midend) GameIDString(which ConfigKind) string {
	if m.statePos == 0 || m.curParams == nil {
		return ""
	}
	switch which {
	case CfgDesc:
		return m.game.EncodeParams(m.curParams, false) + ":" + m.desc
	case CfgSeed:
		return m.game.EncodeParams(m.curParams, true) + "#" + m.seed
	}
	return ""
}

// GetConfig returns the items of a settings dialog and its title.
func (m *Midend) GetConfig(which ConfigKind) (string, []puzzle.ConfigItem, error) {
	switch which {
	case CfgSettings:
		if !m.game.CanConfigure() {
			return "", nil, fmt.Errorf("%s cannot be configured", m.game.Name())
		}
		return m.game.Name() + " configuration", m.game.Configure(m.params), nil
	case CfgSeed, CfgDesc:
		if m.statePos == 0 {
			return "", nil, ErrNoGame
		}
		item := puzzle.ConfigItem{Name: "Game ID", Type: puzzle.ConfigString, Value: m.GameIDString(which)}
		title := m.game.Name() + " game selection"
		if which == CfgSeed {
			item.Name = "Game random seed"
			title = m.game.Name() + " random selection"
		}
		return title, []puzzle.ConfigItem{item}, nil
	}
	return "", nil, ErrUnknownConfig
}

// SetConfig applies a settings dialog. On error nothing changes.
func (m *Midend) SetConfig(which ConfigKind, items []puzzle.ConfigItem) error {
	switch which {
	case CfgSettings:
		p, err := m.game.CustomParams(items)
		if err != nil {
			return err
		}
		if err := m.game.ValidateParams(p, true); err != nil {
			return err
		}
		m.params = p
		return nil
	case CfgSeed, CfgDesc:
		if len(items) == 0 {
			return ErrNoConfigValues
		}
		mode := DefSeed
		if which == CfgDesc {
			mode = DefDesc
		}
		return m.gameID(items[0].Value, mode)
	}
	return ErrUnknownConfig
}
