// Package games lists the puzzles built into the binary.
package games

import (
	"fmt"
	"sort"
	"strings"

	"go-puzzles/internal/games/fifteen"
	"go-puzzles/internal/puzzle"
)

var registry = map[string]func() puzzle.Game{
	"fifteen": func() puzzle.Game { return fifteen.New() },
}

// Names returns the registered game names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns one instance of every registered game, sorted by name.
func List() []puzzle.Game {
	var ret []puzzle.Game
	for _, name := range Names() {
		ret = append(ret, registry[name]())
	}
	return ret
}

// Lookup finds a game by name, ignoring case.
func Lookup(name string) (puzzle.Game, error) {
	ctor, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown game %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}
