// Package savestore keeps serialised puzzle sessions in named slots on disk.
package savestore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNoSave is returned by Load when the slot is empty.
	ErrNoSave = errors.New("no saved game in slot")
	// ErrBadSlot rejects slot names that are not plain file names.
	ErrBadSlot = errors.New("invalid slot name")
)

const indexName = "index.json"

// Entry describes one saved slot.
type Entry struct {
	Game   string `json:"game"`
	Slot   string `json:"slot"`
	GameID string `json:"game_id"`
	Saved  string `json:"saved"`
}

// Storage defines the interface for saving and loading sessions.
// This allows for mocking the storage layer during tests.
type Storage interface {
	// Save stores data in the slot named by e, replacing what was there.
	Save(e Entry, data []byte) error
	// Load returns the data saved in a slot.
	Load(game, slot string) ([]byte, error)
	// List returns the saved slots for game, newest first. An empty game
	// lists every slot.
	List(game string) ([]Entry, error)
}

// FileStorage is a Storage that writes one file per slot, plus a JSON
// index of what is saved where.
type FileStorage struct {
	dir string
	now func() time.Time
}

// NewFileStorage creates a FileStorage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir, now: time.Now}
}

// DefaultDir returns $XDG_DATA_HOME/go-puzzles/saves, falling back to
// ~/.local/share when XDG_DATA_HOME is not set.
func DefaultDir() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "go-puzzles", "saves"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "go-puzzles", "saves"), nil
}

// Dir is the directory holding the saves.
func (fs *FileStorage) Dir() string {
	return fs.dir
}

func checkName(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadSlot, s)
	}
	return nil
}

func (fs *FileStorage) path(game, slot string) string {
	return filepath.Join(fs.dir, strings.ToLower(game), slot+".sav")
}

// Save writes the slot file and records it in the index. The slot file is
// written to a temporary name first so a failed write never clobbers an
// older save.
func (fs *FileStorage) Save(e Entry, data []byte) error {
	if err := checkName(e.Game); err != nil {
		return err
	}
	if err := checkName(e.Slot); err != nil {
		return err
	}

	p := fs.path(e.Game, e.Slot)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("error creating save directory: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("error writing save file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error replacing save file: %w", err)
	}

	entries, err := fs.loadIndex()
	if err != nil {
		return err
	}
	updated := make([]Entry, 0, len(entries)+1)
	for _, old := range entries {
		if !(strings.EqualFold(old.Game, e.Game) && old.Slot == e.Slot) {
			updated = append(updated, old)
		}
	}
	if e.Saved == "" {
		e.Saved = fs.now().UTC().Format(time.RFC3339)
	}
	updated = append(updated, e)
	return fs.saveIndex(updated)
}

// Load returns the data saved in a slot, or ErrNoSave.
func (fs *FileStorage) Load(game, slot string) ([]byte, error) {
	if err := checkName(game); err != nil {
		return nil, err
	}
	if err := checkName(slot); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fs.path(game, slot))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w %q", ErrNoSave, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading save file: %w", err)
	}
	return data, nil
}

// List returns the index entries for game, newest first. An empty game
// lists every save.
func (fs *FileStorage) List(game string) ([]Entry, error) {
	entries, err := fs.loadIndex()
	if err != nil {
		return nil, err
	}
	var ret []Entry
	for _, e := range entries {
		if game == "" || strings.EqualFold(e.Game, game) {
			ret = append(ret, e)
		}
	}
	// RFC 3339 timestamps in UTC sort lexically.
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Saved > ret[j].Saved
	})
	return ret, nil
}

// loadIndex reads the index as a stream of JSON objects. A missing index
// is an empty one.
func (fs *FileStorage) loadIndex() ([]Entry, error) {
	file, err := os.Open(filepath.Join(fs.dir, indexName))
	if os.IsNotExist(err) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening save index for reading: %w", err)
	}
	defer file.Close()

	entries := make([]Entry, 0)
	decoder := json.NewDecoder(file)
	for {
		var e Entry
		if err := decoder.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error decoding save index: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (fs *FileStorage) saveIndex(entries []Entry) error {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("error creating save directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(fs.dir, indexName), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("error opening save index for writing: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, e := range entries {
		if err := encoder.Encode(e); err != nil {
			return fmt.Errorf("error encoding save index: %w", err)
		}
	}
	return writer.Flush()
}
