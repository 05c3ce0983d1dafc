// Package store persists reminder records and daily markers as flat JSON files.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
)

// Store reads and writes the state files of one data directory.
// A single mutex serializes access between the UI and the scheduler.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New returns a store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Open resolves the data directory (dir, or the default when empty),
// creates it and returns the store.
func Open(dir string) (*Store, error) {
	if dir == "" {
		def, err := config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = def
	}
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return New(dir), nil
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of a state file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// LoadBirthdays reads birthdays.json. Each element is decoded on its own so a
// malformed entry only drops itself; it comes back as a skipped result.
func (s *Store) LoadBirthdays() []engine.Result[engine.BirthdayRecord] {
	return loadList[engine.BirthdayRecord](s, config.BirthdaysFile)
}

// LoadEvents reads events.json with the same per-element leniency as LoadBirthdays.
func (s *Store) LoadEvents() []engine.Result[engine.EventRecord] {
	return loadList[engine.EventRecord](s, config.EventsFile)
}

// SaveBirthdays replaces birthdays.json with records.
func (s *Store) SaveBirthdays(records []engine.BirthdayRecord) error {
	if records == nil {
		records = []engine.BirthdayRecord{}
	}
	return s.write(config.BirthdaysFile, records)
}

// SaveEvents replaces events.json with records.
func (s *Store) SaveEvents(records []engine.EventRecord) error {
	if records == nil {
		records = []engine.EventRecord{}
	}
	return s.write(config.EventsFile, records)
}

// LoadMarker reads a marker file. Missing or corrupt files yield the empty marker.
func (s *Store) LoadMarker(name string) engine.Marker {
	var m engine.Marker
	if !s.read(name, &m) {
		return engine.Marker{}
	}
	return m
}

// SaveMarker replaces a marker file.
func (s *Store) SaveMarker(name string, m engine.Marker) error {
	return s.write(name, m)
}

func loadList[T any](s *Store, name string) []engine.Result[T] {
	var raw []json.RawMessage
	if !s.read(name, &raw) {
		return nil
	}

	results := make([]engine.Result[T], 0, len(raw))
	for i, item := range raw {
		var rec T
		err := json.Unmarshal(item, &rec)
		if err != nil {
			slog.Debug(config.MsgRecordSkipped,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyPath, name,
				config.LogKeyIndex, i,
				config.LogKeyReason, err)
		}
		results = append(results, engine.Result[T]{Index: i, Record: rec, Err: err})
	}
	return results
}

// read decodes a state file into v and reports whether it succeeded.
func (s *Store) read(name string, v any) bool {
	s.mu.Lock()
	data, err := os.ReadFile(s.Path(name))
	s.mu.Unlock()

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompStore),
		slog.String(config.LogKeyPath, name),
	)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debug(config.MsgStateMissing, config.LogKeyError, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Debug(config.MsgStateCorrupt, config.LogKeyError, err)
		return false
	}
	return true
}

// write encodes v and atomically replaces the named file.
func (s *Store) write(name string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", config.JSONIndent)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreEncode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+config.TempFilePattern)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	slog.Debug(config.MsgStateSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyPath, name)
	return nil
}
