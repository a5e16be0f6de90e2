// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements flat-file persistence for named record
// collections. Each collection lives in <dir>/<name>.json as a
// pretty-printed JSON array; the whole file is rewritten on every
// save. A per-collection mutex serializes read-modify-write cycles
// within the process, and saves go through a temp-file rename so a
// crash mid-write never leaves a half-written collection behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store manages the data directory holding collection files.
// The process is assumed to be the only writer of that directory.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open prepares a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing the named collection.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// lock returns the mutex guarding the named collection.
func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Load reads all records of the named collection. A missing file is
// created holding an empty array. Unreadable or corrupt files degrade
// to an empty collection: the failure is logged, never returned.
func Load[T any](s *Store, name string) []T {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return load[T](s, name)
}

// Save replaces the named collection with the given records.
func Save[T any](s *Store, name string, records []T) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return save(s, name, records)
}

// Update runs fn over the current records and persists its result,
// holding the collection lock across the whole read-modify-write
// cycle. If fn returns an error nothing is written and the error is
// passed through.
func Update[T any](s *Store, name string, fn func([]T) ([]T, error)) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	records, err := fn(load[T](s, name))
	if err != nil {
		return err
	}
	return save(s, name, records)
}

// load reads the collection without locking. Callers hold the lock.
func load[T any](s *Store, name string) []T {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		if initErr := save(s, name, []T{}); initErr != nil {
			slog.Warn("initializing collection file", "collection", name, "error", initErr)
		}
		return []T{}
	}
	if err != nil {
		slog.Warn("reading collection, treating as empty", "collection", name, "error", err)
		return []T{}
	}

	if len(data) == 0 {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		slog.Warn("corrupt collection file, treating as empty", "collection", name, "error", err)
		return []T{}
	}
	return records
}

// save writes the collection without locking. Callers hold the lock.
func save[T any](s *Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", name, err)
	}
	return writeAtomic(s.dir, s.Path(name), data)
}

// LoadMap reads a JSON-object file, used for the static text mapping.
// Missing files are created holding an empty object; corrupt files
// degrade to an empty map.
func LoadMap(s *Store, name string) map[string]string {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		if initErr := saveMap(s, name, map[string]string{}); initErr != nil {
			slog.Warn("initializing map file", "collection", name, "error", initErr)
		}
		return map[string]string{}
	}
	if err != nil {
		slog.Warn("reading map file, treating as empty", "collection", name, "error", err)
		return map[string]string{}
	}

	m := map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &m); err != nil {
			slog.Warn("corrupt map file, treating as empty", "collection", name, "error", err)
			return map[string]string{}
		}
	}
	return m
}

// SaveMap replaces a JSON-object file with the given mapping.
func SaveMap(s *Store, name string, m map[string]string) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return saveMap(s, name, m)
}

func saveMap(s *Store, name string, m map[string]string) error {
	if m == nil {
		m = map[string]string{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding map %s: %w", name, err)
	}
	return writeAtomic(s.dir, s.Path(name), data)
}

// writeAtomic writes data to a temp file in dir and renames it over
// path, so readers only ever observe a complete file.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
