// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package watermark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/trandinhkhoi/filmsync/internal/platform/constants"
)

// FileStore is the default [Store]: a single JSON document on disk, re-read
// on every Get and Set, rewritten atomically on every Set.
type FileStore struct {
	path string

	mu    sync.Mutex
	state map[string]string // raw JSON-encodable values, keyed by stream/cursor key
}

// NewFileStore returns a store backed by path. The file is created lazily
// on the first Set; a missing file reads as an empty state, matching the
// original JsonFileStorage's FileNotFoundError fallback.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, state: make(map[string]string)}
}

// Get returns the persisted cursor for streamKey, reading the state file
// from disk on each call. A missing timestamp key means the stream has
// never been advanced and defaultCursor is returned.
func (s *FileStore) Get(streamKey string, defaultCursor Cursor) (Cursor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return Cursor{}, err
	}

	rawModified, ok := s.state[streamKey]
	if !ok {
		return defaultCursor, nil
	}

	modified, err := time.Parse(time.RFC3339Nano, rawModified)
	if err != nil {
		return Cursor{}, fmt.Errorf("watermark: stream %s: corrupt timestamp %q: %w", streamKey, rawModified, err)
	}

	id := s.state[constants.CursorIDKey(streamKey)]

	return Cursor{Modified: modified, ID: id}, nil
}

// Set persists c for streamKey via a temp-file-then-rename write, so a
// crash mid-write never corrupts the previous, still-valid state file.
func (s *FileStore) Set(streamKey string, c Cursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}

	s.state[streamKey] = c.Modified.Format(time.RFC3339Nano)
	s.state[constants.CursorIDKey(streamKey)] = c.ID

	return s.writeLocked()
}

func (s *FileStore) loadLocked() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("watermark: read %s: %w", s.path, err)
	}

	decoded := make(map[string]string)
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("watermark: decode %s: %w", s.path, err)
	}

	s.state = decoded
	return nil
}

func (s *FileStore) writeLocked() error {
	encoded, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("watermark: encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".watermark-*.tmp")
	if err != nil {
		return fmt.Errorf("watermark: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("watermark: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("watermark: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("watermark: rename temp file: %w", err)
	}

	return nil
}
