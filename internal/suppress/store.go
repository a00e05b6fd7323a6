// Package suppress persists the set of filenames the operator has marked
// as "keep forever". Suppressed names are filtered out of every snapshot
// before it reaches the advisory oracle.
package suppress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"downsweep/internal/types"
)

// Entry is one persisted suppression, keyed by filename.
type Entry struct {
	Filename   string    `json:"filename"`
	MarkedDate time.Time `json:"marked_date"`
	Reason     string    `json:"reason"`
}

type storeFile struct {
	KeptFiles []Entry  `json:"kept_files"`
	Metadata  metadata `json:"metadata"`
}

type metadata struct {
	LastUpdated time.Time `json:"last_updated"`
}

// Store is a durable suppression set backed by one JSON file. The backing
// store is best-effort, not authoritative: a missing or corrupt file
// degrades to an empty set and never blocks a session.
type Store struct {
	path string
	log  zerolog.Logger
}

func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load returns the suppressed filename set. Missing file means empty set;
// a corrupt file logs a warning and also degrades to empty.
func (s *Store) Load() map[string]struct{} {
	out := map[string]struct{}{}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("could not read suppression store, treating as empty")
		}
		return out
	}
	var data storeFile
	if err := json.Unmarshal(b, &data); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("suppression store is corrupt, treating as empty")
		return out
	}
	for _, e := range data.KeptFiles {
		if e.Filename != "" {
			out[e.Filename] = struct{}{}
		}
	}
	return out
}

// Add records a filename as permanently suppressed. Adding a filename that
// is already present is a no-op. The write is durable before Add returns:
// the whole store is rewritten to a temp file and renamed into place, so a
// crash mid-write loses at most this one addition.
func (s *Store) Add(filename, reason string) error {
	data := s.read()
	for _, e := range data.KeptFiles {
		if e.Filename == filename {
			return nil
		}
	}
	now := time.Now()
	data.KeptFiles = append(data.KeptFiles, Entry{
		Filename:   filename,
		MarkedDate: now,
		Reason:     reason,
	})
	data.Metadata.LastUpdated = now
	return s.write(data)
}

// read loads the backing file permissively for a read-modify-write cycle.
func (s *Store) read() storeFile {
	var data storeFile
	b, err := os.ReadFile(s.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(b, &data); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("suppression store is corrupt, resetting")
		return storeFile{}
	}
	return data
}

func (s *Store) write(data storeFile) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("suppress: encode store: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("suppress: create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".kept_files.tmp*")
	if err != nil {
		return fmt.Errorf("suppress: create temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("suppress: write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("suppress: close store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("suppress: replace store: %w", err)
	}
	return nil
}

// Filter removes records whose name is in the suppressed set, preserving
// the relative order of the rest. Pure: the input slice is not modified.
func Filter(records []types.EntryRecord, suppressed map[string]struct{}) []types.EntryRecord {
	out := make([]types.EntryRecord, 0, len(records))
	for _, r := range records {
		if _, ok := suppressed[r.Name]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}
