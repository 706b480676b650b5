package marker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/fsx"
)

// Store locates, reads and writes co-located marker files.
type Store struct {
	suffix string
}

// NewStore returns a Store using suffix (e.g. ".processed").
func NewStore(suffix string) *Store {
	return &Store{suffix: suffix}
}

// Suffix returns the marker file suffix.
func (s *Store) Suffix() string { return s.suffix }

// PathFor returns the marker path for the replay at path. It depends only on
// the replay's current name.
func (s *Store) PathFor(path string) string {
	dir, name := filepath.Split(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, stem+s.suffix)
}

// Has reports whether the replay at path has a marker.
func (s *Store) Has(path string) bool {
	_, err := os.Lstat(s.PathFor(path))
	return err == nil
}

// Write creates or overwrites the marker for path. A nil payload writes an
// empty marker.
func (s *Store) Write(path string, p *Payload) error {
	var data []byte
	if p != nil {
		var err error
		if data, err = p.Encode(); err != nil {
			return fmt.Errorf("encode marker: %w", err)
		}
	}
	mp := s.PathFor(path)
	if err := fsx.WriteFileAtomic(filepath.Dir(mp), filepath.Base(mp), data); err != nil {
		return fmt.Errorf("write marker %s: %w", filepath.Base(mp), err)
	}
	return nil
}

// Read returns the payload of the marker for path; (nil, nil) for an empty marker.
func (s *Store) Read(path string) (*Payload, error) {
	return ReadFile(s.PathFor(path))
}

// ReadFile reads a marker file directly.
func ReadFile(markerPath string) (*Payload, error) {
	b, err := os.ReadFile(markerPath)
	if err != nil {
		return nil, err
	}
	return DecodePayload(b)
}

// Migrate moves the marker of oldPath so it follows the replay to newPath.
// It reports whether a marker was moved. An existing marker at the new
// location is left untouched (and nothing is moved).
func (s *Store) Migrate(oldPath, newPath string) (bool, error) {
	from, to := s.PathFor(oldPath), s.PathFor(newPath)
	if from == to {
		return false, nil
	}
	if _, err := os.Lstat(from); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := fsx.RenameNoReplace(from, to); err != nil {
		if errors.Is(err, fsx.ErrTargetExists) {
			return false, nil
		}
		return false, fmt.Errorf("migrate marker %s: %w", filepath.Base(from), err)
	}
	return true, nil
}

// List returns the marker files directly inside dir, sorted by name.
func (s *Store) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), s.suffix) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
