// Package backup snapshots a replay before the pipeline mutates it.
package backup

import (
	"fmt"
	"path/filepath"

	"github.com/lucasfepe/sc2replayprocessor/internal/fsx"
)

// Copy describes one backup that was written.
type Copy struct {
	Source string
	Path   string
	Bytes  int64
}

// Manager copies replays into a single backup directory, created on first
// use. A backup with the same name is replaced: the latest pre-mutation
// snapshot is the authoritative one.
type Manager struct {
	dir string
}

// NewManager returns a Manager writing into dir.
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string { return m.dir }

// PathFor returns where the backup of src is (or would be) stored.
func (m *Manager) PathFor(src string) string {
	return filepath.Join(m.dir, filepath.Base(src))
}

// Backup copies src verbatim, preserving its modification time.
func (m *Manager) Backup(src string) (Copy, error) {
	dst := m.PathFor(src)
	n, err := fsx.CopyFile(src, dst)
	if err != nil {
		return Copy{}, fmt.Errorf("backup %s: %w", filepath.Base(src), err)
	}
	return Copy{Source: src, Path: dst, Bytes: n}, nil
}
