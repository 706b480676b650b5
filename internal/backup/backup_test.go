package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup_CreatesDirAndCopies(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "game.SC2Replay")
	require.NoError(t, os.WriteFile(src, []byte("original"), 0o644))
	mtime := time.Date(2023, 6, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	m := NewManager(filepath.Join(dir, "backups"))
	c, err := m.Backup(src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backups", "game.SC2Replay"), c.Path)
	assert.EqualValues(t, 8, c.Bytes)

	b, err := os.ReadFile(c.Path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(b))
	fi, err := os.Stat(c.Path)
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(mtime))
}

func TestBackup_ReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "game.SC2Replay")
	m := NewManager(filepath.Join(dir, "backups"))

	require.NoError(t, os.WriteFile(src, []byte("first"), 0o644))
	_, err := m.Backup(src)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(src, []byte("second"), 0o644))
	c, err := m.Backup(src)
	require.NoError(t, err)

	b, _ := os.ReadFile(c.Path)
	assert.Equal(t, "second", string(b))
}

func TestBackup_MissingSource(t *testing.T) {
	m := NewManager(t.TempDir())
	_, err := m.Backup(filepath.Join(t.TempDir(), "vanished.SC2Replay"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
