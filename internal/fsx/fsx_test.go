package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameNoReplace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.SC2Replay")
	dst := filepath.Join(dir, "b.SC2Replay")
	require.NoError(t, os.WriteFile(src, []byte("a"), 0o644))

	require.NoError(t, RenameNoReplace(src, dst))
	_, err := os.Stat(src)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	require.NoError(t, os.WriteFile(src, []byte("again"), 0o644))
	err = RenameNoReplace(src, dst)
	require.ErrorIs(t, err, ErrTargetExists)

	b, _ := os.ReadFile(dst)
	assert.Equal(t, "a", string(b), "existing target must not be overwritten")
}

func TestRenameNoReplace_SamePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	assert.NoError(t, RenameNoReplace(p, p))
}

func TestRename_Failure(t *testing.T) {
	old := renameFunc
	t.Cleanup(func() { renameFunc = old })
	renameFunc = func(string, string) error { return os.ErrPermission }

	err := Rename("x", "y")
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestWriteFileAtomic_Replaces(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteFileAtomic(dir, "m.processed", []byte("one")))
	require.NoError(t, WriteFileAtomic(dir, "m.processed", []byte("two")))

	b, err := os.ReadFile(filepath.Join(dir, "m.processed"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, _ := os.ReadDir(dir)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.SC2Replay")
	require.NoError(t, os.WriteFile(src, []byte("replay bytes"), 0o644))
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dst := filepath.Join(dir, "backups", "src.SC2Replay")
	n, err := CopyFile(src, dst)
	require.NoError(t, err)
	assert.EqualValues(t, len("replay bytes"), n)

	b, _ := os.ReadFile(dst)
	assert.Equal(t, "replay bytes", string(b))
	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, fi.ModTime().Equal(mtime))
}

func TestCopyFile_MissingSource(t *testing.T) {
	_, err := CopyFile(filepath.Join(t.TempDir(), "gone"), filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
