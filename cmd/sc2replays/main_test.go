package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasfepe/sc2replayprocessor/internal/config"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "extractor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader("\n"), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitErrors, exitCode(errFilesFailed))
	assert.Equal(t, exitConfig, exitCode(&config.Error{Code: config.ErrCodeMissingIdentity}))
	assert.Equal(t, exitConfig, exitCode(errors.New("unknown flag: --bogus")))
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, version.Core(), strings.TrimSpace(out))
}

func TestRun_MissingIdentity(t *testing.T) {
	dir := t.TempDir()
	code, _, errOut := runCLI(t, "run", dir, "--color", "never")
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, errOut, config.ErrCodeMissingIdentity)
}

func TestRun_PlaceholderIdentity(t *testing.T) {
	code, _, errOut := runCLI(t, t.TempDir(), "--player", config.PlaceholderPlayer)
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, errOut, config.ErrCodeMissingIdentity)
}

func TestRun_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nope")
	code, _, errOut := runCLI(t, "run", dir, "--player", "Alice")
	assert.Equal(t, exitConfig, code)
	assert.Contains(t, errOut, config.ErrCodeDirNotFound)
}

func TestRun_RenamesAndReports(t *testing.T) {
	script := writeScript(t, `cat <<'JSON'
{"duration_seconds": 930, "players": [
  {"name": "Alice", "result": "Win", "race": "Zerg", "peak_minerals": 2500},
  {"name": "Bob", "result": "Loss", "race": "Terran", "peak_minerals": 1800}
]}
JSON
`)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.SC2Replay"), []byte("replay"), 0o644))

	code, out, _ := runCLI(t, "run", dir, "--player", "alice", "--extractor", script, "--color", "never")
	require.Equal(t, exitOK, code)
	assert.FileExists(t, filepath.Join(dir, "WIN_vs_Terran_15min_2500minerals_game.SC2Replay"))
	assert.FileExists(t, filepath.Join(dir, "WIN_vs_Terran_15min_2500minerals_game.processed"))
	assert.FileExists(t, filepath.Join(dir, "backups", "game.SC2Replay"))
	assert.Contains(t, out, "Win rate: 100.0%")

	// Second run touches nothing.
	code, out, _ = runCLI(t, dir, "--player", "alice", "--extractor", script, "--color", "never")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Files skipped:   1")

	code, out, _ = runCLI(t, "markers", dir, "--color", "never")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "WIN_vs_Terran_15min_2500minerals_game")
	assert.Contains(t, out, "was game.SC2Replay")
}

func TestRun_PerFileErrorsExitOne(t *testing.T) {
	script := writeScript(t, "echo 'corrupt replay' >&2\nexit 1\n")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.SC2Replay"), []byte("x"), 0o644))

	code, out, _ := runCLI(t, "run", dir, "--player", "Alice", "--extractor", script, "--no-report", "--color", "never")
	assert.Equal(t, exitErrors, code)
	assert.NotContains(t, out, "REPLAY PROCESSING REPORT")
	assert.FileExists(t, filepath.Join(dir, "bad.processed"))
}

func TestFixNamesCommand(t *testing.T) {
	dir := t.TempDir()
	old := "2024-01-02_WIN_vs_Zerg_12min_1500minerals_2024-01-02_WIN_vs_Zerg_game.SC2Replay"
	require.NoError(t, os.WriteFile(filepath.Join(dir, old), []byte("x"), 0o644))

	code, _, _ := runCLI(t, "fix-names", dir, "--color", "never")
	assert.Equal(t, exitOK, code)
	assert.FileExists(t, filepath.Join(dir, "WIN_vs_Zerg_12min_1500minerals_game.SC2Replay"))
}
