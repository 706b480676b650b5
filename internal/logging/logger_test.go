package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasfepe/sc2replayprocessor/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorAlways
	cfg.LogFile = filepath.Join(dir, "logs", "sc2replays.log")

	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Warn("to file %d", 42)
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[WARN] to file 42")
	assert.NotContains(t, string(b), "\x1b[", "file sink is always plain")
}

func TestWriterLogger_Levels(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	_, err := NewLogger(&cfg) // resets styles to plain
	require.NoError(t, err)

	var buf bytes.Buffer
	l := NewWriterLogger(&buf)
	l.Info("a")
	l.Success("b")
	l.Error("c")
	l.Debug(false, "hidden")
	l.Debug(true, "shown")

	out := buf.String()
	for _, want := range []string{"[INFO] a", "[SUCCESS] b", "[ERROR] c", "[DEBUG] shown"} {
		assert.Contains(t, out, want)
	}
	assert.False(t, strings.Contains(out, "hidden"))
}
