package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasfepe/sc2replayprocessor/internal/config"
	"github.com/lucasfepe/sc2replayprocessor/internal/extract"
	"github.com/lucasfepe/sc2replayprocessor/internal/logging"
	"github.com/lucasfepe/sc2replayprocessor/internal/marker"
	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

// fakeExtractor serves metadata by file base name.
type fakeExtractor struct {
	results map[string]replay.Metadata
	errs    map[string]error
	calls   []string
	depths  []extract.Depth
}

func (f *fakeExtractor) Extract(_ context.Context, path string, d extract.Depth) (replay.Metadata, error) {
	name := filepath.Base(path)
	f.calls = append(f.calls, name)
	f.depths = append(f.depths, d)
	if err, ok := f.errs[name]; ok {
		return replay.Metadata{}, err
	}
	if m, ok := f.results[name]; ok {
		return m, nil
	}
	return replay.Metadata{}, fmt.Errorf("%w: no fixture for %s", extract.ErrReported, name)
}

// fakeStripper records calls and, when backupDir is set, whether a backup
// existed at the time of each call.
type fakeStripper struct {
	err       error
	backupDir string
	calls     []string
	hadBackup []bool
}

func (s *fakeStripper) Strip(_ context.Context, path string) error {
	s.calls = append(s.calls, filepath.Base(path))
	if s.backupDir != "" {
		_, err := os.Stat(filepath.Join(s.backupDir, filepath.Base(path)))
		s.hadBackup = append(s.hadBackup, err == nil)
	}
	return s.err
}

type harness struct {
	dir   string
	cfg   config.Config
	ext   *fakeExtractor
	strip *fakeStripper
	out   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ReplaysDir = dir
	cfg.PlayerName = "Alice"
	cfg.ColorMode = config.ColorNever
	return &harness{
		dir:   dir,
		cfg:   cfg,
		ext:   &fakeExtractor{results: map[string]replay.Metadata{}, errs: map[string]error{}},
		strip: &fakeStripper{},
		out:   &bytes.Buffer{},
	}
}

func (h *harness) run(t *testing.T, ledger *marker.Ledger) RunStats {
	t.Helper()
	o := New(&h.cfg, logging.NewWriterLogger(h.out), Deps{
		Extractor: h.ext,
		Stripper:  h.strip,
		Ledger:    ledger,
	})
	return o.Run(context.Background())
}

func (h *harness) write(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (h *harness) exists(name string) bool {
	_, err := os.Stat(filepath.Join(h.dir, name))
	return err == nil
}

func (h *harness) payload(t *testing.T, stem string) *marker.Payload {
	t.Helper()
	p, err := marker.ReadFile(filepath.Join(h.dir, stem+h.cfg.MarkerSuffix))
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

// listDir returns the names of regular files directly inside dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}
