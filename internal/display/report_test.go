package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWinRate(t *testing.T) {
	r := Report{Wins: 3, Losses: 1}
	pct, ok := r.WinRate()
	assert.True(t, ok)
	assert.InDelta(t, 75.0, pct, 1e-9)
	assert.Contains(t, RenderReport(r), "Win rate: 75.0%")
}

func TestRenderReport_ZeroGames(t *testing.T) {
	r := Report{Skipped: 4}
	_, ok := r.WinRate()
	assert.False(t, ok)

	var out string
	assert.NotPanics(t, func() { out = RenderReport(r) })
	assert.Contains(t, out, "Win rate: n/a")
	assert.Contains(t, out, "Files skipped:   4")
	assert.NotContains(t, out, "MATCHUP BREAKDOWN")
}

func TestRenderReport_Sections(t *testing.T) {
	r := Report{
		Processed: 1, Skipped: 1, Errors: 1,
		Wins: 1,
		Matchups:           []Matchup{{"Terran", 1}, {"Protoss", 0}, {"Zerg", 0}},
		Backups:            1,
		BackupBytes:        2048,
		PermanentlySkipped: []string{"broken.SC2Replay"},
		MarkerSuffix:       ".processed",
	}
	out := RenderReport(r)
	for _, want := range []string{
		"Files processed: 1",
		"Errors:          1",
		"Backups:         1 (2.0 KiB)",
		"Win rate: 100.0%",
		"vs Terran:  1 (100.0%)",
		"NOT RETRIED",
		"broken.SC2Replay",
		".processed marker",
	} {
		assert.Contains(t, out, want)
	}
}
