package extract

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

const sampleJSON = `{
  "duration_seconds": 930.6,
  "players": [
    {"name": "[CLAN] Lucas", "result": "Win", "race": "Zerg", "peak_minerals": 2500},
    {"name": "Opponent", "result": "Loss", "race": "Terran", "peak_minerals": 1800}
  ]
}`

func TestParseJSON(t *testing.T) {
	res, err := ParseJSON([]byte(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, 930, res.DurationSeconds)
	require.Len(t, res.Players, 2)
	assert.Equal(t, "[CLAN] Lucas", res.Players[0].Name)
	assert.Equal(t, 2500, res.Players[0].PeakMinerals)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON([]byte("not json"))
	assert.Error(t, err)

	_, err = ParseJSON([]byte(`{"error": "truncated replay"}`))
	assert.ErrorIs(t, err, ErrReported)
}

func TestParseJSON_OutOfRangeNumbers(t *testing.T) {
	res, err := ParseJSON([]byte(`{"duration_seconds": 1e30, "players": [
		{"name": "a", "peak_minerals": 1e300},
		{"name": "b", "peak_minerals": -5}
	]}`))
	require.NoError(t, err)
	assert.Zero(t, res.DurationSeconds)
	require.Len(t, res.Players, 2)
	assert.Zero(t, res.Players[0].PeakMinerals)
	assert.Zero(t, res.Players[1].PeakMinerals)
}

func TestResolve(t *testing.T) {
	two := func(a, b Player) *Result {
		return &Result{DurationSeconds: 600, Players: []Player{a, b}}
	}
	cases := []struct {
		name    string
		res     *Result
		player  string
		want    replay.Metadata
		wantErr error
	}{
		{
			name:   "subject wins",
			res:    two(Player{Name: "Lucas", Result: "Win", Race: "Zerg", PeakMinerals: 900}, Player{Name: "Foe", Result: "Loss", Race: "Protoss"}),
			player: "lucas",
			want:   replay.Metadata{Outcome: replay.OutcomeWin, Opponent: replay.RaceProtoss, DurationSeconds: 600, PeakMinerals: 900},
		},
		{
			name:   "subject second and loses",
			res:    two(Player{Name: "Foe", Result: "Win", Race: "terran"}, Player{Name: "xLucasx", Result: "Loss", Race: "Zerg"}),
			player: "Lucas",
			want:   replay.Metadata{Outcome: replay.OutcomeLose, Opponent: replay.RaceTerran, DurationSeconds: 600},
		},
		{
			name:   "tie is unknown",
			res:    two(Player{Name: "Lucas", Result: "Tie", Race: "Zerg"}, Player{Name: "Foe", Race: "Zerg"}),
			player: "Lucas",
			want:   replay.Metadata{Outcome: replay.OutcomeUnknown, Opponent: replay.RaceZerg, DurationSeconds: 600},
		},
		{
			name:   "unknown race",
			res:    two(Player{Name: "Lucas", Result: "Win"}, Player{Name: "Foe", Race: "Random"}),
			player: "Lucas",
			want:   replay.Metadata{Outcome: replay.OutcomeWin, Opponent: replay.RaceUnknown, DurationSeconds: 600},
		},
		{
			name:    "subject missing",
			res:     two(Player{Name: "A"}, Player{Name: "B"}),
			player:  "Lucas",
			wantErr: ErrNoSubject,
		},
		{
			name:    "both match",
			res:     two(Player{Name: "Lucas1"}, Player{Name: "Lucas2"}),
			player:  "Lucas",
			wantErr: ErrAmbiguousSubject,
		},
		{
			name:    "team game",
			res:     &Result{Players: []Player{{Name: "Lucas"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}},
			player:  "Lucas",
			wantErr: ErrNotOneVsOne,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.res.Resolve(tc.player)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDepthString(t *testing.T) {
	assert.Equal(t, "summary", DepthSummary.String())
	assert.Equal(t, "events", DepthEvents.String())
}

// writeScript creates an executable shell script in a temp dir.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestCommand_Extract(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	script := writeScript(t, `echo "$@" > `+argsFile+`
cat <<'JSON'
`+sampleJSON+`
JSON
`)
	ext := NewCommand([]string{script, "--json"}, "Lucas")

	meta, err := ext.Extract(context.Background(), "/replays/game.SC2Replay", DepthEvents)
	require.NoError(t, err)
	assert.Equal(t, replay.Metadata{
		Outcome: replay.OutcomeWin, Opponent: replay.RaceTerran, DurationSeconds: 930, PeakMinerals: 2500,
	}, meta)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "--json --depth events /replays/game.SC2Replay", strings.TrimSpace(string(args)))
}

func TestCommand_ExtractFailure(t *testing.T) {
	script := writeScript(t, "echo 'bad header' >&2\nexit 3\n")
	_, err := NewCommand([]string{script}, "Lucas").Extract(context.Background(), "x.SC2Replay", DepthSummary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad header")
}

func TestCommandStripper(t *testing.T) {
	script := writeScript(t, `printf 'stripped' > "$1"`+"\n")
	target := filepath.Join(t.TempDir(), "game.SC2Replay")
	require.NoError(t, os.WriteFile(target, []byte("with chat"), 0o644))

	require.NoError(t, NewCommandStripper([]string{script}).Strip(context.Background(), target))
	b, _ := os.ReadFile(target)
	assert.Equal(t, "stripped", string(b))

	fail := writeScript(t, "echo 'locked' >&2\nexit 1\n")
	err := NewCommandStripper([]string{fail}).Strip(context.Background(), target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}
