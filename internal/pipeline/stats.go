package pipeline

import (
	"github.com/lucasfepe/sc2replayprocessor/internal/display"
	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total   int
	Current int

	Processed int
	Skipped   int
	Errors    int

	Wins       int
	Losses     int
	ByOpponent map[replay.Race]int

	Renamed        int
	ChatStripped   int
	Backups        int
	BackupBytes    int64
	MarkerFailures int

	// Names of files that failed and were marked anyway.
	FailedMarked []string
}

// NewRunStats returns zeroed stats ready for recording.
func NewRunStats() RunStats {
	return RunStats{ByOpponent: make(map[replay.Race]int)}
}

// Record counts a terminal state into exactly one of processed, skipped
// or errors. Non-terminal states are ignored.
func (s *RunStats) Record(st State) {
	switch st {
	case StateRenamed, StateMarked:
		s.Processed++
	case StateSkippedMarked, StateSkippedNamed:
		s.Skipped++
	case StateExtractFailed, StateRenameFailed:
		s.Errors++
	}
}

// RecordResult counts one successfully extracted game.
func (s *RunStats) RecordResult(m replay.Metadata) {
	switch m.Outcome {
	case replay.OutcomeWin:
		s.Wins++
	case replay.OutcomeLose:
		s.Losses++
	default:
		return
	}
	if s.ByOpponent == nil {
		s.ByOpponent = make(map[replay.Race]int)
	}
	if m.Opponent.Known() {
		s.ByOpponent[m.Opponent]++
	}
}

// WinRate returns the win percentage over analyzed games; ok is false when
// no game was analyzed.
func (s *RunStats) WinRate() (pct float64, ok bool) {
	return s.Report("").WinRate()
}

// Report converts the counters into the display summary. markerSuffix is
// shown next to the list of files that will not be retried.
func (s *RunStats) Report(markerSuffix string) display.Report {
	r := display.Report{
		Processed:          s.Processed,
		Skipped:            s.Skipped,
		Errors:             s.Errors,
		Wins:               s.Wins,
		Losses:             s.Losses,
		Renamed:            s.Renamed,
		ChatStripped:       s.ChatStripped,
		Backups:            s.Backups,
		BackupBytes:        s.BackupBytes,
		MarkerFailures:     s.MarkerFailures,
		PermanentlySkipped: append([]string(nil), s.FailedMarked...),
		MarkerSuffix:       markerSuffix,
	}
	for _, race := range replay.Races {
		r.Matchups = append(r.Matchups, display.Matchup{Race: string(race), Games: s.ByOpponent[race]})
	}
	return r
}
