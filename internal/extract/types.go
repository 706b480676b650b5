package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

// Result is the parsed extractor output, before subject resolution.
type Result struct {
	DurationSeconds int
	Players         []Player
}

// Player is one participant as reported by the extractor.
type Player struct {
	Name         string
	Result       string
	Race         string
	PeakMinerals int
}

// --- extractor JSON wire types ---

type wireOutput struct {
	Error           string       `json:"error"`
	DurationSeconds float64      `json:"duration_seconds"`
	Players         []wirePlayer `json:"players"`
}

type wirePlayer struct {
	Name         string  `json:"name"`
	Result       string  `json:"result"`
	Race         string  `json:"race"`
	PeakMinerals float64 `json:"peak_minerals"`
}

// ParseJSON converts raw extractor output into a Result.
// Exported for testing without a real extractor binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw wireOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse extractor JSON: %w", err)
	}
	if raw.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrReported, raw.Error)
	}
	res := &Result{DurationSeconds: nonNegative(raw.DurationSeconds)}
	for _, p := range raw.Players {
		res.Players = append(res.Players, Player{
			Name:         p.Name,
			Result:       p.Result,
			Race:         p.Race,
			PeakMinerals: nonNegative(p.PeakMinerals),
		})
	}
	return res, nil
}

// Resolve picks the subject (case-insensitive substring match on name) and
// the opponent out of a two-player result. An unrecognized result or race
// yields UNKNOWN in the metadata rather than an error; the caller decides
// what UNKNOWN means.
func (r *Result) Resolve(player string) (replay.Metadata, error) {
	if len(r.Players) != 2 {
		return replay.Metadata{}, fmt.Errorf("%w: %d players", ErrNotOneVsOne, len(r.Players))
	}
	needle := strings.ToLower(strings.TrimSpace(player))
	if needle == "" {
		return replay.Metadata{}, ErrNoSubject
	}

	subject, opponent := -1, -1
	for i, p := range r.Players {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			if subject >= 0 {
				return replay.Metadata{}, ErrAmbiguousSubject
			}
			subject = i
		} else {
			opponent = i
		}
	}
	if subject < 0 {
		return replay.Metadata{}, fmt.Errorf("%w: %q", ErrNoSubject, player)
	}

	s, o := r.Players[subject], r.Players[opponent]
	return replay.Metadata{
		Outcome:         resultOutcome(s.Result),
		Opponent:        replay.ParseRace(o.Race),
		DurationSeconds: r.DurationSeconds,
		PeakMinerals:    s.PeakMinerals,
	}, nil
}

// resultOutcome maps the extractor's per-player result string.
func resultOutcome(s string) replay.Outcome {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win", "victory":
		return replay.OutcomeWin
	case "loss", "lose", "defeat":
		return replay.OutcomeLose
	}
	return replay.OutcomeUnknown
}

// nonNegative converts a wire number to a count. Values that are negative or
// too large to be real (beyond MaxInt32) are treated as unavailable.
func nonNegative(f float64) int {
	if !(f > 0) || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
