package naming

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

// Tag is the parsed result prefix of a tagged stem.
type Tag struct {
	Date     string // Legacy "YYYY-MM-DD" prefix, if any.
	Outcome  replay.Outcome
	Opponent replay.Race

	Minutes     int
	HasDuration bool
	Minerals    int
	HasMinerals bool

	Base string // Everything after the tag tokens, verbatim.
}

var (
	reDateToken     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	reDurationToken = regexp.MustCompile(`^([0-9]+)min$`)
	reMineralsToken = regexp.MustCompile(`^([0-9]+)minerals$`)
)

// ParseTag parses a stem (name without extension) against the grammar
//
//	[DATE _] (WIN|LOSE) _ vs _ RACE [_ Nmin] [_ Nminerals] _ BASE
//
// where RACE is one of the known races, spelled exactly, and BASE is
// non-empty. ok is false when the stem does not carry a result.
func ParseTag(stem string) (t Tag, ok bool) {
	tokens := strings.Split(stem, Delimiter)
	i := 0
	if i < len(tokens) && reDateToken.MatchString(tokens[i]) {
		t.Date = tokens[i]
		i++
	}
	if len(tokens)-i < 4 {
		return Tag{}, false
	}

	switch tokens[i] {
	case string(replay.OutcomeWin):
		t.Outcome = replay.OutcomeWin
	case string(replay.OutcomeLose):
		t.Outcome = replay.OutcomeLose
	default:
		return Tag{}, false
	}
	if tokens[i+1] != "vs" {
		return Tag{}, false
	}
	race := replay.Race(tokens[i+2])
	if !race.Known() {
		return Tag{}, false
	}
	t.Opponent = race
	i += 3

	if m := reDurationToken.FindStringSubmatch(tokens[i]); m != nil && i+1 < len(tokens) {
		t.Minutes, _ = strconv.Atoi(m[1])
		t.HasDuration = true
		i++
	}
	if m := reMineralsToken.FindStringSubmatch(tokens[i]); m != nil && i+1 < len(tokens) {
		t.Minerals, _ = strconv.Atoi(m[1])
		t.HasMinerals = true
		i++
	}

	t.Base = strings.Join(tokens[i:], Delimiter)
	if t.Base == "" {
		return Tag{}, false
	}
	return t, true
}

// AlreadyHasResult reports whether name (with or without extension) carries
// outcome and opponent tokens, regardless of the optional tokens.
func AlreadyHasResult(name string) bool {
	_, ok := ParseTag(stemOf(name))
	return ok
}

// Satisfies reports whether every token enabled in o is present.
func (t Tag) Satisfies(o Options) bool {
	if o.IncludeDuration && !t.HasDuration {
		return false
	}
	if o.IncludeMaxResource && !t.HasMinerals {
		return false
	}
	return true
}

// Metadata returns what the tag encodes. Durations come back rounded down
// to whole minutes.
func (t Tag) Metadata() replay.Metadata {
	return replay.Metadata{
		Outcome:         t.Outcome,
		Opponent:        t.Opponent,
		DurationSeconds: t.Minutes * 60,
		PeakMinerals:    t.Minerals,
	}
}

// BaseName returns stem with any recognized tag prefix removed.
func BaseName(stem string) string {
	if t, ok := ParseTag(stem); ok {
		return t.Base
	}
	return stem
}

func stemOf(name string) string {
	ext := filepath.Ext(name)
	// Only treat a dot suffix as an extension when it has no delimiter in it.
	if strings.Contains(ext, Delimiter) {
		return name
	}
	return strings.TrimSuffix(name, ext)
}
