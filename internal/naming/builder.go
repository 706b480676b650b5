package naming

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

// Delimiter joins the tokens of a tagged name.
const Delimiter = "_"

// ErrUnknownResult is returned when outcome or opponent is UNKNOWN. Such a
// file is never renamed: a wrong result token would be trusted by every
// later run.
var ErrUnknownResult = errors.New("outcome or opponent unknown")

// ErrAmbiguousBase is returned when the built name would not parse back to
// the same base, e.g. base "20min_game" with the duration token gated off:
// ParseTag would read "20min" as a tag token and lose it from the base.
var ErrAmbiguousBase = errors.New("base name would be read as tag tokens")

// Options gates the optional tokens.
type Options struct {
	IncludeDuration    bool
	IncludeMaxResource bool
}

// Build returns the tagged file name for base (an untagged stem) and ext
// (kept verbatim, including its dot).
func Build(base, ext string, meta replay.Metadata, o Options) (string, error) {
	if !meta.Complete() {
		return "", ErrUnknownResult
	}
	if base == "" {
		return "", errors.New("empty base name")
	}

	tokens := []string{string(meta.Outcome), "vs" + Delimiter + string(meta.Opponent)}
	if o.IncludeDuration && meta.DurationSeconds > 0 {
		tokens = append(tokens, durationToken(meta.DurationMinutes()))
	}
	if o.IncludeMaxResource && meta.PeakMinerals > 0 {
		tokens = append(tokens, mineralsToken(meta.PeakMinerals))
	}
	tokens = append(tokens, base)
	stem := strings.Join(tokens, Delimiter)
	if t, ok := ParseTag(stem); !ok || t.Base != base {
		return "", fmt.Errorf("%w: %q", ErrAmbiguousBase, base)
	}
	return stem + ext, nil
}

func durationToken(minutes int) string { return strconv.Itoa(minutes) + "min" }
func mineralsToken(peak int) string    { return strconv.Itoa(peak) + "minerals" }
