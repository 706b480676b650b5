package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

// Depth tells the extractor how much of the replay it must decode.
// Peak minerals needs the time-series tracker events; outcome, race and
// duration only need the summary.
type Depth int

const (
	DepthSummary Depth = iota
	DepthEvents
)

func (d Depth) String() string {
	if d == DepthEvents {
		return "events"
	}
	return "summary"
}

// Extractor derives match metadata from one replay file. Implementations are
// called once per file and are not retried.
type Extractor interface {
	Extract(ctx context.Context, path string, depth Depth) (replay.Metadata, error)
}

// Sentinel errors for results that cannot be attributed to the subject player.
var (
	ErrNotOneVsOne      = errors.New("not a 1v1 replay")
	ErrNoSubject        = errors.New("player not found in replay")
	ErrAmbiguousSubject = errors.New("player name matches both players")
	ErrReported         = errors.New("extractor reported an error")
)

// Command runs an external extractor: Argv, then "--depth <depth>", then the
// replay path. Player is the subject's name.
type Command struct {
	Argv   []string
	Player string
}

// NewCommand returns a Command extractor for argv and player.
func NewCommand(argv []string, player string) *Command {
	return &Command{Argv: append([]string(nil), argv...), Player: player}
}

// Extract runs the command against path and resolves the subject's view of
// the match.
func (c *Command) Extract(ctx context.Context, path string, depth Depth) (replay.Metadata, error) {
	if len(c.Argv) == 0 {
		return replay.Metadata{}, errors.New("no extractor command configured")
	}
	args := append(append([]string(nil), c.Argv[1:]...), "--depth", depth.String(), path)
	cmd := exec.CommandContext(ctx, c.Argv[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return replay.Metadata{}, fmt.Errorf("%s %q: %w: %s", c.Argv[0], path, err, msg)
		}
		return replay.Metadata{}, fmt.Errorf("%s %q: %w", c.Argv[0], path, err)
	}

	res, err := ParseJSON(out)
	if err != nil {
		return replay.Metadata{}, err
	}
	return res.Resolve(c.Player)
}

// lastLine returns the last non-empty line of s, trimmed.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
