package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// ChatStripper removes chat messages from a replay, rewriting it in place.
type ChatStripper interface {
	Strip(ctx context.Context, path string) error
}

// CommandStripper runs Argv followed by the replay path. stderr is captured
// and its last line attached to the error.
type CommandStripper struct {
	Argv []string
}

// NewCommandStripper returns a CommandStripper for argv.
func NewCommandStripper(argv []string) *CommandStripper {
	return &CommandStripper{Argv: append([]string(nil), argv...)}
}

// Strip runs the stripper against path.
func (s *CommandStripper) Strip(ctx context.Context, path string) error {
	if len(s.Argv) == 0 {
		return errors.New("no chat stripper command configured")
	}
	args := append(append([]string(nil), s.Argv[1:]...), path)
	cmd := exec.CommandContext(ctx, s.Argv[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := lastLine(stderr.String()); msg != "" {
			return fmt.Errorf("%s %q: %w: %s", s.Argv[0], path, err, msg)
		}
		return fmt.Errorf("%s %q: %w", s.Argv[0], path, err)
	}
	return nil
}
