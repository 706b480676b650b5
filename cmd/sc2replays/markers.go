package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/config"
	"github.com/lucasfepe/sc2replayprocessor/internal/display"
	"github.com/lucasfepe/sc2replayprocessor/internal/marker"
	"github.com/lucasfepe/sc2replayprocessor/internal/term"
)

// listMarkers prints one line per marker in the replay directory.
func listMarkers(w io.Writer, cfg *config.Config) error {
	term.Configure(cfg.ColorMode)
	store := marker.NewStore(cfg.MarkerSuffix)
	paths, err := store.List(cfg.ReplaysDir)
	if err != nil {
		return err
	}

	failed := 0
	for _, mp := range paths {
		name := strings.TrimSuffix(filepath.Base(mp), cfg.MarkerSuffix)
		p, err := marker.ReadFile(mp)
		switch {
		case err != nil:
			fmt.Fprintf(w, "%-48s %s\n", name, term.Warn.Render("unreadable: "+err.Error()))
		case p == nil:
			fmt.Fprintf(w, "%-48s %s\n", name, term.Dim.Render("(empty marker)"))
		default:
			fmt.Fprintf(w, "%-48s %s\n", name, describe(p))
			if p.Error != "" {
				failed++
			}
		}
	}
	fmt.Fprintf(w, "%s marker(s), %d recorded a failure\n", display.FormatCount(len(paths)), failed)
	return nil
}

func describe(p *marker.Payload) string {
	parts := []string{stateStyle(p.State)}
	if p.Outcome != "" {
		parts = append(parts, p.Outcome+" vs "+p.Opponent)
	}
	if p.DurationSeconds > 0 {
		parts = append(parts, display.FormatDuration(p.DurationSeconds))
	}
	if p.PeakMinerals > 0 {
		parts = append(parts, display.FormatCount(p.PeakMinerals)+" minerals")
	}
	if p.OriginalName != "" {
		parts = append(parts, "was "+p.OriginalName)
	}
	if p.Error != "" {
		parts = append(parts, term.Error.Render(p.Error))
	}
	if !p.ProcessedAt.IsZero() {
		parts = append(parts, term.Dim.Render(p.ProcessedAt.Local().Format("2006-01-02 15:04")))
	}
	return strings.Join(parts, "  ")
}

func stateStyle(state string) string {
	switch state {
	case "extract_failed", "rename_failed":
		return term.Error.Render(state)
	case "renamed", "marked":
		return term.Success.Render(state)
	default:
		return term.Info.Render(state)
	}
}
