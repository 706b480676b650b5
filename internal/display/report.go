package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lucasfepe/sc2replayprocessor/internal/term"
)

// Matchup is the number of analyzed games against one opponent race.
type Matchup struct {
	Race  string
	Games int
}

// Report is the end-of-run summary handed over by the pipeline.
type Report struct {
	Processed int
	Skipped   int
	Errors    int

	Wins     int
	Losses   int
	Matchups []Matchup

	Renamed        int
	ChatStripped   int
	Backups        int
	BackupBytes    int64
	MarkerFailures int

	// Files whose processing failed but which were marked anyway; they are
	// skipped by every later run until their marker is removed.
	PermanentlySkipped []string
	MarkerSuffix       string
}

// TotalGames is the number of games with a known outcome.
func (r Report) TotalGames() int { return r.Wins + r.Losses }

// WinRate returns the win percentage; ok is false for a run with no games.
func (r Report) WinRate() (pct float64, ok bool) {
	total := r.TotalGames()
	if total == 0 {
		return 0, false
	}
	return float64(r.Wins) * 100 / float64(total), true
}

// RenderReport renders r as a boxed, plain-text-safe summary.
func RenderReport(r Report) string {
	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	section := func(title string) {
		b.WriteString("\n" + term.Accent.Render(title) + "\n")
	}

	b.WriteString(term.Accent.Render("REPLAY PROCESSING REPORT") + "\n")
	line("Files processed: %d", r.Processed)
	line("Files skipped:   %d", r.Skipped)
	line("Errors:          %d", r.Errors)
	if r.Renamed > 0 {
		line("Renamed:         %d", r.Renamed)
	}
	if r.ChatStripped > 0 {
		line("Chat stripped:   %d", r.ChatStripped)
	}
	if r.Backups > 0 {
		line("Backups:         %d (%s)", r.Backups, FormatBytes(r.BackupBytes))
	}
	if r.MarkerFailures > 0 {
		line(term.Warn.Render("Marker writes failed: %d (those files may be reprocessed next run)"), r.MarkerFailures)
	}

	section("GAME STATISTICS")
	total := r.TotalGames()
	line("Total games analyzed: %s", FormatCount(total))
	if pct, ok := r.WinRate(); ok {
		line("Wins:   %d (%.1f%%)", r.Wins, pct)
		line("Losses: %d (%.1f%%)", r.Losses, 100-pct)
		line("Win rate: %.1f%%", pct)
	} else {
		line("Win rate: n/a (no games analyzed)")
	}

	if total > 0 && len(r.Matchups) > 0 {
		section("MATCHUP BREAKDOWN")
		for _, m := range r.Matchups {
			share, _ := FormatPercent(m.Games, total)
			line("vs %-8s %d (%s)", m.Race+":", m.Games, share)
		}
	}

	if len(r.PermanentlySkipped) > 0 {
		section("NOT RETRIED")
		line("%d file(s) failed and were marked processed; remove their %s marker to retry:",
			len(r.PermanentlySkipped), r.MarkerSuffix)
		for _, name := range r.PermanentlySkipped {
			line("  %s", name)
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Padding(0, 1)
	if term.Enabled() {
		box = box.BorderForeground(lipgloss.Color("241"))
	}
	return box.Render(strings.TrimRight(b.String(), "\n"))
}
