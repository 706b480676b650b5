package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/lucasfepe/sc2replayprocessor/internal/backup"
	"github.com/lucasfepe/sc2replayprocessor/internal/config"
	"github.com/lucasfepe/sc2replayprocessor/internal/display"
	"github.com/lucasfepe/sc2replayprocessor/internal/extract"
	"github.com/lucasfepe/sc2replayprocessor/internal/fsx"
	"github.com/lucasfepe/sc2replayprocessor/internal/logging"
	"github.com/lucasfepe/sc2replayprocessor/internal/marker"
	"github.com/lucasfepe/sc2replayprocessor/internal/naming"
	"github.com/lucasfepe/sc2replayprocessor/internal/replay"
)

// Deps are the collaborators of an Orchestrator. Ledger is optional.
type Deps struct {
	Extractor extract.Extractor
	Stripper  extract.ChatStripper
	Ledger    *marker.Ledger
}

// Orchestrator runs one batch over a replay directory.
type Orchestrator struct {
	cfg       *config.Config
	log       *logging.Logger
	extractor extract.Extractor
	stripper  extract.ChatStripper
	ledger    *marker.Ledger
	markers   *marker.Store
	backups   *backup.Manager
	opts      naming.Options
	now       func() time.Time
}

// New builds an Orchestrator for cfg. cfg is expected to be validated.
func New(cfg *config.Config, log *logging.Logger, deps Deps) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		log:       log,
		extractor: deps.Extractor,
		stripper:  deps.Stripper,
		ledger:    deps.Ledger,
		markers:   marker.NewStore(cfg.MarkerSuffix),
		backups:   backup.NewManager(cfg.BackupPath()),
		opts: naming.Options{
			IncludeDuration:    cfg.IncludeDuration,
			IncludeMaxResource: cfg.IncludeMaxResource,
		},
		now: time.Now,
	}
}

// fileRun is the mutable state of one replay while it is processed.
type fileRun struct {
	original replay.File
	current  replay.File
	backedUp bool
	meta     *replay.Metadata
}

// Run discovers replays, processes each one and returns the aggregate stats.
// Cancelling ctx stops the batch after the file in flight; a file is never
// abandoned half-way.
func (o *Orchestrator) Run(ctx context.Context) RunStats {
	stats := NewRunStats()

	files, err := Discover(o.cfg.ReplaysDir, o.cfg.Extension)
	if err != nil {
		o.log.Error("Replay discovery failed: %v", err)
		return stats
	}
	stats.Total = len(files)
	o.logBatchHeader(&stats)

	work := context.WithoutCancel(ctx)
	for i, path := range files {
		stats.Current = i + 1
		if ctx.Err() != nil {
			o.log.Warn("Interrupted, %d file(s) left for the next run", len(files)-i)
			break
		}
		o.processFile(work, path, &stats)
	}

	o.logSummary(&stats)
	return stats
}

// processFile drives one replay to a terminal state.
func (o *Orchestrator) processFile(ctx context.Context, path string, stats *RunStats) {
	f, err := replay.Stat(path)
	if err != nil {
		// Vanished since discovery; there is nothing to mark.
		o.log.Error("[%d/%d] %s: %v", stats.Current, stats.Total, filepath.Base(path), err)
		stats.Errors++
		return
	}
	o.log.Info("[%d/%d] %s", stats.Current, stats.Total, f.Name)
	fr := &fileRun{original: f, current: f}

	// --- Already processed ---
	if o.markers.Has(f.Path) {
		o.log.Debug(o.cfg.Verbose, "  Marker present, skipping")
		stats.Record(StateSkippedMarked)
		return
	}
	if o.knownIdentity(ctx, f) {
		o.finish(ctx, fr, stats, StateSkippedMarked, nil)
		return
	}

	// --- Chat removal ---
	if o.cfg.RemoveChat {
		if err := o.ensureBackup(fr, stats); err != nil {
			o.finish(ctx, fr, stats, StateExtractFailed, err)
			return
		}
		if err := o.stripper.Strip(ctx, f.Path); err != nil {
			o.log.Warn("  Chat removal failed, continuing: %v", err)
		} else {
			stats.ChatStripped++
			o.log.Debug(o.cfg.Verbose, "  Chat removed")
		}
	}

	if !o.cfg.RenameFiles {
		o.finish(ctx, fr, stats, StateMarked, nil)
		return
	}

	// --- Existing tag ---
	tag, tagged := naming.ParseTag(f.Stem)
	if tagged && tag.Satisfies(o.opts) {
		meta := tag.Metadata()
		fr.meta = &meta
		o.finish(ctx, fr, stats, StateSkippedNamed, nil)
		return
	}

	// --- Extract ---
	depth := extract.DepthSummary
	if o.cfg.IncludeMaxResource {
		depth = extract.DepthEvents
	}
	o.log.Debug(o.cfg.Verbose, "  Extracting (%s)", depth)
	meta, err := o.extractor.Extract(ctx, f.Path, depth)
	if err == nil && !meta.Complete() {
		err = fmt.Errorf("%w: outcome %s, opponent %s", naming.ErrUnknownResult, meta.Outcome, meta.Opponent)
	}
	if err != nil {
		o.finish(ctx, fr, stats, StateExtractFailed, err)
		return
	}
	fr.meta = &meta
	if tagged && (tag.Outcome != meta.Outcome || tag.Opponent != meta.Opponent) {
		o.log.Warn("  Name says %s vs %s, replay says %s vs %s; using the replay",
			tag.Outcome, tag.Opponent, meta.Outcome, meta.Opponent)
	}
	stats.RecordResult(meta)

	// --- Rename ---
	base := f.Stem
	if tagged {
		base = tag.Base
	}
	newName, err := naming.Build(base, f.Ext, meta, o.opts)
	if err != nil {
		o.finish(ctx, fr, stats, StateExtractFailed, err)
		return
	}
	if newName == f.Name {
		o.finish(ctx, fr, stats, StateRenamed, nil)
		return
	}
	if err := o.ensureBackup(fr, stats); err != nil {
		o.finish(ctx, fr, stats, StateExtractFailed, err)
		return
	}

	dst := filepath.Join(f.Dir, newName)
	if err := fsx.RenameNoReplace(f.Path, dst); err != nil {
		o.finish(ctx, fr, stats, StateRenameFailed, fmt.Errorf("rename to %s: %w", newName, err))
		return
	}
	fr.current = f.Renamed(newName)
	stats.Renamed++

	// No marker can exist under the old stem here (checked above), so the
	// new one is simply written; the ledger carries identity across renames.
	o.finish(ctx, fr, stats, StateRenamed, nil)
}

// knownIdentity reports whether the ledger already holds f's content under
// another name, i.e. the replay was renamed outside the tool.
func (o *Orchestrator) knownIdentity(ctx context.Context, f replay.File) bool {
	if o.ledger == nil {
		return false
	}
	id, err := marker.Identity(f.Path)
	if err != nil {
		o.log.Debug(o.cfg.Verbose, "  Identity unavailable: %v", err)
		return false
	}
	name, ok, err := o.ledger.Lookup(ctx, id)
	if err != nil {
		o.log.Warn("  Ledger lookup failed: %v", err)
		return false
	}
	if ok {
		o.log.Debug(o.cfg.Verbose, "  Already processed as %s", name)
	}
	return ok
}

// ensureBackup snapshots the file the first time it is about to change.
func (o *Orchestrator) ensureBackup(fr *fileRun, stats *RunStats) error {
	if !o.cfg.BackupOriginals || fr.backedUp {
		return nil
	}
	c, err := o.backups.Backup(fr.current.Path)
	if err != nil {
		return err
	}
	fr.backedUp = true
	stats.Backups++
	stats.BackupBytes += c.Bytes
	o.log.Debug(o.cfg.Verbose, "  Backed up (%s)", display.FormatBytes(c.Bytes))
	return nil
}

// finish writes the marker for the file's current name, updates the ledger
// and records the terminal state.
func (o *Orchestrator) finish(ctx context.Context, fr *fileRun, stats *RunStats, st State, cause error) {
	p := &marker.Payload{
		File:        fr.current.Name,
		State:       st.String(),
		ProcessedAt: o.now().UTC(),
	}
	if fr.current.Name != fr.original.Name {
		p.OriginalName = fr.original.Name
	}
	if fr.meta != nil {
		p.Outcome = string(fr.meta.Outcome)
		p.Opponent = string(fr.meta.Opponent)
		p.DurationSeconds = fr.meta.DurationSeconds
		p.PeakMinerals = fr.meta.PeakMinerals
	}
	if cause != nil {
		p.Error = cause.Error()
	}
	if id, err := marker.Identity(fr.current.Path); err == nil {
		p.Identity = id
	} else {
		o.log.Debug(o.cfg.Verbose, "  Identity unavailable: %v", err)
	}

	if err := o.markers.Write(fr.current.Path, p); err != nil {
		o.log.Error("  Marker not written, file may be reprocessed: %v", err)
		stats.MarkerFailures++
	}
	if o.ledger != nil && p.Identity != "" {
		if err := o.ledger.Record(ctx, p.Identity, p.File, p.State); err != nil {
			o.log.Warn("  Ledger update failed: %v", err)
		}
	}

	stats.Record(st)
	if st.Failed() {
		stats.FailedMarked = append(stats.FailedMarked, fr.current.Name)
	}
	o.logOutcome(fr, st, cause)
}

func (o *Orchestrator) logOutcome(fr *fileRun, st State, cause error) {
	switch st {
	case StateRenamed:
		if fr.current.Name == fr.original.Name {
			o.log.Success("  Already named: %s", fr.current.Name)
		} else {
			o.log.Success("  Renamed -> %s", fr.current.Name)
		}
	case StateMarked:
		o.log.Success("  Marked processed")
	case StateSkippedMarked:
		o.log.Info("  Already processed, re-marked under current name")
	case StateSkippedNamed:
		o.log.Info("  Already named, skipping")
	case StateExtractFailed:
		o.log.Error("  Extraction failed: %v", cause)
		o.logClassified(cause)
	case StateRenameFailed:
		o.log.Error("  Rename failed: %v", cause)
		o.logClassified(cause)
	}
}

func (o *Orchestrator) logClassified(err error) {
	switch {
	case errors.Is(err, fsx.ErrTargetExists):
		o.log.Warn("  A file with the new name already exists; original left in place")
	case errors.Is(err, naming.ErrUnknownResult):
		o.log.Warn("  Outcome or opponent could not be determined")
	case errors.Is(err, naming.ErrAmbiguousBase):
		o.log.Warn("  The name already starts with a duration or minerals token; rename it or enable that token")
	case errors.Is(err, extract.ErrNoSubject), errors.Is(err, extract.ErrAmbiguousSubject):
		o.log.Warn("  Check player_name (%q)", o.cfg.PlayerName)
	}
}

// --- Logging helpers ---

func (o *Orchestrator) logBatchHeader(stats *RunStats) {
	o.log.Info("Found %s %s file(s) in %s", display.FormatCount(stats.Total), o.cfg.Extension, o.cfg.ReplaysDir)
	o.log.Info("Player: %s", o.cfg.PlayerName)
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	o.log.Info("Rename: %s, duration: %s, minerals: %s, remove chat: %s, backups: %s",
		onOff(o.cfg.RenameFiles), onOff(o.cfg.IncludeDuration), onOff(o.cfg.IncludeMaxResource),
		onOff(o.cfg.RemoveChat), onOff(o.cfg.BackupOriginals))
	if o.cfg.BackupOriginals {
		o.log.Debug(o.cfg.Verbose, "Backups go to %s", o.backups.Dir())
	}
	if o.ledger != nil {
		o.log.Debug(o.cfg.Verbose, "Identity ledger: %s", o.cfg.LedgerPath)
	}
}

func (o *Orchestrator) logSummary(stats *RunStats) {
	o.log.Info("Done: %d processed, %d skipped, %d error(s)", stats.Processed, stats.Skipped, stats.Errors)
	if stats.MarkerFailures > 0 {
		o.log.Warn("%d marker write(s) failed", stats.MarkerFailures)
	}
}
