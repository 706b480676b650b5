package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/fsx"
	"github.com/lucasfepe/sc2replayprocessor/internal/logging"
	"github.com/lucasfepe/sc2replayprocessor/internal/marker"
	"github.com/lucasfepe/sc2replayprocessor/internal/naming"
)

// FixStats counts the outcome of a FixNames pass.
type FixStats struct {
	Scanned    int
	Fixed      int
	Collisions int
	Errors     int
}

// FixNames collapses redundant double-tagged names of replays (extension
// ext) directly inside dir. A replay's marker (suffix markerSuffix) follows
// it; markers without a replay are fixed on their own. An existing target
// is never overwritten. With dryRun nothing is renamed.
func FixNames(dir, ext, markerSuffix string, dryRun bool, log *logging.Logger) (FixStats, error) {
	var fs FixStats
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fs, err
	}
	var replays, markers []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		switch sfx := filepath.Ext(e.Name()); {
		case strings.EqualFold(sfx, ext):
			replays = append(replays, e.Name())
		case sfx == markerSuffix:
			markers = append(markers, e.Name())
		}
	}
	sort.Strings(replays)
	sort.Strings(markers)
	fs.Scanned = len(replays) + len(markers)

	store := marker.NewStore(markerSuffix)
	for _, name := range replays {
		newName, ok := collapsed(name)
		if !ok {
			continue
		}
		if dryRun {
			log.Info("[DRY] %s -> %s", name, newName)
			fs.Fixed++
			continue
		}
		oldPath, newPath := filepath.Join(dir, name), filepath.Join(dir, newName)
		if !fixOne(oldPath, newPath, log, &fs) {
			continue
		}
		moved, err := store.Migrate(oldPath, newPath)
		switch {
		case err != nil:
			log.Error("%v", err)
			fs.Errors++
		case moved:
			log.Success("Fixed marker: %s", filepath.Base(store.PathFor(newPath)))
			fs.Fixed++
		}
	}

	for _, name := range markers {
		newName, ok := collapsed(name)
		if !ok {
			continue
		}
		oldPath := filepath.Join(dir, name)
		if _, err := os.Lstat(oldPath); err != nil {
			// Moved along with its replay.
			continue
		}
		if dryRun {
			log.Info("[DRY] %s -> %s", name, newName)
			fs.Fixed++
			continue
		}
		fixOne(oldPath, filepath.Join(dir, newName), log, &fs)
	}
	return fs, nil
}

// collapsed returns the fixed name for a redundant name, keeping its suffix.
func collapsed(name string) (string, bool) {
	sfx := filepath.Ext(name)
	fixed, ok := naming.CollapseRedundant(strings.TrimSuffix(name, sfx))
	if !ok {
		return "", false
	}
	return fixed + sfx, true
}

func fixOne(oldPath, newPath string, log *logging.Logger, fs *FixStats) bool {
	name, newName := filepath.Base(oldPath), filepath.Base(newPath)
	err := fsx.RenameNoReplace(oldPath, newPath)
	switch {
	case err == nil:
		log.Success("Fixed: %s -> %s", name, newName)
		fs.Fixed++
		return true
	case errors.Is(err, fsx.ErrTargetExists):
		log.Warn("Target exists, skipped: %s -> %s", name, newName)
		fs.Collisions++
	default:
		log.Error("Rename failed for %s: %v", name, err)
		fs.Errors++
	}
	return false
}
