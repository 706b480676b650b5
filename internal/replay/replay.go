// Package replay defines the domain types shared by every stage of the
// pipeline: the replay file on disk and the metadata derived from it.
package replay

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Outcome is the result of the match from the subject player's point of view.
type Outcome string

const (
	OutcomeWin     Outcome = "WIN"
	OutcomeLose    Outcome = "LOSE"
	OutcomeUnknown Outcome = "UNKNOWN"
)

// ParseOutcome maps an outcome token (case-insensitive) to an Outcome.
// Anything unrecognized yields OutcomeUnknown.
func ParseOutcome(s string) Outcome {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "WIN":
		return OutcomeWin
	case "LOSE", "LOSS":
		return OutcomeLose
	}
	return OutcomeUnknown
}

// Race is the opponent category.
type Race string

const (
	RaceTerran  Race = "Terran"
	RaceProtoss Race = "Protoss"
	RaceZerg    Race = "Zerg"
	RaceUnknown Race = "UNKNOWN"
)

// Races lists the known opponent categories in report order.
var Races = []Race{RaceTerran, RaceProtoss, RaceZerg}

// ParseRace maps a race name (case-insensitive) to a Race.
func ParseRace(s string) Race {
	s = strings.TrimSpace(s)
	for _, r := range Races {
		if strings.EqualFold(s, string(r)) {
			return r
		}
	}
	return RaceUnknown
}

// Known reports whether r is one of the enumerated races.
func (r Race) Known() bool {
	return r == RaceTerran || r == RaceProtoss || r == RaceZerg
}

// Metadata is what the extractor derives from one replay. Zero duration or
// zero minerals mean the value was unavailable.
type Metadata struct {
	Outcome         Outcome
	Opponent        Race
	DurationSeconds int
	PeakMinerals    int
}

// Complete reports whether both outcome and opponent are known.
func (m Metadata) Complete() bool {
	return (m.Outcome == OutcomeWin || m.Outcome == OutcomeLose) && m.Opponent.Known()
}

// DurationMinutes returns the whole minutes of the match (truncated).
func (m Metadata) DurationMinutes() int {
	if m.DurationSeconds <= 0 {
		return 0
	}
	return m.DurationSeconds / 60
}

// File is a replay on disk at the moment it was discovered.
type File struct {
	Path    string
	Dir     string
	Name    string // base name with extension
	Stem    string // Name without extension
	Ext     string
	ModTime time.Time
	Size    int64
}

// Stat builds a File from path.
func Stat(path string) (File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	return NewFile(path, fi.ModTime(), fi.Size()), nil
}

// NewFile builds a File without touching the filesystem.
func NewFile(path string, mod time.Time, size int64) File {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return File{
		Path:    path,
		Dir:     filepath.Dir(path),
		Name:    name,
		Stem:    strings.TrimSuffix(name, ext),
		Ext:     ext,
		ModTime: mod,
		Size:    size,
	}
}

// Renamed returns a copy of f pointing at newName in the same directory.
func (f File) Renamed(newName string) File {
	return NewFile(filepath.Join(f.Dir, newName), f.ModTime, f.Size)
}
