// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag binding, and validation. A Config value is built once
// at startup and passed explicitly to every package that needs it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// PlaceholderPlayer is the player name shipped in sc2replays.example.yaml. A run
// with it is refused: every replay would fail subject resolution.
const PlaceholderPlayer = "YourUsername"

// Config holds all runtime settings. It is populated by [DefaultConfig], then
// by the config file, then by CLI flags (see [Load]).
type Config struct {
	// Paths.
	ReplaysDir string // Positional arg or replays_path in the config file.
	ConfigFile string // Resolved config file, empty when none was read.

	// Identity of the subject player; matched case-insensitively as a substring.
	PlayerName string

	// Persisted layout.
	Extension    string // Default: ".SC2Replay".
	MarkerSuffix string // Default: ".processed".
	BackupDir    string // Default: "backups" (relative to ReplaysDir).
	LedgerPath   string // Optional SQLite identity ledger; empty disables it.

	// Pipeline options.
	RemoveChat         bool // Default: false.
	RenameFiles        bool // Default: true.
	GenerateReport     bool // Default: true.
	BackupOriginals    bool // Default: true.
	IncludeDuration    bool // Default: true.
	IncludeMaxResource bool // Default: true.
	PauseWhenDone      bool // Interactive only; handled by the command.

	// External collaborators (argv; the replay path is appended).
	ExtractorCommand []string // Default: ["sc2meta"].
	ChatStripCommand []string // Default: ["sc2strip"].

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns the built-in defaults: report and backups on, chat
// removal off, every name token enabled.
func DefaultConfig() Config {
	return Config{
		Extension:          ".SC2Replay",
		MarkerSuffix:       ".processed",
		BackupDir:          "backups",
		RemoveChat:         false,
		RenameFiles:        true,
		GenerateReport:     true,
		BackupOriginals:    true,
		IncludeDuration:    true,
		IncludeMaxResource: true,
		PauseWhenDone:      false,
		ExtractorCommand:   []string{"sc2meta"},
		ChatStripCommand:   []string{"sc2strip"},
		ColorMode:          ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// BackupPath returns the absolute backup directory.
func (c *Config) BackupPath() string {
	if filepath.IsAbs(c.BackupDir) {
		return c.BackupDir
	}
	return filepath.Join(c.ReplaysDir, c.BackupDir)
}

// Validate checks every field that can be checked without touching the
// filesystem. The returned error is always a *Error.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return invalid(c.ConfigFile, fmt.Errorf("invalid color mode %q (use auto, always or never)", c.ColorMode))
	}

	name := strings.TrimSpace(c.PlayerName)
	if name == "" || name == PlaceholderPlayer {
		return &Error{Code: ErrCodeMissingIdentity, Path: c.ConfigFile}
	}
	if strings.TrimSpace(c.ReplaysDir) == "" {
		return &Error{Code: ErrCodeMissingPath, Path: c.ConfigFile}
	}

	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return invalid(c.ConfigFile, fmt.Errorf("extension %q must start with a dot", c.Extension))
	}
	if !strings.HasPrefix(c.MarkerSuffix, ".") || strings.EqualFold(c.MarkerSuffix, c.Extension) {
		return invalid(c.ConfigFile, fmt.Errorf("marker suffix %q must start with a dot and differ from the replay extension", c.MarkerSuffix))
	}
	if c.BackupDir == "" || strings.Contains(c.BackupDir, "..") {
		return invalid(c.ConfigFile, fmt.Errorf("invalid backup directory %q", c.BackupDir))
	}
	if c.RenameFiles && len(c.ExtractorCommand) == 0 {
		return invalid(c.ConfigFile, errors.New("rename_files needs an extractor command"))
	}
	if c.RemoveChat && len(c.ChatStripCommand) == 0 {
		return invalid(c.ConfigFile, errors.New("remove_chat needs a chat_stripper command"))
	}
	return nil
}

// ValidateDir verifies the replays directory exists and is a directory.
func (c *Config) ValidateDir() error {
	fi, err := os.Stat(c.ReplaysDir)
	if err != nil {
		return &Error{Code: ErrCodeDirNotFound, Path: c.ReplaysDir, Err: err}
	}
	if !fi.IsDir() {
		return &Error{Code: ErrCodeDirNotFound, Path: c.ReplaysDir, Err: errors.New("not a directory")}
	}
	return nil
}
