package config

// This file binds CLI flags (pflag, via cobra) and merges them over the
// config file. Flags override the file only when explicitly set, so
// "--no-backup" wins over backup_originals: true but an absent flag does not
// reset a value the file chose.

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds the raw flag values registered on a command.
type Flags struct {
	fs *pflag.FlagSet

	configFile string
	player     string
	extension  string
	ledger     string
	extractor  string
	stripper   string
	logFile    string
	color      ColorMode

	removeChat bool
	pause      bool
	verbose    bool

	noRename   bool
	noReport   bool
	noBackup   bool
	noDuration bool
	noMinerals bool
	noColor    bool
}

// RegisterFlags defines the run flags on fs and returns the holder used by [Load].
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs, color: ColorAuto}

	fs.StringVarP(&f.configFile, "config", "c", "", "Config file (default: "+DefaultFileName+" in the replay dir or cwd)")
	fs.StringVarP(&f.player, "player", "p", "", "Your StarCraft II player name")
	fs.StringVar(&f.extension, "ext", "", "Replay file extension (default: .SC2Replay)")
	fs.StringVar(&f.ledger, "ledger", "", "SQLite identity ledger path (recognizes externally renamed replays)")
	fs.StringVar(&f.extractor, "extractor", "", "Metadata extractor command line")
	fs.StringVar(&f.stripper, "chat-stripper", "", "Chat stripper command line")

	fs.BoolVar(&f.removeChat, "remove-chat", false, "Strip chat from replays before analysis")
	fs.BoolVar(&f.noRename, "no-rename", false, "Only mark files; do not rename")
	fs.BoolVar(&f.noReport, "no-report", false, "Do not print the end-of-run report")
	fs.BoolVar(&f.noBackup, "no-backup", false, "Do not back up originals before mutating them")
	fs.BoolVar(&f.noDuration, "no-duration", false, "Omit the <N>min token")
	fs.BoolVar(&f.noMinerals, "no-minerals", false, "Omit the <N>minerals token")
	fs.BoolVar(&f.pause, "pause", false, "Wait for Enter before exiting")

	fs.Var(&colorModeValue{&f.color}, "color", "Color output: auto | always | never")
	fs.BoolVar(&f.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
	fs.StringVarP(&f.logFile, "log", "l", "", "Append logs to file")
	return f
}

// Load builds the effective Config: defaults, then the config file, then
// explicitly set flags, then the positional replays directory (dirArg, may
// be empty). The result is not validated.
func Load(f *Flags, dirArg string) (Config, error) {
	cfg := DefaultConfig()

	path, required := f.configPath(dirArg)
	if path != "" {
		fc, exists, err := ReadFile(path)
		if err != nil {
			return cfg, invalid(path, err)
		}
		if !exists && required {
			return cfg, invalid(path, os.ErrNotExist)
		}
		if exists {
			abs, _ := filepath.Abs(path)
			cfg.ConfigFile = abs
			cfg.ApplyFile(fc, filepath.Dir(abs))
		}
	}

	if err := f.apply(&cfg); err != nil {
		return cfg, invalid(cfg.ConfigFile, err)
	}

	if dirArg != "" {
		cfg.ReplaysDir = NormalizeDirArg(dirArg)
	}
	if cfg.ReplaysDir != "" {
		abs, err := filepath.Abs(cfg.ReplaysDir)
		if err != nil {
			return cfg, &Error{Code: ErrCodeDirNotFound, Path: cfg.ReplaysDir, Err: err}
		}
		cfg.ReplaysDir = abs
	}
	return cfg, nil
}

// configPath returns the config file to read and whether it must exist.
func (f *Flags) configPath(dirArg string) (string, bool) {
	if f.configFile != "" {
		return f.configFile, true
	}
	if dirArg != "" {
		p := filepath.Join(dirArg, DefaultFileName)
		if _, err := os.Stat(p); err == nil {
			return p, false
		}
	}
	return DefaultFileName, false
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply copies explicitly set flags into cfg.
func (f *Flags) apply(cfg *Config) error {
	if f.changed("player") {
		cfg.PlayerName = f.player
	}
	if f.changed("ext") {
		cfg.Extension = f.extension
	}
	if f.changed("ledger") {
		cfg.LedgerPath = f.ledger
	}
	if f.changed("extractor") {
		argv := strings.Fields(f.extractor)
		if len(argv) == 0 {
			return errors.New("--extractor must not be empty")
		}
		cfg.ExtractorCommand = argv
	}
	if f.changed("chat-stripper") {
		argv := strings.Fields(f.stripper)
		if len(argv) == 0 {
			return errors.New("--chat-stripper must not be empty")
		}
		cfg.ChatStripCommand = argv
	}
	if f.changed("remove-chat") {
		cfg.RemoveChat = f.removeChat
	}
	if f.changed("pause") {
		cfg.PauseWhenDone = f.pause
	}
	if f.noRename {
		cfg.RenameFiles = false
	}
	if f.noReport {
		cfg.GenerateReport = false
	}
	if f.noBackup {
		cfg.BackupOriginals = false
	}
	if f.noDuration {
		cfg.IncludeDuration = false
	}
	if f.noMinerals {
		cfg.IncludeMaxResource = false
	}
	if f.changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if f.changed("log") {
		cfg.LogFile = f.logFile
	}
	if f.noColor {
		cfg.ColorMode = ColorNever
	} else if f.changed("color") {
		cfg.ColorMode = f.color
	}
	return nil
}

// colorModeValue adapts ColorMode to pflag.Value.
type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always or never)", s)
	}
	return nil
}
