// Package check provides system diagnostics (the check command) and the
// pre-run dependency validation (CheckDeps) for the external extractor and
// chat stripper.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lucasfepe/sc2replayprocessor/internal/config"
	"github.com/lucasfepe/sc2replayprocessor/internal/marker"
	"github.com/lucasfepe/sc2replayprocessor/internal/pipeline"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrExtractorNotFound = errors.New("metadata extractor not found on PATH")
	ErrStripperNotFound  = errors.New("chat stripper not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck reports on the replay directory, the player identity, the
// external commands and the ledger. It returns false when a run with cfg
// would fail before touching any file.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkIdentity(cfg, log)
	ok = checkReplayDir(cfg, log) && ok
	ok = checkCommand(log, "Extractor", cfg.ExtractorCommand, cfg.RenameFiles) && ok
	ok = checkCommand(log, "Chat stripper", cfg.ChatStripCommand, cfg.RemoveChat) && ok
	ok = checkLedger(cfg, log) && ok
	return ok
}

func checkIdentity(cfg *config.Config, log Logger) bool {
	if err := cfg.Validate(); err != nil {
		log.Error("Configuration: %v", err)
		return false
	}
	log.Success("Player: %s", cfg.PlayerName)
	if cfg.ConfigFile != "" {
		log.Info("Config file: %s", cfg.ConfigFile)
	}
	return true
}

func checkReplayDir(cfg *config.Config, log Logger) bool {
	if cfg.ReplaysDir == "" {
		log.Error("Replay directory: not set")
		return false
	}
	if err := cfg.ValidateDir(); err != nil {
		log.Error("Replay directory: %v", err)
		return false
	}
	files, err := pipeline.Discover(cfg.ReplaysDir, cfg.Extension)
	if err != nil {
		log.Error("Cannot list %s: %v", cfg.ReplaysDir, err)
		return false
	}
	markers, _ := marker.NewStore(cfg.MarkerSuffix).List(cfg.ReplaysDir)
	log.Success("Replay directory: %s (%d %s file(s), %d marker(s))",
		cfg.ReplaysDir, len(files), cfg.Extension, len(markers))

	if fi, err := os.Stat(cfg.BackupPath()); err == nil && !fi.IsDir() {
		log.Error("Backup path exists and is not a directory: %s", cfg.BackupPath())
		return false
	}
	return true
}

// checkCommand resolves argv[0] on PATH. A command that is not needed with
// the current options only produces a warning.
func checkCommand(log Logger, label string, argv []string, required bool) bool {
	if len(argv) == 0 {
		if required {
			log.Error("%s: no command configured", label)
			return false
		}
		return true
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		if required {
			log.Error("%s not found: %s", label, argv[0])
			return false
		}
		log.Warn("%s not found: %s (not needed with current options)", label, argv[0])
		return true
	}
	log.Success("%s: %s", label, strings.Join(append([]string{path}, argv[1:]...), " "))
	return true
}

func checkLedger(cfg *config.Config, log Logger) bool {
	if cfg.LedgerPath == "" {
		log.Debug(cfg.Verbose, "Identity ledger: disabled")
		return true
	}
	l, err := marker.OpenLedger(cfg.LedgerPath)
	if err != nil {
		log.Error("Identity ledger: %v", err)
		return false
	}
	defer l.Close()
	n, err := l.Count(context.Background())
	if err != nil {
		log.Error("Identity ledger: %v", err)
		return false
	}
	log.Success("Identity ledger: %s (%d replay(s))", filepath.Base(cfg.LedgerPath), n)
	return true
}

// CheckDeps is the pre-run validation: the extractor must resolve when
// renaming is enabled and the chat stripper when chat removal is enabled.
func CheckDeps(cfg *config.Config) error {
	if cfg.RenameFiles {
		if err := lookPath(cfg.ExtractorCommand); err != nil {
			return fmt.Errorf("%w: %v", ErrExtractorNotFound, err)
		}
	}
	if cfg.RemoveChat {
		if err := lookPath(cfg.ChatStripCommand); err != nil {
			return fmt.Errorf("%w: %v", ErrStripperNotFound, err)
		}
	}
	return nil
}

func lookPath(argv []string) error {
	if len(argv) == 0 {
		return errors.New("no command configured")
	}
	_, err := exec.LookPath(argv[0])
	return err
}
