// Command sc2replays renames StarCraft II replays after their outcome,
// opponent race, length and peak mineral bank, marking each replay so a
// later run never processes it twice.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/lucasfepe/sc2replayprocessor/internal/check"
	"github.com/lucasfepe/sc2replayprocessor/internal/config"
	"github.com/lucasfepe/sc2replayprocessor/internal/display"
	"github.com/lucasfepe/sc2replayprocessor/internal/extract"
	"github.com/lucasfepe/sc2replayprocessor/internal/logging"
	"github.com/lucasfepe/sc2replayprocessor/internal/marker"
	"github.com/lucasfepe/sc2replayprocessor/internal/pipeline"
)

var version = semver.Version{
	Major: 1,
	Minor: 2,
	Patch: 0,
	Build: semver.Commit(),
}

// Exit codes.
const (
	exitOK     = 0
	exitErrors = 1 // the batch finished but some files failed
	exitConfig = 2 // configuration or usage error; nothing was touched
)

// errFilesFailed signals a completed command with per-file failures.
var errFilesFailed = errors.New("some files failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	code := exitCode(err)
	if err != nil && code == exitConfig {
		fmt.Fprintf(stderr, "sc2replays: %v\n", err)
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFilesFailed):
		return exitErrors
	default:
		return exitConfig
	}
}

func newRootCmd() *cobra.Command {
	var flags *config.Flags
	root := &cobra.Command{
		Use:   "sc2replays [replays_dir]",
		Short: "Rename StarCraft II replays after their result",
		Long: `sc2replays renames every unprocessed replay in a directory to
WIN|LOSE_vs_<Race>[_<N>min][_<N>minerals]_<original name>, backing up the
original first and writing a marker so the replay is skipped next time.

Running without a command is the same as "sc2replays run".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags, firstArg(args))
		},
	}
	flags = config.RegisterFlags(root.Flags())

	root.AddCommand(newRunCmd(), newCheckCmd(), newMarkersCmd(), newFixNamesCmd(), newVersionCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var flags *config.Flags
	cmd := &cobra.Command{
		Use:   "run [replays_dir]",
		Short: "Process every unmarked replay in the directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, flags, firstArg(args))
		},
	}
	flags = config.RegisterFlags(cmd.Flags())
	return cmd
}

func newCheckCmd() *cobra.Command {
	var flags *config.Flags
	cmd := &cobra.Command{
		Use:   "check [replays_dir]",
		Short: "Check the configuration and the external tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags, firstArg(args))
			if err != nil {
				return err
			}
			log, err := logging.NewLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			display.PrintBanner(cmd.OutOrStdout(), version.Core())
			if !check.RunCheck(&cfg, log) {
				return errFilesFailed
			}
			return nil
		},
	}
	flags = config.RegisterFlags(cmd.Flags())
	return cmd
}

func newMarkersCmd() *cobra.Command {
	var flags *config.Flags
	cmd := &cobra.Command{
		Use:   "markers [replays_dir]",
		Short: "List processed markers and what they recorded",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadDir(flags, firstArg(args))
			if err != nil {
				return err
			}
			return listMarkers(cmd.OutOrStdout(), &cfg)
		},
	}
	flags = config.RegisterFlags(cmd.Flags())
	return cmd
}

func newFixNamesCmd() *cobra.Command {
	var (
		flags  *config.Flags
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "fix-names [replays_dir]",
		Short: "Collapse names that were tagged twice by older versions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadDir(flags, firstArg(args))
			if err != nil {
				return err
			}
			log, err := logging.NewLogger(&cfg)
			if err != nil {
				return err
			}
			defer log.Close()

			fs, err := pipeline.FixNames(cfg.ReplaysDir, cfg.Extension, cfg.MarkerSuffix, dryRun, log)
			if err != nil {
				return err
			}
			log.Info("Scanned %d file(s): %d fixed, %d collision(s), %d error(s)",
				fs.Scanned, fs.Fixed, fs.Collisions, fs.Errors)
			if fs.Errors > 0 || fs.Collisions > 0 {
				return errFilesFailed
			}
			return nil
		},
	}
	flags = config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be renamed")
	return cmd
}

func newVersionCmd() *cobra.Command {
	var showBuildInfo bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.Core())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBuildInfo, "build", false, "include build information")
	return cmd
}

// runBatch is the run command: configuration errors abort before any file
// is touched; per-file failures surface as errFilesFailed.
func runBatch(cmd *cobra.Command, flags *config.Flags, dirArg string) error {
	cfg, err := config.Load(flags, dirArg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ValidateDir(); err != nil {
		return err
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return err
	}
	defer log.Close()

	out := cmd.OutOrStdout()
	display.PrintBanner(out, version.Core())

	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		log.Error("Run \"sc2replays check\" for details")
		return err
	}

	var ledger *marker.Ledger
	if cfg.LedgerPath != "" {
		if ledger, err = marker.OpenLedger(cfg.LedgerPath); err != nil {
			return err
		}
		defer ledger.Close()
	}

	// Cancel on SIGINT/SIGTERM so the batch stops after the current file.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, finishing current file...")
			cancel()
		case <-ctx.Done():
		}
	}()

	orch := pipeline.New(&cfg, log, pipeline.Deps{
		Extractor: extract.NewCommand(cfg.ExtractorCommand, cfg.PlayerName),
		Stripper:  extract.NewCommandStripper(cfg.ChatStripCommand),
		Ledger:    ledger,
	})
	stats := orch.Run(ctx)

	if cfg.GenerateReport {
		fmt.Fprintln(out)
		fmt.Fprintln(out, display.RenderReport(stats.Report(cfg.MarkerSuffix)))
	}
	if cfg.PauseWhenDone {
		pause(cmd.InOrStdin(), out)
	}
	if stats.Errors > 0 {
		return errFilesFailed
	}
	return nil
}

// loadDir loads the configuration for commands that only need the replay
// directory, not the player identity.
func loadDir(flags *config.Flags, dirArg string) (config.Config, error) {
	cfg, err := config.Load(flags, dirArg)
	if err != nil {
		return cfg, err
	}
	if cfg.ReplaysDir == "" {
		return cfg, &config.Error{Code: config.ErrCodeMissingPath, Path: cfg.ConfigFile}
	}
	return cfg, cfg.ValidateDir()
}

func pause(in io.Reader, out io.Writer) {
	fmt.Fprint(out, "\nPress Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
