package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the replays directory, then in the
// working directory, when --config is not given.
const DefaultFileName = "sc2replays.yaml"

// FileConfig mirrors sc2replays.yaml. Pointer fields distinguish "unset"
// from an explicit false.
type FileConfig struct {
	PlayerName  string `yaml:"player_name"`
	ReplaysPath string `yaml:"replays_path"`

	Extension    string `yaml:"extension"`
	MarkerSuffix string `yaml:"marker_suffix"`
	BackupDir    string `yaml:"backup_dir"`
	Ledger       string `yaml:"ledger"`

	RemoveChat         *bool `yaml:"remove_chat"`
	RenameFiles        *bool `yaml:"rename_files"`
	GenerateReport     *bool `yaml:"generate_report"`
	BackupOriginals    *bool `yaml:"backup_originals"`
	IncludeDuration    *bool `yaml:"include_duration"`
	IncludeMaxResource *bool `yaml:"include_max_resource"`
	PauseWhenDone      *bool `yaml:"pause_when_done"`

	Extractor    *CommandConfig `yaml:"extractor"`
	ChatStripper *CommandConfig `yaml:"chat_stripper"`

	Verbose *bool  `yaml:"verbose"`
	Color   string `yaml:"color"`
	LogFile string `yaml:"log_file"`
}

// CommandConfig names an external program and its leading arguments.
type CommandConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

func (cc *CommandConfig) argv() []string {
	if cc == nil || strings.TrimSpace(cc.Command) == "" {
		return nil
	}
	return append([]string{cc.Command}, cc.Args...)
}

// ReadFile parses a YAML config file. exists is false (with a nil error)
// when the file is absent. Unknown keys are rejected so typos surface early.
func ReadFile(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if errors.Is(err, io.EOF) {
			return FileConfig{}, true, nil
		}
		return FileConfig{}, true, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return fc, true, nil
}

// ApplyFile copies every set field of fc into c. Relative paths in the file
// are resolved against baseDir (the directory holding the file).
func (c *Config) ApplyFile(fc FileConfig, baseDir string) {
	setString(&c.PlayerName, fc.PlayerName)
	if p := strings.TrimSpace(fc.ReplaysPath); p != "" {
		c.ReplaysDir = resolveFrom(baseDir, p)
	}
	setString(&c.Extension, fc.Extension)
	setString(&c.MarkerSuffix, fc.MarkerSuffix)
	setString(&c.BackupDir, fc.BackupDir)
	if p := strings.TrimSpace(fc.Ledger); p != "" {
		c.LedgerPath = resolveFrom(baseDir, p)
	}

	setBool(&c.RemoveChat, fc.RemoveChat)
	setBool(&c.RenameFiles, fc.RenameFiles)
	setBool(&c.GenerateReport, fc.GenerateReport)
	setBool(&c.BackupOriginals, fc.BackupOriginals)
	setBool(&c.IncludeDuration, fc.IncludeDuration)
	setBool(&c.IncludeMaxResource, fc.IncludeMaxResource)
	setBool(&c.PauseWhenDone, fc.PauseWhenDone)
	setBool(&c.Verbose, fc.Verbose)

	if argv := fc.Extractor.argv(); argv != nil {
		c.ExtractorCommand = argv
	}
	if argv := fc.ChatStripper.argv(); argv != nil {
		c.ChatStripCommand = argv
	}
	if fc.Color != "" {
		c.ColorMode = ColorMode(strings.ToLower(fc.Color))
	}
	if p := strings.TrimSpace(fc.LogFile); p != "" {
		c.LogFile = resolveFrom(baseDir, p)
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// resolveFrom makes p absolute relative to base; absolute paths are only
// cleaned. A leading "~/" is the user's home directory.
func resolveFrom(base, p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	p = filepath.Clean(p)
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}
