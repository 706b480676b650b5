package config

import (
	"errors"
	"fmt"
)

// Configuration error codes. Any of them aborts the run before a file is touched.
const (
	ErrCodeInvalid         = "config_invalid"
	ErrCodeMissingIdentity = "config_missing_identity"
	ErrCodeMissingPath     = "config_missing_path"
	ErrCodeDirNotFound     = "replays_dir_not_found"
)

// Error is a configuration-stage error carrying a stable code.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingIdentity:
		return fmt.Sprintf("%s: set player_name (or --player) to your StarCraft II name", e.Code)
	case ErrCodeMissingPath:
		return fmt.Sprintf("%s: no replays directory given (argument or replays_path)", e.Code)
	case ErrCodeDirNotFound:
		return fmt.Sprintf("%s: replay directory %q: %v", e.Code, e.Path, e.Err)
	}
	if e.Path != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code from err, or "" when err is not a *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func invalid(path string, err error) *Error {
	return &Error{Code: ErrCodeInvalid, Path: path, Err: err}
}
