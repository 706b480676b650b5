package pipeline

// State is a replay's position in the per-file state machine.
type State int

const (
	StateDiscovered State = iota
	StateSkippedMarked
	StateSkippedNamed
	StateExtracting
	StateExtractFailed
	StateRenamePending
	StateRenamed
	StateRenameFailed
	// StateMarked is reached when renaming is disabled: the file is marked
	// without being extracted.
	StateMarked
)

var stateNames = [...]string{
	StateDiscovered:    "discovered",
	StateSkippedMarked: "skipped_marked",
	StateSkippedNamed:  "skipped_named",
	StateExtracting:    "extracting",
	StateExtractFailed: "extract_failed",
	StateRenamePending: "rename_pending",
	StateRenamed:       "renamed",
	StateRenameFailed:  "rename_failed",
	StateMarked:        "marked",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends processing of a file.
func (s State) Terminal() bool {
	switch s {
	case StateSkippedMarked, StateSkippedNamed, StateExtractFailed,
		StateRenamed, StateRenameFailed, StateMarked:
		return true
	}
	return false
}

// Failed reports whether s is a terminal error state.
func (s State) Failed() bool {
	return s == StateExtractFailed || s == StateRenameFailed
}
