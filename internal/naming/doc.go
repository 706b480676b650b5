// Package naming builds and parses result-tagged replay names.
//
// A tagged name is a fixed sequence of "_"-delimited tokens followed by the
// original base name and the unchanged extension:
//
//	WIN_vs_Terran_15min_2500minerals_<base>.SC2Replay
//	LOSE_vs_Zerg_<base>.SC2Replay           (optional tokens disabled)
//
// [Build] is pure. [ParseTag] is the inverse grammar used to decide whether a
// file already carries a result; it never matches on bare substrings, so an
// opponent or base name containing "_WIN_vs_" is not misread.
//
// Files:
//   - builder.go: Build, Options, ErrUnknownResult
//   - tag.go: Tag, ParseTag, AlreadyHasResult, BaseName
//   - redundant.go: CollapseRedundant for the legacy double-tagged names
package naming
