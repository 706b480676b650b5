// Package pipeline orchestrates replay discovery, the per-file processing
// state machine, and the batch summary.
//
// Processing is strictly sequential. Every per-file failure is classified
// and counted inside processFile; none escapes to the batch loop. A file
// that reaches any terminal state gets a marker, so a later run skips it.
package pipeline
