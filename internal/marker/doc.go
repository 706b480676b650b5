// Package marker persists the "already processed" state that makes the
// pipeline resumable.
//
// A marker is a file co-located with its replay: same stem, distinct suffix
// (game.SC2Replay -> game.processed). Its existence is the single source of
// truth for "do not reprocess". Its content is optional: an empty marker is
// valid, otherwise it holds a versioned JSON [Payload] describing what was
// done. Markers are never deleted by the pipeline; retrying a file means
// removing its marker by hand.
//
// The optional [Ledger] indexes processed replays by content identity so a
// replay renamed outside the pipeline is still recognized.
package marker
