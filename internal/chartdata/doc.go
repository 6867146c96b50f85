// Package chartdata canonicalizes loosely typed chart payloads into the
// engine-ready domain model.
//
// The normalizer accepts records with arbitrary key aliases for the same
// semantic field (a timestamp may arrive under "t", "time", "timestamp",
// "date" or "datetime"; an OHLC quad under one-letter or full spellings)
// and merges them by fixed alias-priority lists, first match wins. It is a
// pure transform: errors are returned, never thrown, so the orchestrator
// can act on them without exception-based control flow.
//
// The granularity inferencer derives a display time unit from the mean
// inter-point spacing of a sorted timestamp sequence. The unit only affects
// axis tick formatting and carries no correctness requirement beyond being
// a reasonable default.
package chartdata
