// Package journal records scrape runs and their per-item outcomes in SQLite.
//
// A Store is opened from the state directory of a config. Each CLI run inserts
// one runs row at start, one run_items row per processed item through the
// orchestrator Recorder hook, and closes the run with its totals. The CLI
// history command reads it back; Prune keeps the newest N runs.
//
// Schema changes bump schemaVersion in schema.go. Users delete journal.db to
// adopt a new schema; the journal holds history only, never work in flight.
package journal
