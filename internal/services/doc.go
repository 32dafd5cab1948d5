// Package services defines shared utilities consumed by the scrape pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp item IDs, scrape modes, and run correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper, and IsFatal, which
//     separates run-ending transport failures from per-item failures.
//
// Use these helpers when wiring new collaborators so error classification and
// observability stay uniform across the pipeline.
package services
