// Package orchestrator drives the bulk scrape modes.
//
// A Controller enumerates the catalog items selected by a control tag, waits
// on the shared rate limiter, invokes the scraper (or the stash-box
// registry), maps the result into a typed update, and persists it with the
// two-phase tag merge. Items are processed strictly one at a time. Every item
// ends in a typed Outcome that is logged, handed to the optional Recorder and
// folded into a BatchSummary; only fatal transport errors (see
// services.IsFatal) stop a run early.
//
// URL mode additionally tracks DomainHealth so a host that has no scraper is
// not asked again for the rest of the batch.
package orchestrator
