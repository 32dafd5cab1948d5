// Package logging assembles structured slog loggers and formatting helpers used
// across bulkscrape.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so orchestration code can tag
// log lines with run IDs, scrape modes, and catalog item IDs. The CLI logger
// writes human output to stderr and mirrors every record as JSON into
// bulkscrape.log under the configured log directory.
package logging
