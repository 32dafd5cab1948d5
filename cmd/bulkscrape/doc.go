// Package main hosts the bulkscrape CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration, builds the catalog client and
// the scrape orchestrator, and runs one mode per invocation under the run
// lock. Every scrape run is journaled and summarized as a table or JSON.
//
// Keep this package lean: behavior belongs in the internal packages, and
// commands here only wire them together and render results.
package main
