// Package stash is the catalog client used by the scrape pipeline.
//
// It wraps the shared GraphQL transport with the queries and mutations the
// orchestrator, entity resolver and tag reconciler need: tag lookup and
// lifecycle, item enumeration by control tag, entity search and creation,
// URL and fragment scrapes, per-kind updates, bulk tag updates, and the
// stash-box operations the catalog proxies (scene queries, fingerprint
// submission and the identify task).
//
// Every method converts wire payloads into catalog types so no GraphQL shape
// leaks past this package.
package stash
