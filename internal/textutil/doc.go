// Package textutil provides small text helpers shared by the mapper and the
// entity resolver: word title-casing for entity names and HTML stripping for
// scraped descriptions.
package textutil
