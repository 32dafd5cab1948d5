// Package catalog holds the data model shared by the scrape pipeline.
//
// It defines the entity Kind sum type, the sparse scraped record shapes
// returned by scrapers and the stash-box registry, the slices of catalog
// items the scrape loops read, and the typed update payloads the mapper
// produces. Scraped fields are pointers: nil means the scraper had no
// opinion, and Present treats an explicitly empty value the same way, so
// scraping can never clear a catalog field.
package catalog
