package orchestrator

import (
	"context"
	"time"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/resolver"
	"bulkscrape/internal/tags"
)

// Catalog is the catalog surface the controller drives.
type Catalog interface {
	resolver.Catalog
	tags.BulkUpdater

	FindTag(ctx context.Context, name string) (*catalog.Tag, error)
	DestroyTag(ctx context.Context, id string) error
	ListScrapers(ctx context.Context, kind catalog.Kind) ([]catalog.Scraper, error)

	FindItems(ctx context.Context, kind catalog.Kind, query catalog.ItemQuery) ([]catalog.Item, error)
	FindScenes(ctx context.Context, tagID string) ([]catalog.Scene, error)
	FindScenesWithStashIDs(ctx context.Context, page, perPage int) (catalog.ScenePage, error)

	ScrapeURL(ctx context.Context, kind catalog.Kind, rawURL string) (catalog.ScrapedRecord, error)
	ScrapeFragment(ctx context.Context, scraperID string, item catalog.Item) (catalog.ScrapedRecord, error)
	Update(ctx context.Context, update catalog.Update) error

	StashBoxes(ctx context.Context) ([]catalog.StashBox, error)
	QueryStashBoxScenes(ctx context.Context, index int, sceneIDs []string) ([]catalog.ScrapedScene, error)
	SubmitFingerprints(ctx context.Context, index int, sceneIDs []string) (bool, error)
	Identify(ctx context.Context, endpoint string, sceneIDs []string) (string, error)
}

// Registry answers the direct stash-box lookups used by update detection.
type Registry interface {
	SceneUpdated(ctx context.Context, stashID string) (time.Time, error)
}

// RegistryFactory opens a Registry for a configured stash-box.
type RegistryFactory func(box catalog.StashBox) Registry

// Recorder persists per-item results, typically into the run journal.
type Recorder interface {
	RecordItem(ctx context.Context, runID string, result ItemResult) error
}
