package orchestrator_test

import (
	"context"
	"fmt"
	"time"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/orchestrator"
)

type bulkCall struct {
	kind   catalog.Kind
	items  []string
	tagIDs []string
	mode   catalog.BulkMode
}

type itemQueryCall struct {
	kind  catalog.Kind
	query catalog.ItemQuery
}

// fakeCatalog is an in-memory catalog recording every mutation.
type fakeCatalog struct {
	tags      map[string]catalog.Tag
	nextTagID int

	scrapers map[catalog.Kind][]catalog.Scraper
	items    map[catalog.Kind][]catalog.Item
	scenes   []catalog.Scene
	pages    []catalog.ScenePage

	urlResults      map[string]catalog.ScrapedRecord
	urlErrs         map[string]error
	fragmentResults map[string]catalog.ScrapedRecord
	updateErrs      map[string]error

	boxes      []catalog.StashBox
	candidates []catalog.ScrapedScene
	submitOK   bool

	itemQueries   []itemQueryCall
	urlCalls      []string
	fragmentCalls []string
	updates       []catalog.Update
	bulk          []bulkCall
	destroyed     []string
	submitted     [][]string
	identified    []string
	pageCalls     []int
}

func newFakeCatalog(tagNames ...string) *fakeCatalog {
	f := &fakeCatalog{
		tags:            map[string]catalog.Tag{},
		scrapers:        map[catalog.Kind][]catalog.Scraper{},
		items:           map[catalog.Kind][]catalog.Item{},
		urlResults:      map[string]catalog.ScrapedRecord{},
		urlErrs:         map[string]error{},
		fragmentResults: map[string]catalog.ScrapedRecord{},
		updateErrs:      map[string]error{},
		submitOK:        true,
	}
	for _, name := range tagNames {
		f.addTag(name)
	}
	return f
}

func (f *fakeCatalog) addTag(name string) string {
	f.nextTagID++
	id := fmt.Sprintf("tag-%d", f.nextTagID)
	f.tags[name] = catalog.Tag{ID: id, Name: name}
	return id
}

func (f *fakeCatalog) tagID(name string) string {
	return f.tags[name].ID
}

func (f *fakeCatalog) FindTag(_ context.Context, name string) (*catalog.Tag, error) {
	tag, ok := f.tags[name]
	if !ok {
		return nil, nil
	}
	return &tag, nil
}

func (f *fakeCatalog) CreateTag(_ context.Context, name string) (string, error) {
	return f.addTag(name), nil
}

func (f *fakeCatalog) DestroyTag(_ context.Context, id string) error {
	for name, tag := range f.tags {
		if tag.ID == id {
			delete(f.tags, name)
		}
	}
	f.destroyed = append(f.destroyed, id)
	return nil
}

func (f *fakeCatalog) ListScrapers(_ context.Context, kind catalog.Kind) ([]catalog.Scraper, error) {
	return f.scrapers[kind], nil
}

func (f *fakeCatalog) FindItems(_ context.Context, kind catalog.Kind, query catalog.ItemQuery) ([]catalog.Item, error) {
	f.itemQueries = append(f.itemQueries, itemQueryCall{kind: kind, query: query})
	return f.items[kind], nil
}

func (f *fakeCatalog) FindScenes(context.Context, string) ([]catalog.Scene, error) {
	return f.scenes, nil
}

func (f *fakeCatalog) FindScenesWithStashIDs(_ context.Context, page, _ int) (catalog.ScenePage, error) {
	f.pageCalls = append(f.pageCalls, page)
	if page < 1 || page > len(f.pages) {
		return catalog.ScenePage{}, nil
	}
	return f.pages[page-1], nil
}

func (f *fakeCatalog) ScrapeURL(_ context.Context, _ catalog.Kind, rawURL string) (catalog.ScrapedRecord, error) {
	f.urlCalls = append(f.urlCalls, rawURL)
	if err := f.urlErrs[rawURL]; err != nil {
		return nil, err
	}
	return f.urlResults[rawURL], nil
}

func (f *fakeCatalog) ScrapeFragment(_ context.Context, scraperID string, item catalog.Item) (catalog.ScrapedRecord, error) {
	key := scraperID + "/" + item.ID
	f.fragmentCalls = append(f.fragmentCalls, key)
	return f.fragmentResults[key], nil
}

func (f *fakeCatalog) Update(_ context.Context, update catalog.Update) error {
	if err := f.updateErrs[update.TargetID()]; err != nil {
		return err
	}
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeCatalog) BulkUpdateTags(_ context.Context, kind catalog.Kind, itemIDs, tagIDs []string, mode catalog.BulkMode) error {
	f.bulk = append(f.bulk, bulkCall{kind: kind, items: itemIDs, tagIDs: tagIDs, mode: mode})
	return nil
}

func (f *fakeCatalog) StashBoxes(context.Context) ([]catalog.StashBox, error) {
	return f.boxes, nil
}

func (f *fakeCatalog) QueryStashBoxScenes(context.Context, int, []string) ([]catalog.ScrapedScene, error) {
	return f.candidates, nil
}

func (f *fakeCatalog) SubmitFingerprints(_ context.Context, _ int, sceneIDs []string) (bool, error) {
	f.submitted = append(f.submitted, sceneIDs)
	return f.submitOK, nil
}

func (f *fakeCatalog) Identify(_ context.Context, _ string, sceneIDs []string) (string, error) {
	f.identified = append(f.identified, sceneIDs...)
	return "job-1", nil
}

func (f *fakeCatalog) FindPerformers(context.Context, string) ([]catalog.Performer, error) {
	return nil, nil
}

func (f *fakeCatalog) FindStudios(context.Context, string) ([]catalog.Studio, error) {
	return nil, nil
}

func (f *fakeCatalog) FindStudiosByURL(context.Context, string) ([]catalog.Studio, error) {
	return nil, nil
}

func (f *fakeCatalog) FindMovies(context.Context, string) ([]catalog.Movie, error) {
	return nil, nil
}

func (f *fakeCatalog) CreatePerformer(context.Context, catalog.PerformerCreate) (string, error) {
	return "new-performer", nil
}

func (f *fakeCatalog) CreateStudio(context.Context, catalog.StudioCreate) (string, error) {
	return "new-studio", nil
}

func (f *fakeCatalog) CreateMovie(context.Context, catalog.MovieCreate) (string, error) {
	return "new-movie", nil
}

type recorder struct {
	runIDs  []string
	results []orchestrator.ItemResult
}

func (r *recorder) RecordItem(_ context.Context, runID string, result orchestrator.ItemResult) error {
	r.runIDs = append(r.runIDs, runID)
	r.results = append(r.results, result)
	return nil
}

func (r *recorder) outcomes() []orchestrator.Outcome {
	out := make([]orchestrator.Outcome, 0, len(r.results))
	for _, res := range r.results {
		out = append(out, res.Outcome)
	}
	return out
}

type fakeRegistry struct {
	updated map[string]time.Time
	calls   []string
}

func (r *fakeRegistry) SceneUpdated(_ context.Context, stashID string) (time.Time, error) {
	r.calls = append(r.calls, stashID)
	ts, ok := r.updated[stashID]
	if !ok {
		return time.Time{}, fmt.Errorf("scene %s not found", stashID)
	}
	return ts, nil
}

type sleepCounter struct {
	now   time.Time
	slept []time.Duration
}

func (c *sleepCounter) Now() time.Time { return c.now }

func (c *sleepCounter) Sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}
