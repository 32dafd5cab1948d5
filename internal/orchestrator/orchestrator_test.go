package orchestrator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/fingerprint"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/orchestrator"
	"bulkscrape/internal/ratelimit"
	"bulkscrape/internal/services"
	"bulkscrape/internal/tags"
)

const (
	urlTag      = "blk_scrape_url"
	stashBoxTag = "blk_scrape_stashbox"
	updateTag   = "blk_update_available"
	boxEndpoint = "https://stashdb.org/graphql"
)

func testSettings() orchestrator.Settings {
	return orchestrator.Settings{
		Names: tags.Names{URL: urlTag, StashBox: stashBoxTag, Prefix: "blk_scrape_"},
		Delay: 5 * time.Second,
		URLKinds: map[catalog.Kind]bool{
			catalog.KindScene: true,
			catalog.KindMovie: true,
		},
		FragmentKinds: map[catalog.Kind]bool{
			catalog.KindScene:   true,
			catalog.KindGallery: true,
		},
		StashBoxTarget:     "stashdb",
		SubmitFingerprints: true,
		Policy:             fingerprint.DefaultPolicy(),
		UpdateTag:          updateTag,
		UpdateAllowance:    time.Minute,
		ScenesPerPage:      2,
	}
}

type harness struct {
	catalog  *fakeCatalog
	clock    *sleepCounter
	recorder *recorder
	ctrl     *orchestrator.Controller
}

func newHarness(t *testing.T, cat *fakeCatalog, settings orchestrator.Settings, opts ...orchestrator.Option) *harness {
	t.Helper()
	clock := &sleepCounter{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	rec := &recorder{}
	limiter := ratelimit.New(settings.Delay, ratelimit.WithClock(clock.Now, clock.Sleep))
	opts = append([]orchestrator.Option{
		orchestrator.WithLimiter(limiter),
		orchestrator.WithRecorder(rec),
		orchestrator.WithClock(clock.Now),
	}, opts...)
	return &harness{
		catalog:  cat,
		clock:    clock,
		recorder: rec,
		ctrl:     orchestrator.New(cat, settings, logging.NewNop(), opts...),
	}
}

func sceneItem(id, url string, tagIDs ...string) catalog.Item {
	return catalog.Item{Kind: catalog.KindScene, ID: id, URL: url, TagIDs: tagIDs}
}

func titled(title string) *catalog.ScrapedScene {
	return &catalog.ScrapedScene{Title: catalog.Ptr(title)}
}

func TestURLScrapeSkipsHostWithoutScraper(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{
		sceneItem("1", "https://example.com/a"),
		sceneItem("2", "https://example.com/b"),
		sceneItem("3", "https://other.org/c"),
	}
	cat.urlResults["https://other.org/c"] = titled("Found")
	h := newHarness(t, cat, testSettings())

	summary, err := h.ctrl.RunURLScrape(context.Background())
	if err != nil {
		t.Fatalf("RunURLScrape: %v", err)
	}

	if diff := cmp.Diff([]string{"https://example.com/a", "https://other.org/c"}, cat.urlCalls); diff != "" {
		t.Fatalf("scrape calls mismatch (-want +got):\n%s", diff)
	}
	// The first call never waits and the skipped item must not wait either.
	if len(h.clock.slept) != 1 {
		t.Fatalf("expected exactly one rate limit wait, got %v", h.clock.slept)
	}
	want := []orchestrator.Outcome{orchestrator.OutcomeNoScraper, orchestrator.OutcomeSkippedHost, orchestrator.OutcomeUpdated}
	if diff := cmp.Diff(want, h.recorder.outcomes()); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
	totals := summary.Totals()
	if totals.Total != 3 || totals.Updated != 1 || totals.Skipped != 2 || totals.Failed != 0 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if summary.Mode != orchestrator.ModeURL || summary.RunID == "" {
		t.Fatalf("unexpected summary header: %+v", summary)
	}
}

func TestURLScrapeKeepsScrapingHostThatWorked(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{
		sceneItem("1", "https://example.com/a"),
		sceneItem("2", "https://example.com/b"),
		sceneItem("3", "https://example.com/c"),
	}
	cat.urlResults["https://example.com/a"] = titled("A")
	cat.urlResults["https://example.com/c"] = titled("C")
	h := newHarness(t, cat, testSettings())

	if _, err := h.ctrl.RunURLScrape(context.Background()); err != nil {
		t.Fatalf("RunURLScrape: %v", err)
	}
	if len(cat.urlCalls) != 3 {
		t.Fatalf("a host that worked once must never be skipped, calls=%v", cat.urlCalls)
	}
	if len(cat.updates) != 2 {
		t.Fatalf("expected two updates, got %d", len(cat.updates))
	}
}

func TestURLScrapeRequiresControlTag(t *testing.T) {
	cat := newFakeCatalog()
	cat.items[catalog.KindScene] = []catalog.Item{sceneItem("1", "https://example.com/a")}
	h := newHarness(t, cat, testSettings())

	_, err := h.ctrl.RunURLScrape(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if len(cat.itemQueries) != 0 || len(cat.urlCalls) != 0 {
		t.Fatalf("no items may be queried without the control tag: queries=%v calls=%v", cat.itemQueries, cat.urlCalls)
	}
}

func TestURLScrapeReplacesTagsAndRestoresControlTags(t *testing.T) {
	cat := newFakeCatalog(urlTag, stashBoxTag)
	urlID := cat.tagID(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{sceneItem("7", "https://example.com/a", "t1", urlID)}
	record := titled("Scraped")
	record.Tags = []catalog.ScrapedTag{{StoredID: catalog.Ptr("t2"), Name: "new"}}
	cat.urlResults["https://example.com/a"] = record
	h := newHarness(t, cat, testSettings())

	if _, err := h.ctrl.RunURLScrape(context.Background()); err != nil {
		t.Fatalf("RunURLScrape: %v", err)
	}
	if len(cat.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(cat.updates))
	}
	update, ok := cat.updates[0].(*catalog.SceneUpdate)
	if !ok {
		t.Fatalf("expected scene update, got %T", cat.updates[0])
	}
	if diff := cmp.Diff([]string{"t1", "t2"}, update.TagIDs); diff != "" {
		t.Fatalf("update tag set mismatch (-want +got):\n%s", diff)
	}
	if catalog.Value(update.Title) != "Scraped" {
		t.Fatalf("unexpected title %v", update.Title)
	}
	wantBulk := []bulkCall{{kind: catalog.KindScene, items: []string{"7"}, tagIDs: []string{urlID}, mode: catalog.BulkAdd}}
	if diff := cmp.Diff(wantBulk, cat.bulk, cmp.AllowUnexported(bulkCall{})); diff != "" {
		t.Fatalf("control tag restore mismatch (-want +got):\n%s", diff)
	}
}

func TestURLScrapeEmptyRecordIsNoData(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{sceneItem("1", "https://example.com/a")}
	cat.urlResults["https://example.com/a"] = &catalog.ScrapedScene{}
	h := newHarness(t, cat, testSettings())

	if _, err := h.ctrl.RunURLScrape(context.Background()); err != nil {
		t.Fatalf("RunURLScrape: %v", err)
	}
	if len(cat.updates) != 0 {
		t.Fatalf("empty record must not update, got %d updates", len(cat.updates))
	}
	if diff := cmp.Diff([]orchestrator.Outcome{orchestrator.OutcomeNoData}, h.recorder.outcomes()); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestURLScrapeMissingURLIsSkipped(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{sceneItem("1", "  ")}
	h := newHarness(t, cat, testSettings())

	if _, err := h.ctrl.RunURLScrape(context.Background()); err != nil {
		t.Fatalf("RunURLScrape: %v", err)
	}
	if len(cat.urlCalls) != 0 {
		t.Fatalf("blank url must not be scraped: %v", cat.urlCalls)
	}
	if diff := cmp.Diff([]orchestrator.Outcome{orchestrator.OutcomeMissingURL}, h.recorder.outcomes()); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestURLScrapeContinuesAfterItemFailure(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{
		sceneItem("1", "https://example.com/a"),
		sceneItem("2", "https://example.com/b"),
	}
	cat.urlResults["https://example.com/a"] = titled("A")
	cat.urlResults["https://example.com/b"] = titled("B")
	cat.updateErrs["1"] = services.Wrap(services.ErrExternal, "stash", "update", "rejected", nil)
	h := newHarness(t, cat, testSettings())

	summary, err := h.ctrl.RunURLScrape(context.Background())
	if err != nil {
		t.Fatalf("a per-item failure must not abort the run: %v", err)
	}
	totals := summary.Totals()
	if totals.Failed != 1 || totals.Updated != 1 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if h.recorder.results[0].Err == nil {
		t.Fatal("failed result must carry its error")
	}
}

func TestURLScrapeAbortsOnFatalError(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{
		sceneItem("1", "https://example.com/a"),
		sceneItem("2", "https://example.com/b"),
	}
	cat.urlErrs["https://example.com/a"] = services.Wrap(services.ErrUnauthorized, "stash", "scrape", "bad key", nil)
	h := newHarness(t, cat, testSettings())

	summary, err := h.ctrl.RunURLScrape(context.Background())
	if !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if len(cat.urlCalls) != 1 {
		t.Fatalf("run must stop after the fatal error, calls=%v", cat.urlCalls)
	}
	if len(summary.Batches) != 1 || summary.Batches[0].Failed != 1 {
		t.Fatalf("partial batch must be reported: %+v", summary.Batches)
	}
	if summary.Finished.IsZero() {
		t.Fatal("aborted run must still be finished")
	}
}

func TestURLScrapeSelectsMoviesByMissingFrontImage(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	h := newHarness(t, cat, testSettings())

	if _, err := h.ctrl.RunURLScrape(context.Background()); err != nil {
		t.Fatalf("RunURLScrape: %v", err)
	}
	want := []itemQueryCall{
		{kind: catalog.KindScene, query: catalog.ItemQuery{TagID: cat.tagID(urlTag), URLRequired: true}},
		{kind: catalog.KindMovie, query: catalog.ItemQuery{URLRequired: true, MissingFrontImage: true}},
	}
	if diff := cmp.Diff(want, cat.itemQueries, cmp.AllowUnexported(itemQueryCall{})); diff != "" {
		t.Fatalf("item queries mismatch (-want +got):\n%s", diff)
	}
}

func TestURLScrapeReusesRunIDFromContext(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.items[catalog.KindScene] = []catalog.Item{sceneItem("1", "https://example.com/a")}
	h := newHarness(t, cat, testSettings())

	ctx := services.WithRunID(context.Background(), "run-42")
	summary, err := h.ctrl.RunURLScrape(ctx)
	if err != nil {
		t.Fatalf("RunURLScrape: %v", err)
	}
	if summary.RunID != "run-42" {
		t.Fatalf("expected run id from context, got %q", summary.RunID)
	}
	if diff := cmp.Diff([]string{"run-42"}, h.recorder.runIDs); diff != "" {
		t.Fatalf("recorded run ids mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentScrapeRunsTaggedItemsPerScraper(t *testing.T) {
	cat := newFakeCatalog("blk_scrape_site_a")
	cat.scrapers[catalog.KindScene] = []catalog.Scraper{
		{ID: "site_a", Name: "Site A", Fragment: map[catalog.Kind]bool{catalog.KindScene: true}},
		{ID: "site_b", Name: "Site B", Fragment: map[catalog.Kind]bool{catalog.KindScene: true}},
	}
	cat.scrapers[catalog.KindGallery] = []catalog.Scraper{
		{ID: "site_a", Name: "Site A", Fragment: map[catalog.Kind]bool{catalog.KindGallery: true}},
	}
	tagID := cat.tagID("blk_scrape_site_a")
	cat.items[catalog.KindScene] = []catalog.Item{
		{Kind: catalog.KindScene, ID: "1", Title: "one", TagIDs: []string{tagID}},
		{Kind: catalog.KindScene, ID: "2", Title: "two", TagIDs: []string{tagID}},
	}
	cat.fragmentResults["site_a/1"] = titled("One")
	h := newHarness(t, cat, testSettings())

	summary, err := h.ctrl.RunFragmentScrape(context.Background())
	if err != nil {
		t.Fatalf("RunFragmentScrape: %v", err)
	}
	if diff := cmp.Diff([]string{"site_a/1", "site_a/2"}, cat.fragmentCalls); diff != "" {
		t.Fatalf("fragment calls mismatch (-want +got):\n%s", diff)
	}
	want := []orchestrator.Outcome{orchestrator.OutcomeUpdated, orchestrator.OutcomeNoResult}
	if diff := cmp.Diff(want, h.recorder.outcomes()); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if len(summary.Batches) != 1 || summary.Batches[0].Scraper != "site_a" || summary.Batches[0].Kind != catalog.KindScene {
		t.Fatalf("unexpected batches: %+v", summary.Batches)
	}
	wantBulk := []bulkCall{{kind: catalog.KindScene, items: []string{"1"}, tagIDs: []string{tagID}, mode: catalog.BulkAdd}}
	if diff := cmp.Diff(wantBulk, cat.bulk, cmp.AllowUnexported(bulkCall{})); diff != "" {
		t.Fatalf("control tag restore mismatch (-want +got):\n%s", diff)
	}
}

func TestFragmentScrapersMergesKinds(t *testing.T) {
	cat := newFakeCatalog()
	cat.scrapers[catalog.KindScene] = []catalog.Scraper{
		{ID: "site_a", Fragment: map[catalog.Kind]bool{catalog.KindScene: true}},
	}
	cat.scrapers[catalog.KindGallery] = []catalog.Scraper{
		{ID: "site_a", Fragment: map[catalog.Kind]bool{catalog.KindGallery: true}},
		{ID: "site_c", Fragment: map[catalog.Kind]bool{catalog.KindGallery: true}},
	}
	h := newHarness(t, cat, testSettings())

	scrapers, err := h.ctrl.FragmentScrapers(context.Background())
	if err != nil {
		t.Fatalf("FragmentScrapers: %v", err)
	}
	want := []catalog.Scraper{
		{ID: "site_a", Fragment: map[catalog.Kind]bool{catalog.KindScene: true, catalog.KindGallery: true}},
		{ID: "site_c", Fragment: map[catalog.Kind]bool{catalog.KindGallery: true}},
	}
	if diff := cmp.Diff(want, scrapers); diff != "" {
		t.Fatalf("scrapers mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAndRemoveControlTags(t *testing.T) {
	cat := newFakeCatalog(urlTag)
	cat.scrapers[catalog.KindScene] = []catalog.Scraper{
		{ID: "site_a", Fragment: map[catalog.Kind]bool{catalog.KindScene: true}},
	}
	h := newHarness(t, cat, testSettings())
	ctx := context.Background()

	created, err := h.ctrl.AddControlTags(ctx)
	if err != nil {
		t.Fatalf("AddControlTags: %v", err)
	}
	if diff := cmp.Diff([]string{stashBoxTag, "blk_scrape_site_a"}, created); diff != "" {
		t.Fatalf("created tags mismatch (-want +got):\n%s", diff)
	}
	again, err := h.ctrl.AddControlTags(ctx)
	if err != nil {
		t.Fatalf("AddControlTags again: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second create must be a no-op, got %v", again)
	}

	removed, err := h.ctrl.RemoveControlTags(ctx)
	if err != nil {
		t.Fatalf("RemoveControlTags: %v", err)
	}
	if diff := cmp.Diff([]string{urlTag, stashBoxTag, "blk_scrape_site_a"}, removed); diff != "" {
		t.Fatalf("removed tags mismatch (-want +got):\n%s", diff)
	}
	if len(cat.tags) != 0 {
		t.Fatalf("expected every control tag destroyed, left %v", cat.tags)
	}
}

func stashBoxScene() catalog.Scene {
	duration := 600.0
	return catalog.Scene{
		ID:       "12",
		Title:    "local",
		Checksum: "abc",
		File:     catalog.SceneFile{Duration: &duration},
	}
}

func candidate(remoteID, hash string, durations ...int) catalog.ScrapedScene {
	fps := make([]catalog.Fingerprint, 0, len(durations))
	for i, d := range durations {
		fp := catalog.Fingerprint{Algorithm: "PHASH", Hash: "unrelated", Duration: &d}
		if i == 0 {
			fp = catalog.Fingerprint{Algorithm: "MD5", Hash: hash, Duration: &d}
		}
		fps = append(fps, fp)
	}
	return catalog.ScrapedScene{
		Title:        catalog.Ptr("Remote " + remoteID),
		RemoteSiteID: catalog.Ptr(remoteID),
		Fingerprints: fps,
	}
}

func TestStashBoxScrapeAppliesSingleMatch(t *testing.T) {
	cat := newFakeCatalog(stashBoxTag)
	cat.boxes = []catalog.StashBox{
		{Index: 0, Endpoint: "https://pmvstash.org/graphql"},
		{Index: 1, Endpoint: boxEndpoint},
	}
	scene := stashBoxScene()
	scene.TagIDs = []string{cat.tagID(stashBoxTag)}
	cat.scenes = []catalog.Scene{scene}
	cat.candidates = []catalog.ScrapedScene{
		candidate("remote-a", "abc", 600, 601, 598, 600),
		candidate("remote-b", "zzz", 600, 600, 600, 600),
	}
	h := newHarness(t, cat, testSettings())

	summary, err := h.ctrl.RunStashBoxScrape(context.Background())
	if err != nil {
		t.Fatalf("RunStashBoxScrape: %v", err)
	}
	if len(cat.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(cat.updates))
	}
	update := cat.updates[0].(*catalog.SceneUpdate)
	wantIDs := []catalog.StashID{{Endpoint: boxEndpoint, StashID: "remote-a"}}
	if diff := cmp.Diff(wantIDs, update.StashIDs); diff != "" {
		t.Fatalf("stash ids mismatch (-want +got):\n%s", diff)
	}
	if catalog.Value(update.Title) != "Remote remote-a" {
		t.Fatalf("unexpected title %q", catalog.Value(update.Title))
	}
	if diff := cmp.Diff([][]string{{"12"}}, cat.submitted); diff != "" {
		t.Fatalf("fingerprint submission mismatch (-want +got):\n%s", diff)
	}
	if summary.FingerprintsSubmitted == nil || !*summary.FingerprintsSubmitted {
		t.Fatalf("expected successful submission in summary: %+v", summary)
	}
}

func TestStashBoxScrapeSkipsAmbiguousScene(t *testing.T) {
	cat := newFakeCatalog(stashBoxTag)
	cat.boxes = []catalog.StashBox{{Endpoint: boxEndpoint}}
	cat.scenes = []catalog.Scene{stashBoxScene()}
	cat.candidates = []catalog.ScrapedScene{
		candidate("remote-a", "abc", 600, 600, 600),
		candidate("remote-b", "abc", 600, 600, 600),
	}
	h := newHarness(t, cat, testSettings())

	summary, err := h.ctrl.RunStashBoxScrape(context.Background())
	if err != nil {
		t.Fatalf("RunStashBoxScrape: %v", err)
	}
	if len(cat.updates) != 0 {
		t.Fatalf("ambiguous scene must not be updated, got %d updates", len(cat.updates))
	}
	if len(cat.submitted) != 0 || summary.FingerprintsSubmitted != nil {
		t.Fatal("nothing matched, nothing may be submitted")
	}
	if diff := cmp.Diff([]orchestrator.Outcome{orchestrator.OutcomeAmbiguous}, h.recorder.outcomes()); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
}

func TestStashBoxScrapeRequiresConfiguredBox(t *testing.T) {
	cat := newFakeCatalog(stashBoxTag)
	cat.boxes = []catalog.StashBox{{Endpoint: "https://pmvstash.org/graphql"}}
	h := newHarness(t, cat, testSettings())

	_, err := h.ctrl.RunStashBoxScrape(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func linkedScene(id string, updated time.Time, remoteIDs ...string) catalog.Scene {
	scene := catalog.Scene{ID: id, Title: "scene " + id, UpdatedAt: updated}
	for _, remote := range remoteIDs {
		scene.StashIDs = append(scene.StashIDs, catalog.StashID{Endpoint: boxEndpoint, StashID: remote})
	}
	return scene
}

func TestFindUpdatesTagsScenesWithNewerRemote(t *testing.T) {
	local := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := newFakeCatalog()
	cat.boxes = []catalog.StashBox{{Endpoint: boxEndpoint}}
	cat.pages = []catalog.ScenePage{
		{Count: 3, Scenes: []catalog.Scene{
			linkedScene("1", local, "r1"),
			linkedScene("2", local, "r2"),
		}},
		{Count: 3, Scenes: []catalog.Scene{
			linkedScene("3", local, "r3a", "r3b"),
		}},
	}
	registry := &fakeRegistry{updated: map[string]time.Time{
		"r1": local.Add(time.Hour),
		"r2": local.Add(10 * time.Second),
	}}
	h := newHarness(t, cat, testSettings(), orchestrator.WithRegistry(func(catalog.StashBox) orchestrator.Registry {
		return registry
	}))

	summary, err := h.ctrl.FindUpdates(context.Background())
	if err != nil {
		t.Fatalf("FindUpdates: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, cat.pageCalls); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}
	tagID := cat.tagID(updateTag)
	if tagID == "" {
		t.Fatal("update tag must be created when missing")
	}
	wantBulk := []bulkCall{{kind: catalog.KindScene, items: []string{"1"}, tagIDs: []string{tagID}, mode: catalog.BulkAdd}}
	if diff := cmp.Diff(wantBulk, cat.bulk, cmp.AllowUnexported(bulkCall{})); diff != "" {
		t.Fatalf("tagging mismatch (-want +got):\n%s", diff)
	}
	want := []orchestrator.Outcome{orchestrator.OutcomeUpdated, orchestrator.OutcomeUpToDate, orchestrator.OutcomeAmbiguous}
	if diff := cmp.Diff(want, h.recorder.outcomes()); diff != "" {
		t.Fatalf("outcomes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"r1", "r2"}, registry.calls); diff != "" {
		t.Fatalf("registry calls mismatch (-want +got):\n%s", diff)
	}
	if summary.Totals().Updated != 1 {
		t.Fatalf("unexpected totals: %+v", summary.Totals())
	}
}

func TestFindUpdatesHonorsMaxPages(t *testing.T) {
	cat := newFakeCatalog(updateTag)
	cat.boxes = []catalog.StashBox{{Endpoint: boxEndpoint}}
	cat.pages = []catalog.ScenePage{{Count: 10}, {Count: 10}, {Count: 10}}
	settings := testSettings()
	settings.MaxPages = 2
	h := newHarness(t, cat, settings, orchestrator.WithRegistry(func(catalog.StashBox) orchestrator.Registry {
		return &fakeRegistry{}
	}))

	if _, err := h.ctrl.FindUpdates(context.Background()); err != nil {
		t.Fatalf("FindUpdates: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, cat.pageCalls); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestFindUpdatesRequiresRegistry(t *testing.T) {
	cat := newFakeCatalog()
	cat.boxes = []catalog.StashBox{{Endpoint: boxEndpoint}}
	h := newHarness(t, cat, testSettings())

	_, err := h.ctrl.FindUpdates(context.Background())
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestIdentifyTaggedStartsJobAndRemovesTag(t *testing.T) {
	cat := newFakeCatalog(updateTag)
	cat.boxes = []catalog.StashBox{{Endpoint: boxEndpoint}}
	tagID := cat.tagID(updateTag)
	cat.items[catalog.KindScene] = []catalog.Item{
		sceneItem("4", "", tagID),
		sceneItem("5", "", tagID),
	}
	h := newHarness(t, cat, testSettings())

	summary, err := h.ctrl.IdentifyTagged(context.Background())
	if err != nil {
		t.Fatalf("IdentifyTagged: %v", err)
	}
	if summary.JobID != "job-1" {
		t.Fatalf("expected job id, got %q", summary.JobID)
	}
	if diff := cmp.Diff([]string{"4", "5"}, cat.identified); diff != "" {
		t.Fatalf("identified scenes mismatch (-want +got):\n%s", diff)
	}
	wantBulk := []bulkCall{{kind: catalog.KindScene, items: []string{"4", "5"}, tagIDs: []string{tagID}, mode: catalog.BulkRemove}}
	if diff := cmp.Diff(wantBulk, cat.bulk, cmp.AllowUnexported(bulkCall{})); diff != "" {
		t.Fatalf("tag removal mismatch (-want +got):\n%s", diff)
	}
	if summary.Totals().Updated != 2 {
		t.Fatalf("unexpected totals: %+v", summary.Totals())
	}
}

func TestIdentifyTaggedWithoutTagIsNoop(t *testing.T) {
	cat := newFakeCatalog()
	cat.boxes = []catalog.StashBox{{Endpoint: boxEndpoint}}
	h := newHarness(t, cat, testSettings())

	if _, err := h.ctrl.IdentifyTagged(context.Background()); err != nil {
		t.Fatalf("IdentifyTagged: %v", err)
	}
	if len(cat.identified) != 0 || len(cat.bulk) != 0 {
		t.Fatal("no identify may run without the update tag")
	}
}
