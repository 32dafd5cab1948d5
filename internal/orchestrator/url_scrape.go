package orchestrator

import (
	"context"
	"strings"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
)

// RunURLScrape scrapes every enabled kind whose items carry the url control
// tag and a URL. Movies are selected by a missing front image instead, since
// they carry no tags.
func (c *Controller) RunURLScrape(ctx context.Context) (RunSummary, error) {
	ctx, summary := c.begin(ctx, ModeURL)
	logger := logging.WithContext(ctx, c.logger)
	logger.Info("url scrape started", logging.Duration("delay", c.limiter.Interval()))

	tag, err := c.requireTag(ctx, c.settings.Names.URL, ModeURL)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	control, err := c.allControlTagIDs(ctx)
	if err != nil {
		return c.end(ctx, summary, err)
	}

	for _, kind := range catalog.ScrapeKinds {
		if !c.settings.URLKinds[kind] {
			continue
		}
		query := catalog.ItemQuery{TagID: tag.ID, URLRequired: true}
		if kind == catalog.KindMovie {
			query = catalog.ItemQuery{URLRequired: true, MissingFrontImage: true}
		}
		items, err := c.catalog.FindItems(ctx, kind, query)
		if err != nil {
			return c.end(ctx, summary, err)
		}
		logger.Info("items selected", logging.String(logging.FieldKind, kind.String()), logging.Int("count", len(items)))

		batch, err := c.urlBatch(ctx, kind, items, control)
		summary.Batches = append(summary.Batches, batch)
		c.logBatch(ctx, batch)
		if err != nil {
			return c.end(ctx, summary, err)
		}
	}
	return c.end(ctx, summary, nil)
}

// urlBatch scrapes one kind. Domain health lives for the batch, since a host
// may have a scraper for one kind but not another.
func (c *Controller) urlBatch(ctx context.Context, kind catalog.Kind, items []catalog.Item, control []string) (BatchSummary, error) {
	batch := BatchSummary{Kind: kind}
	health := NewDomainHealth()
	for _, item := range items {
		result := c.scrapeURLItem(ctx, item, health, control)
		if err := c.finish(ctx, &batch, result); err != nil {
			return batch, err
		}
	}
	if missing := health.Missing(); len(missing) > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "hosts without a url scraper", "missing_scrapers",
			logging.String(logging.FieldKind, kind.String()),
			logging.String("hosts", strings.Join(missing, ", ")),
			logging.String(logging.FieldImpact, "items on these hosts were not scraped"),
			logging.String(logging.FieldErrorHint, "install a scraper for the host"),
		)
	}
	return batch, nil
}

func (c *Controller) scrapeURLItem(ctx context.Context, item catalog.Item, health *DomainHealth, control []string) ItemResult {
	ctx = services.WithItemID(ctx, item.ID)
	result := ItemResult{Mode: ModeURL, Kind: item.Kind, ItemID: item.ID, Label: item.Label()}
	if strings.TrimSpace(item.URL) == "" {
		result.Outcome = OutcomeMissingURL
		return result
	}
	host := item.Host()
	result.Host = host
	if health.ShouldSkip(host) {
		result.Outcome = OutcomeSkippedHost
		return result
	}

	if err := c.wait(ctx); err != nil {
		return failed(result, err)
	}
	record, err := c.catalog.ScrapeURL(ctx, item.Kind, item.URL)
	if err != nil {
		return failed(result, err)
	}
	if record == nil {
		health.MarkMissing(host)
		result.Outcome = OutcomeNoScraper
		return result
	}
	health.MarkWorking(host)
	if record.Empty() {
		result.Outcome = OutcomeNoData
		return result
	}
	if err := c.apply(ctx, item, record, control); err != nil {
		return failed(result, err)
	}
	result.Outcome = OutcomeUpdated
	return result
}
