package orchestrator

import (
	"context"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
)

// RunFragmentScrape runs every fragment scraper over the items carrying its
// prefix+scraper_id control tag. A missing tag skips that scraper.
func (c *Controller) RunFragmentScrape(ctx context.Context) (RunSummary, error) {
	ctx, summary := c.begin(ctx, ModeFragment)
	logger := logging.WithContext(ctx, c.logger)

	scrapers, err := c.FragmentScrapers(ctx)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	ids := make([]string, 0, len(scrapers))
	for _, s := range scrapers {
		ids = append(ids, s.ID)
	}
	control, err := c.controlTagIDs(ctx, c.settings.Names.All(ids))
	if err != nil {
		return c.end(ctx, summary, err)
	}
	logger.Info("fragment scrape started", logging.Int("scrapers", len(scrapers)))

	for _, scraper := range scrapers {
		name := c.settings.Names.FragmentTag(scraper.ID)
		tag, err := c.catalog.FindTag(ctx, name)
		if err != nil {
			return c.end(ctx, summary, err)
		}
		if tag == nil {
			logging.WarnWithContext(logger, "fragment control tag missing", "control_tag_missing",
				logging.String(logging.FieldScraper, scraper.ID),
				logging.String("tag", name),
				logging.String(logging.FieldImpact, "scraper skipped"),
				logging.String(logging.FieldErrorHint, "run `bulkscrape tags create`"),
			)
			continue
		}
		for _, kind := range fragmentKindOrder {
			if !scraper.SupportsFragment(kind) {
				continue
			}
			items, err := c.catalog.FindItems(ctx, kind, catalog.ItemQuery{TagID: tag.ID})
			if err != nil {
				return c.end(ctx, summary, err)
			}
			if len(items) == 0 {
				continue
			}
			batch, err := c.fragmentBatch(ctx, scraper.ID, kind, items, control)
			summary.Batches = append(summary.Batches, batch)
			c.logBatch(ctx, batch)
			if err != nil {
				return c.end(ctx, summary, err)
			}
		}
	}
	return c.end(ctx, summary, nil)
}

func (c *Controller) fragmentBatch(ctx context.Context, scraperID string, kind catalog.Kind, items []catalog.Item, control []string) (BatchSummary, error) {
	batch := BatchSummary{Kind: kind, Scraper: scraperID}
	for _, item := range items {
		result := c.scrapeFragmentItem(ctx, scraperID, item, control)
		if err := c.finish(ctx, &batch, result); err != nil {
			return batch, err
		}
	}
	return batch, nil
}

func (c *Controller) scrapeFragmentItem(ctx context.Context, scraperID string, item catalog.Item, control []string) ItemResult {
	ctx = services.WithItemID(ctx, item.ID)
	result := ItemResult{Mode: ModeFragment, Kind: item.Kind, ItemID: item.ID, Label: item.Label(), Scraper: scraperID}
	if err := c.wait(ctx); err != nil {
		return failed(result, err)
	}
	record, err := c.catalog.ScrapeFragment(ctx, scraperID, item)
	if err != nil {
		return failed(result, err)
	}
	if record == nil {
		result.Outcome = OutcomeNoResult
		return result
	}
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
