package orchestrator

import (
	"context"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/logging"
)

var fragmentKindOrder = []catalog.Kind{catalog.KindScene, catalog.KindGallery, catalog.KindPerformer}

// FragmentScrapers lists the scrapers that can fragment scrape at least one
// enabled kind, merged by scraper id in first-seen order.
func (c *Controller) FragmentScrapers(ctx context.Context) ([]catalog.Scraper, error) {
	var out []catalog.Scraper
	index := make(map[string]int)
	for _, kind := range fragmentKindOrder {
		if !c.settings.FragmentKinds[kind] {
			continue
		}
		scrapers, err := c.catalog.ListScrapers(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, s := range scrapers {
			if !s.SupportsFragment(kind) {
				continue
			}
			i, ok := index[s.ID]
			if !ok {
				index[s.ID] = len(out)
				out = append(out, catalog.Scraper{ID: s.ID, Name: s.Name, Fragment: map[catalog.Kind]bool{}})
				i = len(out) - 1
			}
			out[i].Fragment[kind] = true
		}
	}
	return out, nil
}

// ControlTagNames returns the url tag, the stash-box tag and one fragment tag
// per fragment scraper.
func (c *Controller) ControlTagNames(ctx context.Context) ([]string, error) {
	scrapers, err := c.FragmentScrapers(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(scrapers))
	for _, s := range scrapers {
		ids = append(ids, s.ID)
	}
	return c.settings.Names.All(ids), nil
}

// AddControlTags creates every missing control tag and returns the names it
// created.
func (c *Controller) AddControlTags(ctx context.Context) ([]string, error) {
	logger := logging.WithContext(ctx, c.logger)
	names, err := c.ControlTagNames(ctx)
	if err != nil {
		return nil, err
	}
	var created []string
	for _, name := range names {
		tag, err := c.catalog.FindTag(ctx, name)
		if err != nil {
			return created, err
		}
		if tag != nil {
			logger.Debug("control tag exists", logging.String("tag", name))
			continue
		}
		if _, err := c.catalog.CreateTag(ctx, name); err != nil {
			return created, err
		}
		logger.Info("control tag created", logging.String("tag", name))
		created = append(created, name)
	}
	return created, nil
}

// RemoveControlTags destroys every existing control tag and returns the names
// it removed.
func (c *Controller) RemoveControlTags(ctx context.Context) ([]string, error) {
	logger := logging.WithContext(ctx, c.logger)
	names, err := c.ControlTagNames(ctx)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, name := range names {
		tag, err := c.catalog.FindTag(ctx, name)
		if err != nil {
			return removed, err
		}
		if tag == nil {
			logger.Debug("control tag absent, nothing to remove", logging.String("tag", name))
			continue
		}
		if err := c.catalog.DestroyTag(ctx, tag.ID); err != nil {
			return removed, err
		}
		logger.Info("control tag destroyed", logging.String("tag", name))
		removed = append(removed, name)
	}
	return removed, nil
}

// controlTagIDs returns the ids of the control tags in names that exist.
func (c *Controller) controlTagIDs(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		tag, err := c.catalog.FindTag(ctx, name)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			ids = append(ids, tag.ID)
		}
	}
	return ids, nil
}

// allControlTagIDs resolves every control tag id, the set stripped from
// scraped items before the field update.
func (c *Controller) allControlTagIDs(ctx context.Context) ([]string, error) {
	names, err := c.ControlTagNames(ctx)
	if err != nil {
		return nil, err
	}
	return c.controlTagIDs(ctx, names)
}
