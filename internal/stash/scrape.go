package stash

import (
	"context"
	"fmt"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/services"
)

const scrapeTypeFragment = "FRAGMENT"

// ListScrapers returns the scrapers that can fragment scrape kind.
func (c *Client) ListScrapers(ctx context.Context, kind catalog.Kind) ([]catalog.Scraper, error) {
	var resp struct {
		Scene     []wireScraper `json:"listSceneScrapers"`
		Gallery   []wireScraper `json:"listGalleryScrapers"`
		Performer []wireScraper `json:"listPerformerScrapers"`
	}
	var (
		listed  *[]wireScraper
		support func(wireScraper) *wireSupport
		op      string
		query   string
	)
	switch kind {
	case catalog.KindScene:
		listed, op, query = &resp.Scene, "listSceneScrapers", listSceneScrapersQuery
		support = func(s wireScraper) *wireSupport { return s.Scene }
	case catalog.KindGallery:
		listed, op, query = &resp.Gallery, "listGalleryScrapers", listGalleryScrapersQuery
		support = func(s wireScraper) *wireSupport { return s.Gallery }
	case catalog.KindPerformer:
		listed, op, query = &resp.Performer, "listPerformerScrapers", listPerformerScrapersQuery
		support = func(s wireScraper) *wireSupport { return s.Performer }
	default:
		return nil, services.Wrap(services.ErrValidation, component, "listScrapers", fmt.Sprintf("no fragment scrapers for %s", kind.Plural()), nil)
	}
	if err := c.do(ctx, op, query, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]catalog.Scraper, 0, len(*listed))
	for _, s := range *listed {
		if !support(s).supports(scrapeTypeFragment) {
			continue
		}
		out = append(out, catalog.Scraper{
			ID:       s.ID,
			Name:     s.Name,
			Fragment: map[catalog.Kind]bool{kind: true},
		})
	}
	return out, nil
}

// ScrapeURL asks the catalog to scrape rawURL as kind. A nil record with a
// nil error means no scraper produced a result.
func (c *Client) ScrapeURL(ctx context.Context, kind catalog.Kind, rawURL string) (catalog.ScrapedRecord, error) {
	vars := map[string]any{"url": rawURL}
	switch kind {
	case catalog.KindScene:
		var resp struct {
			Result *catalog.ScrapedScene `json:"scrapeSceneURL"`
		}
		if err := c.do(ctx, "scrapeSceneURL", scrapeSceneURLQuery, vars, &resp); err != nil {
			return nil, err
		}
		return record(resp.Result), nil
	case catalog.KindGallery:
		var resp struct {
			Result *catalog.ScrapedGallery `json:"scrapeGalleryURL"`
		}
		if err := c.do(ctx, "scrapeGalleryURL", scrapeGalleryURLQuery, vars, &resp); err != nil {
			return nil, err
		}
		return record(resp.Result), nil
	case catalog.KindPerformer:
		var resp struct {
			Result *catalog.ScrapedPerformer `json:"scrapePerformerURL"`
		}
		if err := c.do(ctx, "scrapePerformerURL", scrapePerformerURLQuery, vars, &resp); err != nil {
			return nil, err
		}
		return record(resp.Result), nil
	case catalog.KindMovie:
		var resp struct {
			Result *catalog.ScrapedMovie `json:"scrapeMovieURL"`
		}
		if err := c.do(ctx, "scrapeMovieURL", scrapeMovieURLQuery, vars, &resp); err != nil {
			return nil, err
		}
		return record(resp.Result), nil
	default:
		return nil, services.Wrap(services.ErrValidation, component, "scrapeURL", fmt.Sprintf("cannot url scrape %s", kind.Plural()), nil)
	}
}

// ScrapeFragment runs scraperID with item as the query seed. A nil record
// with a nil error means the scraper returned nothing.
func (c *Client) ScrapeFragment(ctx context.Context, scraperID string, item catalog.Item) (catalog.ScrapedRecord, error) {
	switch item.Kind {
	case catalog.KindScene:
		var resp struct {
			Result []catalog.ScrapedScene `json:"scrapeSingleScene"`
		}
		vars := map[string]any{
			"source": map[string]any{"scraper_id": scraperID},
			"input": map[string]any{
				"scene_id": item.ID,
				"scene_input": map[string]any{
					"title":   nullable(item.Title),
					"details": nullable(item.Details),
					"url":     nullable(item.URL),
					"date":    nullable(item.Date),
				},
			},
		}
		if err := c.do(ctx, "scrapeSingleScene", scrapeSingleSceneQuery, vars, &resp); err != nil {
			return nil, err
		}
		if len(resp.Result) == 0 {
			return nil, nil
		}
		return &resp.Result[0], nil
	case catalog.KindGallery:
		var resp struct {
			Result *catalog.ScrapedGallery `json:"scrapeGallery"`
		}
		vars := map[string]any{
			"scraper_id": scraperID,
			"gallery": map[string]any{
				"id":      item.ID,
				"title":   nullable(item.Title),
				"url":     nullable(item.URL),
				"date":    nullable(item.Date),
				"details": nullable(item.Details),
			},
		}
		if err := c.do(ctx, "scrapeGallery", scrapeGalleryQuery, vars, &resp); err != nil {
			return nil, err
		}
		return record(resp.Result), nil
	case catalog.KindPerformer:
		var resp struct {
			Result *catalog.ScrapedPerformer `json:"scrapePerformer"`
		}
		vars := map[string]any{
			"scraper_id": scraperID,
			"performer": map[string]any{
				"name": nullable(item.Name),
				"url":  nullable(item.URL),
			},
		}
		if err := c.do(ctx, "scrapePerformer", scrapePerformerQuery, vars, &resp); err != nil {
			return nil, err
		}
		return record(resp.Result), nil
	default:
		return nil, services.Wrap(services.ErrValidation, component, "scrapeFragment", fmt.Sprintf("cannot fragment scrape %s", item.Kind.Plural()), nil)
	}
}

// record converts a typed nil pointer into a nil interface.
func record[T any, P interface {
	*T
	catalog.ScrapedRecord
}](result P) catalog.ScrapedRecord {
	if result == nil {
		return nil
	}
	return result
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
