package orchestrator

import (
	"context"
	"fmt"
	"time"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
)

const defaultScenesPerPage = 60

// FindUpdates pages through scenes linked to the target registry and tags
// those whose remote record changed after the local one.
func (c *Controller) FindUpdates(ctx context.Context) (RunSummary, error) {
	ctx, summary := c.begin(ctx, ModeFindUpdates)
	logger := logging.WithContext(ctx, c.logger)

	box, err := c.targetStashBox(ctx, ModeFindUpdates)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	if c.registry == nil {
		return c.end(ctx, summary, services.Wrap(services.ErrConfiguration, component, ModeFindUpdates, "no registry client configured", nil))
	}
	registry := c.registry(box)
	tagID, err := c.ensureTag(ctx, c.settings.UpdateTag)
	if err != nil {
		return c.end(ctx, summary, err)
	}

	perPage := c.settings.ScenesPerPage
	if perPage <= 0 {
		perPage = defaultScenesPerPage
	}
	batch := BatchSummary{Kind: catalog.KindScene}
	for page, pages := 1, 1; page <= pages; page++ {
		result, err := c.catalog.FindScenesWithStashIDs(ctx, page, perPage)
		if err != nil {
			summary.Batches = append(summary.Batches, batch)
			return c.end(ctx, summary, err)
		}
		if page == 1 {
			pages = (result.Count + perPage - 1) / perPage
			if c.settings.MaxPages > 0 && pages > c.settings.MaxPages {
				pages = c.settings.MaxPages
			}
			logger.Info("checking scenes for registry updates",
				logging.String("stashbox", box.Endpoint),
				logging.Int("scenes", result.Count),
				logging.Int("pages", pages),
			)
		}
		for _, scene := range result.Scenes {
			item := c.checkScene(ctx, registry, box, scene, tagID)
			if err := c.finish(ctx, &batch, item); err != nil {
				summary.Batches = append(summary.Batches, batch)
				return c.end(ctx, summary, err)
			}
		}
	}
	summary.Batches = append(summary.Batches, batch)
	logger.Info(fmt.Sprintf("%d of %d scenes have registry updates", batch.Updated, batch.Total))
	return c.end(ctx, summary, nil)
}

func (c *Controller) checkScene(ctx context.Context, registry Registry, box catalog.StashBox, scene catalog.Scene, tagID string) ItemResult {
	ctx = services.WithItemID(ctx, scene.ID)
	result := ItemResult{Mode: ModeFindUpdates, Kind: catalog.KindScene, ItemID: scene.ID, Label: scene.Item().Label()}

	var remoteIDs []string
	for _, id := range scene.StashIDs {
		if id.Endpoint == box.Endpoint {
			remoteIDs = append(remoteIDs, id.StashID)
		}
	}
	switch len(remoteIDs) {
	case 0:
		result.Outcome = OutcomeNoMatch
		result.Detail = "not linked to " + box.Endpoint
		return result
	case 1:
	default:
		result.Outcome = OutcomeAmbiguous
		result.Detail = fmt.Sprintf("%d stash ids for %s", len(remoteIDs), box.Endpoint)
		return result
	}

	remoteUpdated, err := registry.SceneUpdated(ctx, remoteIDs[0])
	if err != nil {
		return failed(result, err)
	}
	delta := remoteUpdated.Sub(scene.UpdatedAt)
	if delta < c.settings.UpdateAllowance {
		result.Outcome = OutcomeUpToDate
		return result
	}
	if err := c.catalog.BulkUpdateTags(ctx, catalog.KindScene, []string{scene.ID}, []string{tagID}, catalog.BulkAdd); err != nil {
		return failed(result, err)
	}
	result.Outcome = OutcomeUpdated
	result.Detail = fmt.Sprintf("registry newer by %s", delta.Round(time.Second))
	return result
}

// IdentifyTagged starts the catalog identify task for every scene carrying
// the update tag, then removes the tag from those scenes.
func (c *Controller) IdentifyTagged(ctx context.Context) (RunSummary, error) {
	ctx, summary := c.begin(ctx, ModeIdentify)
	logger := logging.WithContext(ctx, c.logger)

	box, err := c.targetStashBox(ctx, ModeIdentify)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	tag, err := c.catalog.FindTag(ctx, c.settings.UpdateTag)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	if tag == nil {
		logger.Info("update tag absent, nothing to identify", logging.String("tag", c.settings.UpdateTag))
		return c.end(ctx, summary, nil)
	}
	items, err := c.catalog.FindItems(ctx, catalog.KindScene, catalog.ItemQuery{TagID: tag.ID})
	if err != nil {
		return c.end(ctx, summary, err)
	}
	if len(items) == 0 {
		logger.Info("no scenes tagged for identify", logging.String("tag", tag.Name))
		return c.end(ctx, summary, nil)
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	jobID, err := c.catalog.Identify(ctx, box.Endpoint, ids)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	summary.JobID = jobID
	logger.Info("identify task started", logging.String("job_id", jobID), logging.Int("scenes", len(ids)))

	if err := c.catalog.BulkUpdateTags(ctx, catalog.KindScene, ids, []string{tag.ID}, catalog.BulkRemove); err != nil {
		return c.end(ctx, summary, err)
	}
	batch := BatchSummary{Kind: catalog.KindScene}
	for _, id := range ids {
		batch.Add(ItemResult{Mode: ModeIdentify, Kind: catalog.KindScene, ItemID: id, Outcome: OutcomeUpdated})
	}
	summary.Batches = append(summary.Batches, batch)
	return c.end(ctx, summary, nil)
}

// ensureTag returns the id of the named tag, creating it when missing.
func (c *Controller) ensureTag(ctx context.Context, name string) (string, error) {
	tag, err := c.catalog.FindTag(ctx, name)
	if err != nil {
		return "", err
	}
	if tag != nil {
		return tag.ID, nil
	}
	id, err := c.catalog.CreateTag(ctx, name)
	if err != nil {
		return "", err
	}
	logging.WithContext(ctx, c.logger).Info("tag created", logging.String("tag", name))
	return id, nil
}
