package orchestrator

import (
	"context"
	"fmt"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/fingerprint"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
)

// RunStashBoxScrape matches every scene carrying the stash-box control tag
// against the target registry by fingerprint and applies single matches.
func (c *Controller) RunStashBoxScrape(ctx context.Context) (RunSummary, error) {
	ctx, summary := c.begin(ctx, ModeStashBox)
	logger := logging.WithContext(ctx, c.logger)

	box, err := c.targetStashBox(ctx, ModeStashBox)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	tag, err := c.requireTag(ctx, c.settings.Names.StashBox, ModeStashBox)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	control, err := c.allControlTagIDs(ctx)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	scenes, err := c.catalog.FindScenes(ctx, tag.ID)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	logger.Info("stash-box scrape started",
		logging.String("stashbox", box.Endpoint),
		logging.Int("scenes", len(scenes)),
	)
	if len(scenes) == 0 {
		return c.end(ctx, summary, nil)
	}

	sceneIDs := make([]string, 0, len(scenes))
	for _, s := range scenes {
		sceneIDs = append(sceneIDs, s.ID)
	}
	if err := c.wait(ctx); err != nil {
		return c.end(ctx, summary, err)
	}
	candidates, err := c.catalog.QueryStashBoxScenes(ctx, box.Index, sceneIDs)
	if err != nil {
		return c.end(ctx, summary, err)
	}
	logger.Info("stash-box candidates received", logging.Int("candidates", len(candidates)))

	batch := BatchSummary{Kind: catalog.KindScene}
	for _, scene := range scenes {
		result := c.matchScene(ctx, box, scene, candidates, control)
		if err := c.finish(ctx, &batch, result); err != nil {
			summary.Batches = append(summary.Batches, batch)
			return c.end(ctx, summary, err)
		}
	}
	summary.Batches = append(summary.Batches, batch)
	c.logBatch(ctx, batch)

	if c.settings.SubmitFingerprints && len(batch.UpdatedIDs) > 0 {
		submitted, err := c.catalog.SubmitFingerprints(ctx, box.Index, batch.UpdatedIDs)
		switch {
		case err != nil && services.IsFatal(err):
			return c.end(ctx, summary, err)
		case err != nil:
			logging.WarnWithContext(logger, "fingerprint submission failed", "fingerprint_submit_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "registry not told about matched scenes"),
			)
		default:
			logger.Info("fingerprints submitted", logging.Bool("success", submitted), logging.Int("scenes", len(batch.UpdatedIDs)))
		}
		summary.FingerprintsSubmitted = &submitted
	}
	return c.end(ctx, summary, nil)
}

func (c *Controller) matchScene(ctx context.Context, box catalog.StashBox, scene catalog.Scene, candidates []catalog.ScrapedScene, control []string) ItemResult {
	ctx = services.WithItemID(ctx, scene.ID)
	item := scene.Item()
	result := ItemResult{Mode: ModeStashBox, Kind: catalog.KindScene, ItemID: scene.ID, Label: item.Label()}

	match := fingerprint.Match(scene, candidates, c.settings.Policy)
	switch match.Verdict {
	case fingerprint.NoMatch:
		result.Outcome = OutcomeNoMatch
		return result
	case fingerprint.Ambiguous:
		result.Outcome = OutcomeAmbiguous
		result.Detail = fmt.Sprintf("%d candidates accepted", len(match.Accepted))
		return result
	}
	best, _ := match.Best()
	result.Detail = fmt.Sprintf("hash %s, duration %d/%d", best.HashLabel, best.DurationAgreement, best.Total)

	linked := fingerprint.Link(candidates[best.Index], box.Endpoint)
	if err := c.apply(ctx, item, &linked, control); err != nil {
		return failed(result, err)
	}
	result.Outcome = OutcomeUpdated
	return result
}
