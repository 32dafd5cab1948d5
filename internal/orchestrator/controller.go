package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/mapper"
	"bulkscrape/internal/ratelimit"
	"bulkscrape/internal/resolver"
	"bulkscrape/internal/services"
	"bulkscrape/internal/tags"
)

const component = "orchestrator"

// Controller runs the scrape modes against one catalog.
type Controller struct {
	catalog  Catalog
	settings Settings
	limiter  *ratelimit.Limiter
	mapper   *mapper.Mapper
	registry RegistryFactory
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures optional Controller behavior.
type Option func(*Controller)

// WithLimiter replaces the limiter built from Settings.Delay.
func WithLimiter(limiter *ratelimit.Limiter) Option {
	return func(c *Controller) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

// WithRegistry sets the factory used to reach a stash-box directly.
func WithRegistry(factory RegistryFactory) Option {
	return func(c *Controller) { c.registry = factory }
}

// WithRecorder persists every item result.
func WithRecorder(recorder Recorder) Option {
	return func(c *Controller) { c.recorder = recorder }
}

// WithClock overrides the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a controller. The entity resolver and field mapper are wired
// from settings against cat.
func New(cat Catalog, settings Settings, logger *slog.Logger, opts ...Option) *Controller {
	logger = logging.NewComponentLogger(logger, component)
	res := resolver.New(cat, settings.Resolver, logger)
	c := &Controller{
		catalog:  cat,
		settings: settings,
		limiter:  ratelimit.New(settings.Delay),
		mapper:   mapper.New(res, settings.Mapper, logger),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// begin stamps the run context with mode and run id.
func (c *Controller) begin(ctx context.Context, mode string) (context.Context, *RunSummary) {
	runID, ok := services.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = services.WithRunID(ctx, runID)
	}
	ctx = services.WithMode(ctx, mode)
	return ctx, &RunSummary{RunID: runID, Mode: mode, Started: c.now()}
}

func (c *Controller) end(ctx context.Context, summary *RunSummary, err error) (RunSummary, error) {
	summary.Finished = c.now()
	totals := summary.Totals()
	attrs := []logging.Attr{
		logging.Int("total", totals.Total),
		logging.Int("updated", totals.Updated),
		logging.Int("skipped", totals.Skipped),
		logging.Int("failed", totals.Failed),
		logging.Duration("elapsed", summary.Elapsed()),
	}
	logger := logging.WithContext(ctx, c.logger)
	if err != nil {
		attrs = append(attrs, logging.Error(err), logging.String(logging.FieldEventType, "run_aborted"))
		logger.Error("run aborted", logging.Args(attrs...)...)
		return *summary, err
	}
	logger.Info("run finished", logging.Args(attrs...)...)
	return *summary, nil
}

// apply maps record onto item and persists it: the destructive field update
// carries the merged tag set, then the stripped control tags are re-added.
func (c *Controller) apply(ctx context.Context, item catalog.Item, record catalog.ScrapedRecord, controlIDs []string) error {
	update, err := c.mapper.Map(ctx, item, record)
	if err != nil {
		return err
	}
	taggable, hasTags := update.(catalog.Taggable)
	if hasTags {
		taggable.SetTagSet(tags.Merge(item.TagIDs, taggable.TagSet(), controlIDs))
	}
	if err := c.catalog.Update(ctx, update); err != nil {
		return err
	}
	if !hasTags {
		return nil
	}
	return tags.ApplyAdditive(ctx, c.catalog, item.Kind, item.ID, tags.Stripped(item.TagIDs, controlIDs))
}

// finish logs and records one result and folds it into batch. It returns the
// item error when it must end the run.
func (c *Controller) finish(ctx context.Context, batch *BatchSummary, result ItemResult) error {
	batch.Add(result)
	logger := logging.WithContext(services.WithItemID(ctx, result.ItemID), c.logger)
	attrs := []logging.Attr{
		logging.String(logging.FieldKind, result.Kind.String()),
		logging.String(logging.FieldOutcome, string(result.Outcome)),
	}
	if result.Host != "" {
		attrs = append(attrs, logging.String(logging.FieldHost, result.Host))
	}
	if result.Scraper != "" {
		attrs = append(attrs, logging.String(logging.FieldScraper, result.Scraper))
	}
	if result.Detail != "" {
		attrs = append(attrs, logging.String("detail", result.Detail))
	}
	switch result.Outcome {
	case OutcomeUpdated:
		logger.Info("item updated", logging.Args(attrs...)...)
	case OutcomeFailed:
		attrs = append(attrs, logging.Error(result.Err))
		logging.ErrorWithContext(logger, "item failed", "item_failed", attrs...)
	case OutcomeAmbiguous:
		logging.WarnWithContext(logger, "item skipped", "item_ambiguous",
			append(attrs, logging.String(logging.FieldImpact, "item left unchanged"))...)
	default:
		logger.Info("item skipped", logging.Args(attrs...)...)
	}

	if c.recorder != nil {
		runID, _ := services.RunIDFromContext(ctx)
		if err := c.recorder.RecordItem(ctx, runID, result); err != nil {
			logging.WarnWithContext(logger, "failed to record item result", "journal_write_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "run history incomplete"),
				logging.String(logging.FieldErrorHint, "check state_dir permissions"),
			)
		}
	}
	if result.Err != nil && services.IsFatal(result.Err) {
		return result.Err
	}
	return nil
}

func (c *Controller) logBatch(ctx context.Context, batch BatchSummary) {
	attrs := []logging.Attr{
		logging.String(logging.FieldKind, batch.Kind.String()),
		logging.Int("total", batch.Total),
		logging.Int("updated", batch.Updated),
		logging.Int("skipped", batch.Skipped),
		logging.Int("failed", batch.Failed),
	}
	if batch.Scraper != "" {
		attrs = append(attrs, logging.String(logging.FieldScraper, batch.Scraper))
	}
	logging.WithContext(ctx, c.logger).Info(fmt.Sprintf("scraped %d of %d %s", batch.Updated, batch.Total, batch.Kind.Plural()), logging.Args(attrs...)...)
}

// wait blocks on the shared limiter before an outbound scraper call.
func (c *Controller) wait(ctx context.Context) error {
	slept, err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}
	if slept > 0 {
		logging.WithContext(ctx, c.logger).Debug("rate limit wait", logging.Duration("slept", slept))
	}
	return nil
}

// requireTag resolves a control tag that a mode cannot run without.
func (c *Controller) requireTag(ctx context.Context, name, mode string) (*catalog.Tag, error) {
	tag, err := c.catalog.FindTag(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, services.Wrap(services.ErrConfiguration, component, mode,
			fmt.Sprintf("control tag %q does not exist; run `bulkscrape tags create`", name), nil)
	}
	return tag, nil
}

// targetStashBox returns the configured registry whose endpoint contains the
// target string.
func (c *Controller) targetStashBox(ctx context.Context, mode string) (catalog.StashBox, error) {
	boxes, err := c.catalog.StashBoxes(ctx)
	if err != nil {
		return catalog.StashBox{}, err
	}
	target := strings.TrimSpace(c.settings.StashBoxTarget)
	for _, box := range boxes {
		if target != "" && strings.Contains(box.Endpoint, target) {
			return box, nil
		}
	}
	return catalog.StashBox{}, services.Wrap(services.ErrConfiguration, component, mode,
		fmt.Sprintf("no stash-box configured for %q", target), nil)
}

func failed(result ItemResult, err error) ItemResult {
	result.Outcome = OutcomeFailed
	result.Err = err
	return result
}
