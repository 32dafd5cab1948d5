package mapper

import (
	"context"
	"fmt"
	"log/slog"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
	"bulkscrape/internal/textutil"
)

// Resolver resolves sub-entity mentions. An empty id means unresolved.
type Resolver interface {
	Tag(ctx context.Context, tag catalog.ScrapedTag) (string, error)
	Performer(ctx context.Context, performer catalog.ScrapedPerformer) (string, error)
	Studio(ctx context.Context, studio catalog.ScrapedStudio) (string, error)
	Movie(ctx context.Context, movie catalog.ScrapedMovie) (string, error)
}

// Options tunes field handling.
type Options struct {
	StripHTMLDetails bool
}

// Mapper builds update payloads from scraped records.
type Mapper struct {
	resolver Resolver
	opts     Options
	logger   *slog.Logger
}

// New constructs a Mapper.
func New(resolver Resolver, opts Options, logger *slog.Logger) *Mapper {
	return &Mapper{
		resolver: resolver,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "mapper"),
	}
}

// Map builds the update for item from record. The record kind must match the
// item kind. Errors are either fatal transport errors from the resolver or
// validation errors for mismatched input.
func (m *Mapper) Map(ctx context.Context, item catalog.Item, record catalog.ScrapedRecord) (catalog.Update, error) {
	if record == nil {
		return nil, services.Wrap(services.ErrValidation, "mapper", "map", "nil record", nil)
	}
	if record.Kind() != item.Kind {
		return nil, services.Wrap(services.ErrValidation, "mapper", "map",
			fmt.Sprintf("%s record for %s %s", record.Kind(), item.Kind, item.ID), nil)
	}
	logger := logging.WithContext(ctx, m.logger).With(
		logging.String(logging.FieldKind, item.Kind.String()),
		logging.String(logging.FieldItemID, item.ID),
	)
	fm := fieldMapper{Mapper: m, ctx: ctx, logger: logger}

	switch rec := record.(type) {
	case *catalog.ScrapedScene:
		return fm.scene(item, rec)
	case *catalog.ScrapedGallery:
		return fm.gallery(item, rec)
	case *catalog.ScrapedPerformer:
		return fm.performer(item, rec)
	case *catalog.ScrapedMovie:
		return fm.movie(item, rec)
	case *catalog.ScrapedStudio:
		return fm.studio(item, rec), nil
	case *catalog.ScrapedTag:
		return &catalog.TagUpdate{ID: item.ID, Name: catalog.CopyString(&rec.Name)}, nil
	default:
		return nil, services.Wrap(services.ErrValidation, "mapper", "map", fmt.Sprintf("unsupported record %T", record), nil)
	}
}

// fieldMapper carries per-call state for one Map invocation.
type fieldMapper struct {
	*Mapper
	ctx    context.Context
	logger *slog.Logger
}

func (f fieldMapper) scene(item catalog.Item, rec *catalog.ScrapedScene) (catalog.Update, error) {
	update := &catalog.SceneUpdate{
		ID:         item.ID,
		Title:      catalog.CopyString(rec.Title),
		Details:    f.details(rec.Details),
		URL:        catalog.CopyString(rec.URL),
		Date:       catalog.CopyString(rec.Date),
		CoverImage: embeddedImage(rec.Image),
	}
	var err error
	if update.StudioID, err = f.studioID(rec.Studio); err != nil {
		return nil, err
	}
	if update.TagIDs, err = f.tagIDs(rec.Tags); err != nil {
		return nil, err
	}
	if update.PerformerIDs, err = f.performerIDs(rec.Performers); err != nil {
		return nil, err
	}
	for _, movie := range rec.Movies {
		id, err := f.resolve("movie", catalog.Value(movie.Name), func() (string, error) {
			return f.resolver.Movie(f.ctx, movie)
		})
		if err != nil {
			return nil, err
		}
		if id != "" {
			update.Movies = append(update.Movies, catalog.SceneMovie{MovieID: id})
		}
	}
	if len(rec.StashIDs) > 0 {
		update.StashIDs = catalog.MergeStashIDs(item.StashIDs, rec.StashIDs)
	}
	return update, nil
}

func (f fieldMapper) gallery(item catalog.Item, rec *catalog.ScrapedGallery) (catalog.Update, error) {
	update := &catalog.GalleryUpdate{
		ID:      item.ID,
		Title:   catalog.CopyString(rec.Title),
		Details: f.details(rec.Details),
		URL:     catalog.CopyString(rec.URL),
		Date:    catalog.CopyString(rec.Date),
	}
	var err error
	if update.StudioID, err = f.studioID(rec.Studio); err != nil {
		return nil, err
	}
	if update.TagIDs, err = f.tagIDs(rec.Tags); err != nil {
		return nil, err
	}
	if update.PerformerIDs, err = f.performerIDs(rec.Performers); err != nil {
		return nil, err
	}
	return update, nil
}

func (f fieldMapper) performer(item catalog.Item, rec *catalog.ScrapedPerformer) (catalog.Update, error) {
	update := &catalog.PerformerUpdate{
		ID:           item.ID,
		Name:         catalog.CopyString(rec.Name),
		URL:          catalog.CopyString(rec.URL),
		Birthdate:    catalog.CopyString(rec.Birthdate),
		Ethnicity:    catalog.CopyString(rec.Ethnicity),
		Country:      catalog.CopyString(rec.Country),
		EyeColor:     catalog.CopyString(rec.EyeColor),
		Height:       catalog.CopyString(rec.Height),
		Measurements: catalog.CopyString(rec.Measurements),
		FakeTits:     catalog.CopyString(rec.FakeTits),
		CareerLength: catalog.CopyString(rec.CareerLength),
		Tattoos:      catalog.CopyString(rec.Tattoos),
		Piercings:    catalog.CopyString(rec.Piercings),
		Aliases:      catalog.CopyString(rec.Aliases),
		Twitter:      catalog.CopyString(rec.Twitter),
		Instagram:    catalog.CopyString(rec.Instagram),
		Details:      f.details(rec.Details),
		DeathDate:    catalog.CopyString(rec.DeathDate),
		HairColor:    catalog.CopyString(rec.HairColor),
	}
	if catalog.Present(rec.Gender) {
		if gender, ok := NormalizeGender(catalog.Value(rec.Gender)); ok {
			update.Gender = &gender
		} else {
			logging.WarnWithContext(f.logger, "cannot map performer gender", "field_dropped",
				logging.String("field", "gender"),
				logging.String("value", catalog.Value(rec.Gender)),
				logging.String(logging.FieldImpact, "gender left unchanged"),
			)
		}
	}
	if catalog.Present(rec.Weight) {
		if weight, err := ParseWeight(catalog.Value(rec.Weight)); err == nil {
			update.Weight = &weight
		} else {
			logging.WarnWithContext(f.logger, "cannot parse performer weight", "field_dropped",
				logging.String("field", "weight"),
				logging.String("value", catalog.Value(rec.Weight)),
				logging.String(logging.FieldImpact, "weight left unchanged"),
			)
		}
	}
	if len(rec.Images) > 0 {
		update.Image = embeddedImage(&rec.Images[0])
	}
	if update.Image == nil {
		update.Image = embeddedImage(rec.Image)
	}
	var err error
	if update.TagIDs, err = f.tagIDs(rec.Tags); err != nil {
		return nil, err
	}
	if len(rec.StashIDs) > 0 {
		update.StashIDs = catalog.MergeStashIDs(item.StashIDs, rec.StashIDs)
	}
	return update, nil
}

func (f fieldMapper) movie(item catalog.Item, rec *catalog.ScrapedMovie) (catalog.Update, error) {
	update := &catalog.MovieUpdate{
		ID:         item.ID,
		Name:       catalog.CopyString(rec.Name),
		Aliases:    catalog.CopyString(rec.Aliases),
		Date:       catalog.CopyString(rec.Date),
		Director:   catalog.CopyString(rec.Director),
		Synopsis:   catalog.CopyString(rec.Synopsis),
		URL:        catalog.CopyString(rec.URL),
		FrontImage: embeddedImage(rec.FrontImage),
		BackImage:  embeddedImage(rec.BackImage),
	}
	if catalog.Present(rec.Duration) {
		if seconds, err := ParseDuration(catalog.Value(rec.Duration)); err == nil {
			update.Duration = &seconds
		} else {
			logging.WarnWithContext(f.logger, "cannot parse movie duration", "field_dropped",
				logging.String("field", "duration"),
				logging.String("value", catalog.Value(rec.Duration)),
				logging.Error(err),
				logging.String(logging.FieldImpact, "duration left unchanged"),
			)
		}
	}
	var err error
	if update.StudioID, err = f.studioID(rec.Studio); err != nil {
		return nil, err
	}
	return update, nil
}

func (f fieldMapper) studio(item catalog.Item, rec *catalog.ScrapedStudio) catalog.Update {
	return &catalog.StudioUpdate{
		ID:    item.ID,
		Name:  catalog.CopyString(&rec.Name),
		URL:   catalog.CopyString(rec.URL),
		Image: embeddedImage(rec.Image),
	}
}

func (f fieldMapper) details(value *string) *string {
	out := catalog.CopyString(value)
	if out == nil || !f.opts.StripHTMLDetails {
		return out
	}
	stripped := textutil.StripHTML(*out)
	if stripped == "" {
		return nil
	}
	return &stripped
}

func (f fieldMapper) studioID(studio *catalog.ScrapedStudio) (*string, error) {
	if studio.Empty() {
		return nil, nil
	}
	id, err := f.resolve("studio", studio.Name, func() (string, error) {
		return f.resolver.Studio(f.ctx, *studio)
	})
	if err != nil || id == "" {
		return nil, err
	}
	return &id, nil
}

func (f fieldMapper) tagIDs(tags []catalog.ScrapedTag) ([]string, error) {
	var ids []string
	for _, tag := range tags {
		id, err := f.resolve("tag", tag.Name, func() (string, error) {
			return f.resolver.Tag(f.ctx, tag)
		})
		if err != nil {
			return nil, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f fieldMapper) performerIDs(performers []catalog.ScrapedPerformer) ([]string, error) {
	var ids []string
	for _, performer := range performers {
		id, err := f.resolve("performer", catalog.Value(performer.Name), func() (string, error) {
			return f.resolver.Performer(f.ctx, performer)
		})
		if err != nil {
			return nil, err
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// resolve runs one resolver call. Fatal errors propagate; anything else
// omits the element with a warning.
func (f fieldMapper) resolve(kind, name string, call func() (string, error)) (string, error) {
	id, err := call()
	if err == nil {
		return id, nil
	}
	if services.IsFatal(err) {
		return "", err
	}
	logging.WarnWithContext(f.logger, "could not resolve "+kind, "resolve_failed",
		logging.String("name", name),
		logging.Error(err),
		logging.String(logging.FieldImpact, kind+" omitted from update"),
	)
	return "", nil
}
