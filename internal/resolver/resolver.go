package resolver

import (
	"context"
	"log/slog"
	"strings"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
)

// Catalog is the subset of the catalog client the resolver needs.
type Catalog interface {
	FindPerformers(ctx context.Context, query string) ([]catalog.Performer, error)
	FindStudios(ctx context.Context, query string) ([]catalog.Studio, error)
	FindStudiosByURL(ctx context.Context, fragment string) ([]catalog.Studio, error)
	FindMovies(ctx context.Context, query string) ([]catalog.Movie, error)
	CreatePerformer(ctx context.Context, input catalog.PerformerCreate) (string, error)
	CreateStudio(ctx context.Context, input catalog.StudioCreate) (string, error)
	CreateMovie(ctx context.Context, input catalog.MovieCreate) (string, error)
	CreateTag(ctx context.Context, name string) (string, error)
}

// Options selects which entity kinds may be created when no match exists.
type Options struct {
	CreateMissingPerformers bool
	CreateMissingStudios    bool
	CreateMissingMovies     bool
	CreateMissingTags       bool
}

// Resolver resolves scraped mentions to catalog ids. An empty id with a nil
// error means the mention was left unresolved.
type Resolver struct {
	catalog Catalog
	opts    Options
	logger  *slog.Logger
}

// New constructs a Resolver.
func New(c Catalog, opts Options, logger *slog.Logger) *Resolver {
	return &Resolver{
		catalog: c,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "resolver"),
	}
}

// Tag resolves a tag from its stored id, or creates it when enabled.
func (r *Resolver) Tag(ctx context.Context, tag catalog.ScrapedTag) (string, error) {
	if catalog.Present(tag.StoredID) {
		return catalog.Value(tag.StoredID), nil
	}
	name := strings.TrimSpace(tag.Name)
	if name == "" || !r.opts.CreateMissingTags {
		return "", nil
	}
	id, err := r.catalog.CreateTag(ctx, name)
	if err != nil {
		return "", services.Wrap(services.ErrExternal, "resolver", "create tag", name, err)
	}
	r.logger.Info("created missing tag", logging.String("tag", name), logging.String("tag_id", id))
	return id, nil
}

// Performer resolves a performer mention by stored id, name, or alias.
func (r *Resolver) Performer(ctx context.Context, performer catalog.ScrapedPerformer) (string, error) {
	if catalog.Present(performer.StoredID) {
		return catalog.Value(performer.StoredID), nil
	}
	name := NormalizeName(catalog.Value(performer.Name))
	if name == "" {
		return "", nil
	}

	found, err := r.catalog.FindPerformers(ctx, name)
	if err != nil {
		return "", services.Wrap(services.ErrExternal, "resolver", "find performers", name, err)
	}
	var matches idSet
	for _, candidate := range found {
		if matchesName(name, candidate.Name) {
			matches.add(candidate.ID)
			continue
		}
		for _, alias := range SplitAliases(candidate.Aliases) {
			if matchesName(name, performerAlias(alias)) {
				r.logger.Debug("performer matched by alias",
					logging.String("performer", name),
					logging.String("alias", alias),
					logging.String("performer_id", candidate.ID),
				)
				matches.add(candidate.ID)
				break
			}
		}
	}
	if id, decided := r.pick("performer", name, matches); decided {
		return id, nil
	}

	if !r.opts.CreateMissingPerformers {
		return "", nil
	}
	input := catalog.PerformerCreate{
		Name:     name,
		URL:      catalog.CopyString(performer.URL),
		StashIDs: performer.StashIDs,
	}
	if gender, ok := catalog.ParseGender(catalog.Value(performer.Gender)); ok {
		input.Gender = &gender
	}
	id, err := r.catalog.CreatePerformer(ctx, input)
	if err != nil {
		return "", services.Wrap(services.ErrExternal, "resolver", "create performer", name, err)
	}
	r.logger.Info("created missing performer", logging.String("performer", name), logging.String("performer_id", id))
	return id, nil
}

// Studio resolves a studio mention. Names that look like a site domain are
// also matched against studio URLs.
func (r *Resolver) Studio(ctx context.Context, studio catalog.ScrapedStudio) (string, error) {
	if catalog.Present(studio.StoredID) {
		return catalog.Value(studio.StoredID), nil
	}
	raw := strings.TrimSpace(studio.Name)
	name := NormalizeName(raw)
	if name == "" {
		return "", nil
	}

	var matches idSet
	if looksLikeDomain(raw) {
		byURL, err := r.catalog.FindStudiosByURL(ctx, raw)
		if err != nil {
			return "", services.Wrap(services.ErrExternal, "resolver", "find studios by url", raw, err)
		}
		for _, candidate := range byURL {
			if strings.Contains(strings.ToLower(candidate.URL), strings.ToLower(raw)) {
				matches.add(candidate.ID)
			}
		}
	}

	found, err := r.catalog.FindStudios(ctx, name)
	if err != nil {
		return "", services.Wrap(services.ErrExternal, "resolver", "find studios", name, err)
	}
	for _, candidate := range found {
		if matchesName(name, candidate.Name) {
			matches.add(candidate.ID)
			continue
		}
		for _, alias := range candidate.Aliases {
			if matchesName(name, alias) {
				matches.add(candidate.ID)
				break
			}
		}
	}
	if id, decided := r.pick("studio", name, matches); decided {
		return id, nil
	}

	if !r.opts.CreateMissingStudios {
		return "", nil
	}
	input := catalog.StudioCreate{Name: name}
	if root := siteRoot(catalog.Value(studio.URL)); root != "" {
		input.URL = &root
	}
	id, err := r.catalog.CreateStudio(ctx, input)
	if err != nil {
		return "", services.Wrap(services.ErrExternal, "resolver", "create studio", name, err)
	}
	r.logger.Info("created missing studio", logging.String("studio", name), logging.String("studio_id", id))
	return id, nil
}

// Movie resolves a movie mention. Several matches always leave the movie
// unresolved, whatever the shape of the name.
func (r *Resolver) Movie(ctx context.Context, movie catalog.ScrapedMovie) (string, error) {
	if catalog.Present(movie.StoredID) {
		return catalog.Value(movie.StoredID), nil
	}
	name := NormalizeName(catalog.Value(movie.Name))
	if name == "" {
		return "", nil
	}

	found, err := r.catalog.FindMovies(ctx, name)
	if err != nil {
		return "", services.Wrap(services.ErrExternal, "resolver", "find movies", name, err)
	}
	var matches idSet
	for _, candidate := range found {
		if matchesName(name, candidate.Name) {
			matches.add(candidate.ID)
			continue
		}
		for _, alias := range SplitAliases(candidate.Aliases) {
			if matchesName(name, alias) {
				matches.add(candidate.ID)
				break
			}
		}
	}
	switch len(matches.ids) {
	case 0:
	case 1:
		return matches.ids[0], nil
	default:
		logging.WarnWithContext(r.logger, "too many matches for movie", "movie_ambiguous",
			logging.String("movie", name),
			logging.Int("matches", len(matches.ids)),
			logging.String(logging.FieldImpact, "movie link skipped"),
		)
		return "", nil
	}

	if !r.opts.CreateMissingMovies {
		return "", nil
	}
	id, err := r.catalog.CreateMovie(ctx, catalog.MovieCreate{Name: name, URL: catalog.CopyString(movie.URL)})
	if err != nil {
		return "", services.Wrap(services.ErrExternal, "resolver", "create movie", name, err)
	}
	r.logger.Info("created missing movie", logging.String("movie", name), logging.String("movie_id", id))
	return id, nil
}

// pick applies the tie-break rule. decided is false when nothing matched and
// creation may still apply.
func (r *Resolver) pick(kind, name string, matches idSet) (string, bool) {
	switch n := len(matches.ids); {
	case n == 0:
		return "", false
	case n == 1:
		return matches.ids[0], true
	case singleToken(name):
		r.logger.Info("ambiguous single-word name left unresolved",
			logging.String(logging.FieldKind, kind),
			logging.String("name", name),
			logging.Int("matches", n),
		)
		return "", true
	default:
		r.logger.Debug("several matches, using the first",
			logging.String(logging.FieldKind, kind),
			logging.String("name", name),
			logging.Int("matches", n),
		)
		return matches.ids[0], true
	}
}

// idSet keeps ids in first-seen order without duplicates.
type idSet struct {
	ids  []string
	seen map[string]struct{}
}

func (s *idSet) add(id string) {
	if id == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}
