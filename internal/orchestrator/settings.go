package orchestrator

import (
	"time"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/config"
	"bulkscrape/internal/fingerprint"
	"bulkscrape/internal/mapper"
	"bulkscrape/internal/resolver"
	"bulkscrape/internal/tags"
)

// Settings holds everything the controller reads from configuration.
type Settings struct {
	Names         tags.Names
	Delay         time.Duration
	URLKinds      map[catalog.Kind]bool
	FragmentKinds map[catalog.Kind]bool
	Resolver      resolver.Options
	Mapper        mapper.Options

	StashBoxTarget     string
	SubmitFingerprints bool
	Policy             fingerprint.Policy

	UpdateTag       string
	UpdateAllowance time.Duration
	ScenesPerPage   int
	// MaxPages bounds update detection; zero means every page.
	MaxPages int
}

// SettingsFromConfig derives controller settings from a loaded config.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Names: tags.Names{
			URL:      cfg.Scrape.URLControlTag,
			StashBox: cfg.Scrape.StashBoxControlTag,
			Prefix:   cfg.Scrape.FragmentPrefix,
		},
		Delay: cfg.Scrape.Delay,
		URLKinds: map[catalog.Kind]bool{
			catalog.KindScene:     cfg.Scrape.URL.Scenes,
			catalog.KindGallery:   cfg.Scrape.URL.Galleries,
			catalog.KindPerformer: cfg.Scrape.URL.Performers,
			catalog.KindMovie:     cfg.Scrape.URL.Movies,
		},
		FragmentKinds: map[catalog.Kind]bool{
			catalog.KindScene:     cfg.Scrape.Fragment.Scenes,
			catalog.KindGallery:   cfg.Scrape.Fragment.Galleries,
			catalog.KindPerformer: cfg.Scrape.Fragment.Performers,
		},
		Resolver: resolver.Options{
			CreateMissingPerformers: cfg.Scrape.CreateMissingPerformers,
			CreateMissingStudios:    cfg.Scrape.CreateMissingStudios,
			CreateMissingMovies:     cfg.Scrape.CreateMissingMovies,
			CreateMissingTags:       cfg.Scrape.CreateMissingTags,
		},
		Mapper: mapper.Options{StripHTMLDetails: cfg.Scrape.StripHTMLDetails},

		StashBoxTarget:     cfg.StashBox.Target,
		SubmitFingerprints: cfg.StashBox.SubmitFingerprints,
		Policy: fingerprint.Policy{
			DurationToleranceSeconds: cfg.StashBox.DurationToleranceSeconds,
			DurationMajority:         cfg.StashBox.DurationMajority,
			MinFingerprints:          cfg.StashBox.MinFingerprints,
		},

		UpdateTag:       cfg.StashBox.UpdateAvailableTag,
		UpdateAllowance: time.Duration(cfg.StashBox.UpdateAllowanceSeconds) * time.Second,
		ScenesPerPage:   cfg.StashBox.ScenesPerPage,
		MaxPages:        cfg.StashBox.MaxPages,
	}
}
