package config

import "time"

const (
	defaultConfigPath              = "~/.config/bulkscrape/config.toml"
	defaultStashURL                = "http://localhost:9999/graphql"
	defaultStashTimeoutSeconds     = 30
	defaultDelay                   = 5 * time.Second
	defaultURLControlTag           = "blk_scrape_url"
	defaultStashBoxControlTag      = "blk_scrape_stashbox"
	defaultFragmentPrefix          = "blk_scrape_"
	defaultStashBoxTarget          = "stashdb.org"
	defaultDurationTolerance       = 10.0
	defaultDurationMajority        = 0.8
	defaultMinFingerprints         = 3
	defaultUpdateAvailableTag      = "blk_stashbox_update"
	defaultUpdateAllowanceSeconds  = 30
	defaultScenesPerPage           = 60
	defaultStateDir                = "~/.local/share/bulkscrape"
	defaultLogDir                  = "~/.local/share/bulkscrape/logs"
	defaultLogFormat               = "console"
	defaultLogLevel                = "info"
	defaultNotifyRequestTimeoutSec = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Stash: Stash{
			TimeoutSeconds: defaultStashTimeoutSeconds,
		},
		Scrape: Scrape{
			Delay:              defaultDelay,
			URLControlTag:      defaultURLControlTag,
			StashBoxControlTag: defaultStashBoxControlTag,
			FragmentPrefix:     defaultFragmentPrefix,
			URL: URLKinds{
				Scenes:    true,
				Galleries: true,
				Movies:    true,
			},
			Fragment: FragmentKinds{
				Scenes:    true,
				Galleries: true,
			},
		},
		StashBox: StashBox{
			Target:                   defaultStashBoxTarget,
			DurationToleranceSeconds: defaultDurationTolerance,
			DurationMajority:         defaultDurationMajority,
			MinFingerprints:          defaultMinFingerprints,
			UpdateAvailableTag:       defaultUpdateAvailableTag,
			UpdateAllowanceSeconds:   defaultUpdateAllowanceSeconds,
			ScenesPerPage:            defaultScenesPerPage,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeoutSec,
			RunCompleted:   true,
			Errors:         true,
		},
	}
}
