package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStash()
	c.normalizeScrape()
	c.normalizeStashBox()
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStash() {
	c.Stash.URL = strings.TrimSpace(c.Stash.URL)
	if c.Stash.URL == "" {
		if value, ok := os.LookupEnv("STASH_URL"); ok && strings.TrimSpace(value) != "" {
			c.Stash.URL = strings.TrimSpace(value)
		} else {
			c.Stash.URL = defaultStashURL
		}
	}
	if c.Stash.APIKey == "" {
		if value, ok := os.LookupEnv("STASH_API_KEY"); ok {
			c.Stash.APIKey = strings.TrimSpace(value)
		}
	}
	if c.Stash.TimeoutSeconds <= 0 {
		c.Stash.TimeoutSeconds = defaultStashTimeoutSeconds
	}
}

func (c *Config) normalizeScrape() {
	delay, err := parseDelay(c.Scrape.DelayRaw)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("scrape.delay: %v; using %.1f seconds", err, defaultDelay.Seconds()))
		delay = defaultDelay
	}
	c.Scrape.Delay = delay
	c.Scrape.URLControlTag = strings.TrimSpace(c.Scrape.URLControlTag)
	if c.Scrape.URLControlTag == "" {
		c.Scrape.URLControlTag = defaultURLControlTag
	}
	c.Scrape.StashBoxControlTag = strings.TrimSpace(c.Scrape.StashBoxControlTag)
	if c.Scrape.StashBoxControlTag == "" {
		c.Scrape.StashBoxControlTag = defaultStashBoxControlTag
	}
	c.Scrape.FragmentPrefix = strings.TrimSpace(c.Scrape.FragmentPrefix)
	if c.Scrape.FragmentPrefix == "" {
		c.Scrape.FragmentPrefix = defaultFragmentPrefix
	}
}

// parseDelay accepts TOML numbers and numeric strings expressed in seconds.
func parseDelay(raw any) (time.Duration, error) {
	var seconds float64
	switch value := raw.(type) {
	case nil:
		return defaultDelay, nil
	case int64:
		seconds = float64(value)
	case int:
		seconds = float64(value)
	case float64:
		seconds = value
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", value)
		}
		seconds = parsed
	default:
		return 0, fmt.Errorf("unsupported value %v", raw)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, fmt.Errorf("%v is not a non-negative number", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func (c *Config) normalizeStashBox() {
	c.StashBox.Target = strings.TrimSpace(c.StashBox.Target)
	if c.StashBox.Target == "" {
		c.StashBox.Target = defaultStashBoxTarget
	}
	if c.StashBox.DurationToleranceSeconds <= 0 {
		c.StashBox.DurationToleranceSeconds = defaultDurationTolerance
	}
	if c.StashBox.DurationMajority <= 0 {
		c.StashBox.DurationMajority = defaultDurationMajority
	}
	if c.StashBox.MinFingerprints <= 0 {
		c.StashBox.MinFingerprints = defaultMinFingerprints
	}
	c.StashBox.UpdateAvailableTag = strings.TrimSpace(c.StashBox.UpdateAvailableTag)
	if c.StashBox.UpdateAvailableTag == "" {
		c.StashBox.UpdateAvailableTag = defaultUpdateAvailableTag
	}
	if c.StashBox.UpdateAllowanceSeconds < 0 {
		c.StashBox.UpdateAllowanceSeconds = defaultUpdateAllowanceSeconds
	}
	if c.StashBox.ScenesPerPage <= 0 {
		c.StashBox.ScenesPerPage = defaultScenesPerPage
	}
	if c.StashBox.MaxPages < 0 {
		c.StashBox.MaxPages = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeoutSec
	}
}
