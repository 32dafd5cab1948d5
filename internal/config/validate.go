package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStash(); err != nil {
		return err
	}
	if err := c.validateScrape(); err != nil {
		return err
	}
	if err := c.validateStashBox(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStash() error {
	parsed, err := url.Parse(c.Stash.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("stash.url %q must be an absolute http(s) URL", c.Stash.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("stash.url scheme %q is not supported", parsed.Scheme)
	}
	return nil
}

func (c *Config) validateScrape() error {
	if c.Scrape.URLControlTag == c.Scrape.StashBoxControlTag {
		return errors.New("scrape.url_control_tag and scrape.stashbox_control_tag must differ")
	}
	if c.Scrape.URLControlTag == c.Scrape.FragmentPrefix {
		return errors.New("scrape.fragment_prefix must not equal scrape.url_control_tag")
	}
	return nil
}

func (c *Config) validateStashBox() error {
	if c.StashBox.DurationMajority > 1 {
		return errors.New("stashbox.duration_majority must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
