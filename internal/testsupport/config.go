package testsupport

import (
	"path/filepath"
	"testing"

	"bulkscrape/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The scrape delay is zero so tests never sleep.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Stash.URL = "http://127.0.0.1:9999/graphql"
	cfgVal.Scrape.Delay = 0
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithStashURL points the catalog client at url, typically an httptest server.
func WithStashURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Stash.URL = url
	}
}

// WithStashBoxTarget overrides the registry endpoint match string.
func WithStashBoxTarget(target string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.StashBox.Target = target
	}
}

// WithNtfyTopic enables notifications against topic.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
