package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Stash contains the connection settings for the catalog GraphQL API.
type Stash struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	SessionCookie  string `toml:"session_cookie"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// URLKinds selects which item kinds the URL scrape mode visits.
type URLKinds struct {
	Scenes     bool `toml:"scenes"`
	Galleries  bool `toml:"galleries"`
	Performers bool `toml:"performers"`
	Movies     bool `toml:"movies"`
}

// FragmentKinds selects which item kinds the fragment scrape mode visits.
type FragmentKinds struct {
	Scenes     bool `toml:"scenes"`
	Galleries  bool `toml:"galleries"`
	Performers bool `toml:"performers"`
}

// Scrape contains the settings shared by the URL and fragment scrape modes.
type Scrape struct {
	// DelayRaw accepts a number or a numeric string; see Delay.
	DelayRaw                any           `toml:"delay"`
	URLControlTag           string        `toml:"url_control_tag"`
	StashBoxControlTag      string        `toml:"stashbox_control_tag"`
	FragmentPrefix          string        `toml:"fragment_prefix"`
	CreateMissingPerformers bool          `toml:"create_missing_performers"`
	CreateMissingTags       bool          `toml:"create_missing_tags"`
	CreateMissingStudios    bool          `toml:"create_missing_studios"`
	CreateMissingMovies     bool          `toml:"create_missing_movies"`
	StripHTMLDetails        bool          `toml:"strip_html_details"`
	URL                     URLKinds      `toml:"url"`
	Fragment                FragmentKinds `toml:"fragment"`

	// Delay is the parsed minimum interval between scraper calls.
	Delay time.Duration `toml:"-"`
}

// StashBox contains the registry matching and update detection settings.
type StashBox struct {
	Target                   string  `toml:"target"`
	SubmitFingerprints       bool    `toml:"submit_fingerprints"`
	DurationToleranceSeconds float64 `toml:"duration_tolerance_seconds"`
	DurationMajority         float64 `toml:"duration_majority"`
	MinFingerprints          int     `toml:"min_fingerprints"`
	UpdateAvailableTag       string  `toml:"update_available_tag"`
	UpdateAllowanceSeconds   int     `toml:"update_allowance_seconds"`
	ScenesPerPage            int     `toml:"scenes_per_page"`
	MaxPages                 int     `toml:"max_pages"`
}

// Paths contains local state directories.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	RunCompleted   bool   `toml:"run_completed"`
	Errors         bool   `toml:"errors"`
}

// Config encapsulates all configuration values for bulkscrape.
//
// Configuration sections by subsystem:
//   - Stash: catalog GraphQL endpoint and credentials
//   - Scrape: control tags, delay, create-missing switches, per-kind toggles
//   - StashBox: fingerprint matching thresholds and update detection
//   - Paths: journal database, run lock, and log locations
//   - Logging: log format and level
//   - Notifications: ntfy push notification settings
type Config struct {
	Stash         Stash         `toml:"stash"`
	Scrape        Scrape        `toml:"scrape"`
	StashBox      StashBox      `toml:"stashbox"`
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`

	// Warnings lists recoverable problems found while normalizing, such as an
	// unparsable delay that fell back to its default.
	Warnings []string `toml:"-"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("bulkscrape.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// JournalPath returns the run journal database location.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// LockPath returns the single-run lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "bulkscrape.lock")
}

// RequestTimeout returns the catalog HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Stash.TimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
