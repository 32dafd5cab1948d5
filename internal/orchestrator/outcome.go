package orchestrator

import (
	"time"

	"bulkscrape/internal/catalog"
)

// Scrape modes, also used as the mode field of log lines and journal rows.
const (
	ModeURL         = "url"
	ModeFragment    = "fragment"
	ModeStashBox    = "stashbox"
	ModeFindUpdates = "find-updates"
	ModeIdentify    = "identify"
)

// Outcome is the terminal state of one item in a batch.
type Outcome string

const (
	OutcomeUpdated Outcome = "updated"
	// OutcomeNoData means the scraper answered but every field was empty.
	OutcomeNoData Outcome = "no_data"
	// OutcomeNoScraper means no scraper handled the item URL.
	OutcomeNoScraper Outcome = "no_scraper"
	// OutcomeNoResult means a fragment scraper returned nothing.
	OutcomeNoResult    Outcome = "no_result"
	OutcomeSkippedHost Outcome = "skipped_host"
	OutcomeMissingURL  Outcome = "missing_url"
	OutcomeNoMatch     Outcome = "no_match"
	OutcomeAmbiguous   Outcome = "ambiguous"
	OutcomeUpToDate    Outcome = "up_to_date"
	OutcomeFailed      Outcome = "failed"
)

// ItemResult describes how one item ended.
type ItemResult struct {
	Mode    string
	Kind    catalog.Kind
	ItemID  string
	Label   string
	Host    string
	Scraper string
	Outcome Outcome
	Detail  string
	Err     error
}

// Message returns the error text or the detail, for persistence.
func (r ItemResult) Message() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Detail
}

// BatchSummary counts the outcomes of one item kind (and scraper) in a run.
type BatchSummary struct {
	Kind       catalog.Kind
	Scraper    string
	Total      int
	Updated    int
	Skipped    int
	Failed     int
	UpdatedIDs []string
}

// Add folds one result into the counters.
func (b *BatchSummary) Add(result ItemResult) {
	b.Total++
	switch result.Outcome {
	case OutcomeUpdated:
		b.Updated++
		b.UpdatedIDs = append(b.UpdatedIDs, result.ItemID)
	case OutcomeFailed:
		b.Failed++
	default:
		b.Skipped++
	}
}

// RunSummary is the result of one scrape mode invocation.
type RunSummary struct {
	RunID    string
	Mode     string
	Started  time.Time
	Finished time.Time
	Batches  []BatchSummary

	// FingerprintsSubmitted is set by stash-box mode when a submission ran.
	FingerprintsSubmitted *bool
	// JobID is the catalog job started by identify mode.
	JobID string
}

// Totals sums every batch.
func (s RunSummary) Totals() BatchSummary {
	var total BatchSummary
	for _, b := range s.Batches {
		total.Total += b.Total
		total.Updated += b.Updated
		total.Skipped += b.Skipped
		total.Failed += b.Failed
	}
	return total
}

// Elapsed returns the run duration.
func (s RunSummary) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}
