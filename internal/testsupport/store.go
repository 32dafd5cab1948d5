package testsupport

import (
	"context"
	"testing"
	"time"

	"bulkscrape/internal/config"
	"bulkscrape/internal/journal"
)

// MustOpenJournal opens a journal.Store for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(cfg)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// StartRun inserts a running journal row for tests.
func StartRun(t testing.TB, store *journal.Store, runID, mode string, started time.Time) {
	t.Helper()

	if err := store.StartRun(context.Background(), runID, mode, started); err != nil {
		t.Fatalf("store.StartRun: %v", err)
	}
}
