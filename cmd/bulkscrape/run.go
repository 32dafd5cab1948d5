package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"bulkscrape/internal/journal"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/notifications"
	"bulkscrape/internal/orchestrator"
	"bulkscrape/internal/runlock"
	"bulkscrape/internal/services"
)

// modeRunner runs one orchestrator mode.
type modeRunner func(context.Context, *orchestrator.Controller) (orchestrator.RunSummary, error)

// runMode executes run under the run lock, journals it, notifies and renders
// the summary. The run error is returned so the process exits non-zero.
func (c *commandContext) runMode(cmd *cobra.Command, mode string, asJSON bool, run modeRunner) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	store, err := journal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	runID := uuid.NewString()
	ctx := services.WithRunID(cmd.Context(), runID)
	started := time.Now()
	if err := store.StartRun(ctx, runID, mode, started); err != nil {
		return err
	}

	controller := newController(cfg, logger, orchestrator.WithRecorder(store))
	summary, runErr := run(ctx, controller)
	if summary.RunID == "" {
		summary.RunID, summary.Mode, summary.Started = runID, mode, started
	}

	// Bookkeeping still happens when the run was interrupted.
	finishCtx := context.WithoutCancel(ctx)
	if err := store.FinishRun(finishCtx, summary, runErr); err != nil {
		logging.WarnWithContext(logger, "journal update failed", "journal_failed",
			logging.String(logging.FieldRunID, runID),
			logging.Error(err),
			logging.String(logging.FieldImpact, "run history incomplete"),
		)
	}

	notifier := notifications.NewService(cfg)
	event, payload := notifications.EventRunCompleted, notifications.RunPayload(summary)
	if runErr != nil {
		event, payload = notifications.EventRunFailed, notifications.FailurePayload(mode, runErr)
	}
	if err := notifier.Publish(finishCtx, event, payload); err != nil {
		logging.WarnWithContext(logger, "notification failed", "notification_failed",
			logging.String("event", string(event)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no push notification for this run"),
		)
	}

	if asJSON {
		if err := writeJSON(cmd, newRunReport(summary, runErr)); err != nil {
			return err
		}
		return runErr
	}
	writeRunSummary(cmd.OutOrStdout(), summary, runErr)
	return runErr
}

type batchReport struct {
	Kind    string `json:"kind"`
	Scraper string `json:"scraper,omitempty"`
	Total   int    `json:"total"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

type runReport struct {
	RunID                 string        `json:"run_id"`
	Mode                  string        `json:"mode"`
	Started               time.Time     `json:"started"`
	Finished              time.Time     `json:"finished"`
	ElapsedSeconds        float64       `json:"elapsed_seconds"`
	Batches               []batchReport `json:"batches"`
	Totals                batchReport   `json:"totals"`
	FingerprintsSubmitted *bool         `json:"fingerprints_submitted,omitempty"`
	JobID                 string        `json:"job_id,omitempty"`
	Error                 string        `json:"error,omitempty"`
}

func toBatchReport(b orchestrator.BatchSummary) batchReport {
	return batchReport{
		Kind:    b.Kind.String(),
		Scraper: b.Scraper,
		Total:   b.Total,
		Updated: b.Updated,
		Skipped: b.Skipped,
		Failed:  b.Failed,
	}
}

func newRunReport(summary orchestrator.RunSummary, runErr error) runReport {
	report := runReport{
		RunID:                 summary.RunID,
		Mode:                  summary.Mode,
		Started:               summary.Started,
		Finished:              summary.Finished,
		ElapsedSeconds:        summary.Elapsed().Seconds(),
		Batches:               make([]batchReport, 0, len(summary.Batches)),
		FingerprintsSubmitted: summary.FingerprintsSubmitted,
		JobID:                 summary.JobID,
	}
	for _, b := range summary.Batches {
		report.Batches = append(report.Batches, toBatchReport(b))
	}
	totals := toBatchReport(summary.Totals())
	totals.Kind = "all"
	report.Totals = totals
	if runErr != nil {
		report.Error = runErr.Error()
	}
	return report
}

func writeRunSummary(out io.Writer, summary orchestrator.RunSummary, runErr error) {
	colorize := shouldColorize(out)

	heading := fmt.Sprintf("%s run %s", summary.Mode, summary.RunID)
	if runErr != nil {
		fmt.Fprintln(out, paint(heading+" aborted", colorize, text.Colors{text.FgRed, text.Bold}))
	} else {
		fmt.Fprintln(out, paint(heading+" finished", colorize, text.Colors{text.FgGreen, text.Bold}))
	}

	if len(summary.Batches) == 0 {
		fmt.Fprintln(out, "No items processed")
	} else {
		rows := make([][]string, 0, len(summary.Batches)+1)
		for _, b := range summary.Batches {
			rows = append(rows, batchRow(b.Kind.Plural(), b))
		}
		rows = append(rows, batchRow("total", summary.Totals()))
		fmt.Fprintln(out, renderTable(
			[]string{"Kind", "Scraper", "Total", "Updated", "Skipped", "Failed"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
		))
	}

	fmt.Fprintf(out, "Elapsed: %s\n", summary.Elapsed().Round(time.Millisecond))
	if summary.FingerprintsSubmitted != nil {
		fmt.Fprintf(out, "Fingerprints submitted: %s\n", yesNo(*summary.FingerprintsSubmitted))
	}
	if summary.JobID != "" {
		fmt.Fprintf(out, "Identify job: %s\n", summary.JobID)
	}
	if runErr != nil {
		fmt.Fprintln(out, paint("Error: "+strings.TrimSpace(runErr.Error()), colorize, text.Colors{text.FgRed}))
	}
}

func batchRow(label string, b orchestrator.BatchSummary) []string {
	return []string{
		label,
		b.Scraper,
		strconv.Itoa(b.Total),
		strconv.Itoa(b.Updated),
		strconv.Itoa(b.Skipped),
		strconv.Itoa(b.Failed),
	}
}
