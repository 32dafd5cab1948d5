package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"bulkscrape/internal/orchestrator"
	"bulkscrape/internal/services"
)

// Status is the lifecycle state of a journaled run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one journaled scrape mode invocation.
type Run struct {
	ID           string     `json:"id"`
	Mode         string     `json:"mode"`
	Status       Status     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Total        int        `json:"total"`
	Updated      int        `json:"updated"`
	Skipped      int        `json:"skipped"`
	Failed       int        `json:"failed"`
	JobID        string     `json:"job_id,omitempty"`
	ErrorMessage string     `json:"error,omitempty"`
}

// Elapsed returns the run duration, or zero while it is still running.
func (r Run) Elapsed() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// ItemRecord is the persisted outcome of one item.
type ItemRecord struct {
	RunID      string    `json:"run_id"`
	Kind       string    `json:"kind"`
	ItemID     string    `json:"item_id"`
	Label      string    `json:"label,omitempty"`
	Host       string    `json:"host,omitempty"`
	Scraper    string    `json:"scraper,omitempty"`
	Outcome    string    `json:"outcome"`
	Message    string    `json:"message,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

var _ orchestrator.Recorder = (*Store)(nil)

var runColumns = []string{
	"id", "mode", "status", "started_at", "finished_at",
	"total", "updated", "skipped", "failed", "job_id", "error_message",
}

// StartRun inserts a running row for runID.
func (s *Store) StartRun(ctx context.Context, runID, mode string, started time.Time) error {
	if runID == "" {
		return services.Wrap(services.ErrValidation, "journal", "start run", "run id is required", nil)
	}
	_, err := s.exec(ctx, psql.Insert("runs").
		Columns("id", "mode", "status", "started_at").
		Values(runID, mode, string(StatusRunning), formatTime(started)))
	if err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}
	return nil
}

// FinishRun stores the totals of summary and marks the run completed, or
// failed when runErr is set.
func (s *Store) FinishRun(ctx context.Context, summary orchestrator.RunSummary, runErr error) error {
	totals := summary.Totals()
	finished := summary.Finished
	if finished.IsZero() {
		finished = s.now()
	}
	status, message := StatusCompleted, ""
	if runErr != nil {
		status, message = StatusFailed, runErr.Error()
	}
	res, err := s.exec(ctx, psql.Update("runs").
		SetMap(map[string]any{
			"status":        string(status),
			"finished_at":   formatTime(finished),
			"total":         totals.Total,
			"updated":       totals.Updated,
			"skipped":       totals.Skipped,
			"failed":        totals.Failed,
			"job_id":        nullableString(summary.JobID),
			"error_message": nullableString(message),
		}).
		Where(sq.Eq{"id": summary.RunID}))
	if err != nil {
		return fmt.Errorf("finish run %s: %w", summary.RunID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return services.Wrap(services.ErrNotFound, "journal", "finish run", "run "+summary.RunID+" was never started", nil)
	}
	return nil
}

// RecordItem appends one item outcome to runID. It satisfies
// orchestrator.Recorder.
func (s *Store) RecordItem(ctx context.Context, runID string, result orchestrator.ItemResult) error {
	_, err := s.exec(ctx, psql.Insert("run_items").
		Columns("run_id", "kind", "item_id", "label", "host", "scraper", "outcome", "message", "recorded_at").
		Values(
			runID,
			result.Kind.String(),
			result.ItemID,
			nullableString(result.Label),
			nullableString(result.Host),
			nullableString(result.Scraper),
			string(result.Outcome),
			nullableString(result.Message()),
			formatTime(s.now()),
		))
	if err != nil {
		return fmt.Errorf("record item %s: %w", result.ItemID, err)
	}
	return nil
}

// ListRuns returns the newest runs first. A non-positive limit returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	builder := psql.Select(runColumns...).From("runs").OrderBy("started_at DESC", "id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns the run with id, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	query, args, err := psql.Select(runColumns...).From("runs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Items returns the item outcomes of runID in the order they were recorded.
func (s *Store) Items(ctx context.Context, runID string) ([]ItemRecord, error) {
	query, args, err := psql.
		Select("run_id", "kind", "item_id", "label", "host", "scraper", "outcome", "message", "recorded_at").
		From("run_items").
		Where(sq.Eq{"run_id": runID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list run items: %w", err)
	}
	defer rows.Close()

	var items []ItemRecord
	for rows.Next() {
		var (
			item                          ItemRecord
			label, host, scraper, message sql.NullString
			recordedRaw                   string
		)
		if err := rows.Scan(&item.RunID, &item.Kind, &item.ItemID, &label, &host, &scraper, &item.Outcome, &message, &recordedRaw); err != nil {
			return nil, err
		}
		item.Label = label.String
		item.Host = host.String
		item.Scraper = scraper.String
		item.Message = message.String
		if recorded, err := parseTimeString(recordedRaw); err == nil {
			item.RecordedAt = recorded
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Prune deletes every run but the newest keep, with their items, and returns
// the number of runs removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, services.Wrap(services.ErrValidation, "journal", "prune", fmt.Sprintf("keep must be >= 0, got %d", keep), nil)
	}
	newest, newestArgs, err := psql.Select("id").From("runs").
		OrderBy("started_at DESC", "id DESC").
		Limit(uint64(keep)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	stale := "run_id NOT IN (" + newest + ")"
	if _, err := s.exec(ctx, psql.Delete("run_items").Where(stale, newestArgs...)); err != nil {
		return 0, fmt.Errorf("prune run items: %w", err)
	}
	res, err := s.exec(ctx, psql.Delete("runs").Where("id NOT IN ("+newest+")", newestArgs...))
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return removed, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run                 Run
		status              string
		startedRaw          string
		finishedRaw         sql.NullString
		jobID, errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Mode,
		&status,
		&startedRaw,
		&finishedRaw,
		&run.Total,
		&run.Updated,
		&run.Skipped,
		&run.Failed,
		&jobID,
		&errorMessage,
	); err != nil {
		return Run{}, err
	}
	run.Status = Status(status)
	run.JobID = jobID.String
	run.ErrorMessage = errorMessage.String
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}
