package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bulkscrape/internal/config"
	"bulkscrape/internal/orchestrator"
)

const userAgent = "bulkscrape/0.1.0"

// Event identifies a notification type.
type Event string

const (
	EventRunCompleted Event = "run_completed"
	EventRunFailed    Event = "run_failed"
	EventTest         Event = "test"
)

// Payload carries event fields keyed by name.
type Payload map[string]any

// Service publishes run events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		completed: cfg.Notifications.RunCompleted,
		errors:    cfg.Notifications.Errors,
	}
}

// RunPayload flattens a run summary into event fields.
func RunPayload(summary orchestrator.RunSummary) Payload {
	totals := summary.Totals()
	return Payload{
		"runID":   summary.RunID,
		"mode":    summary.Mode,
		"total":   totals.Total,
		"updated": totals.Updated,
		"skipped": totals.Skipped,
		"failed":  totals.Failed,
		"elapsed": summary.Elapsed(),
	}
}

// FailurePayload describes a run that ended with err.
func FailurePayload(mode string, err error) Payload {
	message := "unknown"
	if err != nil {
		message = strings.TrimSpace(err.Error())
	}
	return Payload{"mode": mode, "error": message}
}

type message struct {
	title    string
	body     string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	completed bool
	errors    bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, payload Payload) error {
	var msg message
	switch event {
	case EventRunCompleted:
		if !n.completed {
			return nil
		}
		msg = runCompletedMessage(payload)
	case EventRunFailed:
		if !n.errors {
			return nil
		}
		mode := payloadString(payload, "mode")
		msg = message{
			title:    "Bulkscrape - Run Failed",
			body:     fmt.Sprintf("❌ %s run failed: %s", mode, payloadString(payload, "error")),
			tags:     []string{"bulkscrape", "error", "alert"},
			priority: "high",
		}
	case EventTest:
		msg = message{
			title:    "Bulkscrape - Test",
			body:     "🧪 Notification system test",
			tags:     []string{"bulkscrape", "test"},
			priority: "low",
		}
	default:
		return nil
	}
	return n.send(ctx, msg)
}

func runCompletedMessage(payload Payload) message {
	mode := payloadString(payload, "mode")
	updated := payloadInt(payload, "updated")
	skipped := payloadInt(payload, "skipped")
	failed := payloadInt(payload, "failed")
	total := payloadInt(payload, "total")
	elapsed, _ := payload["elapsed"].(time.Duration)
	elapsed = elapsed.Round(time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	title := "Bulkscrape - Run Complete"
	if failed > 0 {
		title = "Bulkscrape - Run Complete (with failures)"
	}
	return message{
		title: title,
		body: fmt.Sprintf("✅ %s run: %d updated, %d skipped, %d failed of %d in %s",
			mode, updated, skipped, failed, total, elapsed),
		tags: []string{"bulkscrape", mode, "completed"},
	}
}

func payloadString(payload Payload, key string) string {
	if value, ok := payload[key]; ok && value != nil {
		return strings.TrimSpace(fmt.Sprint(value))
	}
	return ""
}

func payloadInt(payload Payload, key string) int {
	if value, ok := payload[key].(int); ok {
		return value
	}
	return 0
}

func (n *ntfyService) send(ctx context.Context, msg message) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(msg.body))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if msg.title != "" {
		req.Header.Set("Title", msg.title)
	}
	if len(msg.tags) > 0 {
		req.Header.Set("Tags", strings.Join(msg.tags, ","))
	}
	if msg.priority != "" && msg.priority != "default" {
		req.Header.Set("Priority", msg.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
