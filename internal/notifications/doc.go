// Package notifications delivers run events via ntfy.
//
// NewService publishes to the topic URL configured in config.toml and
// degrades to a no-op when no topic is set. The run_completed and errors
// switches suppress their event types without touching callers, so the CLI
// publishes unconditionally and lets configuration decide.
package notifications
