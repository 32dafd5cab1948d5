package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultKeyHeader = "ApiKey"
	maxErrorBody     = 2048
)

// Config captures the endpoint and credentials for one GraphQL server.
type Config struct {
	Endpoint      string
	APIKey        string
	APIKeyHeader  string
	SessionCookie string
	Timeout       time.Duration
	// Component labels errors and log lines (e.g. "stash", "stashbox").
	Component string
}

// Client posts GraphQL documents to a single endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for partial-error diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a client for cfg.Endpoint.
func New(cfg Config, opts ...Option) *Client {
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = defaultKeyHeader
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Component == "" {
		cfg.Component = "graphql"
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, cfg.Component)
	return client
}

// Endpoint returns the configured server URL.
func (c *Client) Endpoint() string {
	return c.cfg.Endpoint
}

// Error is one entry of a GraphQL "errors" array.
type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Errors is the "errors" array of a response.
type Errors []Error

func (e Errors) Error() string {
	messages := make([]string, 0, len(e))
	for _, item := range e {
		messages = append(messages, item.Message)
	}
	return strings.Join(messages, "; ")
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors"`
}

// Do posts query with variables and decodes the "data" member into out.
// operation names the call in errors and logs; out may be nil.
func (c *Client) Do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return services.Wrap(services.ErrValidation, c.cfg.Component, operation, "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrConfiguration, c.cfg.Component, operation, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set(c.cfg.APIKeyHeader, c.cfg.APIKey)
	}
	if c.cfg.SessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.cfg.SessionCookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, operation, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return services.Wrap(services.ErrUnauthorized, c.cfg.Component, operation, fmt.Sprintf("http %d from %s", resp.StatusCode, c.cfg.Endpoint), nil)
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return services.Wrap(services.ErrExternal, c.cfg.Component, operation, fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return services.Wrap(services.ErrExternal, c.cfg.Component, operation, "decode response", err)
	}
	hasData := len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null"))
	if len(envelope.Errors) > 0 {
		if !hasData {
			return services.Wrap(services.ErrExternal, c.cfg.Component, operation, "graphql errors", envelope.Errors)
		}
		c.logger.Debug("graphql partial errors",
			logging.String("operation", operation),
			logging.Error(envelope.Errors),
		)
	}
	if out == nil || !hasData {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return services.Wrap(services.ErrExternal, c.cfg.Component, operation, "decode data", err)
	}
	return nil
}

func (c *Client) transportError(ctx context.Context, operation string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s %s: %w", c.cfg.Component, operation, ctxErr)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		// The client timeout only fails the current call.
		return services.Wrap(services.ErrTransient, c.cfg.Component, operation, "request timed out: "+urlErr.Error(), nil)
	}
	return services.Wrap(services.ErrUnreachable, c.cfg.Component, operation, c.cfg.Endpoint, err)
}
