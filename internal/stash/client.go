package stash

import (
	"context"
	"log/slog"

	"bulkscrape/internal/config"
	"bulkscrape/internal/graphql"
	"bulkscrape/internal/logging"
)

const component = "stash"

// Client issues catalog queries and mutations.
type Client struct {
	gql    *graphql.Client
	logger *slog.Logger
}

// New wraps an existing GraphQL transport.
func New(gql *graphql.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{gql: gql, logger: logging.NewComponentLogger(logger, component)}
}

// NewFromConfig builds a transport from the [stash] section.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	gql := graphql.New(graphql.Config{
		Endpoint:      cfg.Stash.URL,
		APIKey:        cfg.Stash.APIKey,
		SessionCookie: cfg.Stash.SessionCookie,
		Timeout:       cfg.RequestTimeout(),
		Component:     component,
	}, graphql.WithLogger(logger))
	return New(gql, logger)
}

// Endpoint returns the catalog GraphQL URL.
func (c *Client) Endpoint() string {
	return c.gql.Endpoint()
}

func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	return c.gql.Do(ctx, operation, query, variables, out)
}
