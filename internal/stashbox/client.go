package stashbox

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/graphql"
	"bulkscrape/internal/logging"
	"bulkscrape/internal/services"
)

const component = "stashbox"

const meQuery = `
query Me {
  me { name }
}`

const sceneUpdatedQuery = `
query SceneLastUpdated($id: ID!) {
  findScene(id: $id) { id updated }
}`

// Client queries one registry endpoint.
type Client struct {
	gql      *graphql.Client
	endpoint string
	logger   *slog.Logger
}

// New builds a client for box, authenticating with its API key.
func New(box catalog.StashBox, timeout time.Duration, logger *slog.Logger, opts ...graphql.Option) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	opts = append([]graphql.Option{graphql.WithLogger(logger)}, opts...)
	gql := graphql.New(graphql.Config{
		Endpoint:  box.Endpoint,
		APIKey:    box.APIKey,
		Timeout:   timeout,
		Component: component,
	}, opts...)
	return &Client{
		gql:      gql,
		endpoint: box.Endpoint,
		logger:   logging.NewComponentLogger(logger, component),
	}
}

// Endpoint returns the registry GraphQL URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Me returns the account name the API key authenticates as.
func (c *Client) Me(ctx context.Context) (string, error) {
	var resp struct {
		Me *struct {
			Name string `json:"name"`
		} `json:"me"`
	}
	if err := c.gql.Do(ctx, "me", meQuery, nil, &resp); err != nil {
		return "", err
	}
	if resp.Me == nil {
		return "", services.Wrap(services.ErrUnauthorized, component, "me", "no account for api key", nil)
	}
	return resp.Me.Name, nil
}

// SceneUpdated returns when the remote scene was last modified.
func (c *Client) SceneUpdated(ctx context.Context, stashID string) (time.Time, error) {
	var resp struct {
		FindScene *struct {
			ID      string `json:"id"`
			Updated string `json:"updated"`
		} `json:"findScene"`
	}
	if err := c.gql.Do(ctx, "findScene", sceneUpdatedQuery, map[string]any{"id": stashID}, &resp); err != nil {
		return time.Time{}, err
	}
	if resp.FindScene == nil {
		return time.Time{}, services.Wrap(services.ErrNotFound, component, "findScene", fmt.Sprintf("scene %s not found", stashID), nil)
	}
	updated, err := ParseTimestamp(resp.FindScene.Updated)
	if err != nil {
		return time.Time{}, services.Wrap(services.ErrExternal, component, "findScene", "parse updated", err)
	}
	return updated, nil
}

// ParseTimestamp parses an RFC 3339 timestamp with or without fractional
// seconds and returns it in UTC.
func ParseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
