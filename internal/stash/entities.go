package stash

import (
	"context"
	"fmt"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/services"
)

// FindPerformers searches performers by name or alias.
func (c *Client) FindPerformers(ctx context.Context, query string) ([]catalog.Performer, error) {
	var resp struct {
		FindPerformers struct {
			Performers []wireNamed `json:"performers"`
		} `json:"findPerformers"`
	}
	if err := c.do(ctx, "findPerformers", searchPerformersQuery, map[string]any{"filter": findFilter(query)}, &resp); err != nil {
		return nil, err
	}
	out := make([]catalog.Performer, 0, len(resp.FindPerformers.Performers))
	for _, p := range resp.FindPerformers.Performers {
		out = append(out, catalog.Performer{ID: p.ID, Name: p.Name, Aliases: p.Aliases})
	}
	return out, nil
}

// FindStudios searches studios by name or alias.
func (c *Client) FindStudios(ctx context.Context, query string) ([]catalog.Studio, error) {
	return c.searchStudios(ctx, map[string]any{"filter": findFilter(query)})
}

// FindStudiosByURL returns studios whose URL contains fragment.
func (c *Client) FindStudiosByURL(ctx context.Context, fragment string) ([]catalog.Studio, error) {
	vars := map[string]any{
		"filter": findFilter(""),
		"studio_filter": map[string]any{
			"url": map[string]any{"value": fragment, "modifier": "INCLUDES"},
		},
	}
	return c.searchStudios(ctx, vars)
}

func (c *Client) searchStudios(ctx context.Context, vars map[string]any) ([]catalog.Studio, error) {
	var resp struct {
		FindStudios struct {
			Studios []wireStudio `json:"studios"`
		} `json:"findStudios"`
	}
	if err := c.do(ctx, "findStudios", searchStudiosQuery, vars, &resp); err != nil {
		return nil, err
	}
	out := make([]catalog.Studio, 0, len(resp.FindStudios.Studios))
	for _, s := range resp.FindStudios.Studios {
		out = append(out, catalog.Studio{ID: s.ID, Name: s.Name, URL: s.URL, Aliases: s.Aliases})
	}
	return out, nil
}

// FindMovies searches movies by name or alias.
func (c *Client) FindMovies(ctx context.Context, query string) ([]catalog.Movie, error) {
	var resp struct {
		FindMovies struct {
			Movies []wireNamed `json:"movies"`
		} `json:"findMovies"`
	}
	if err := c.do(ctx, "findMovies", searchMoviesQuery, map[string]any{"filter": findFilter(query)}, &resp); err != nil {
		return nil, err
	}
	out := make([]catalog.Movie, 0, len(resp.FindMovies.Movies))
	for _, m := range resp.FindMovies.Movies {
		out = append(out, catalog.Movie{ID: m.ID, Name: m.Name, Aliases: m.Aliases})
	}
	return out, nil
}

// CreatePerformer creates a performer and returns its id.
func (c *Client) CreatePerformer(ctx context.Context, input catalog.PerformerCreate) (string, error) {
	var resp struct {
		PerformerCreate idRef `json:"performerCreate"`
	}
	if err := c.do(ctx, "performerCreate", createPerformerMutation, map[string]any{"input": input}, &resp); err != nil {
		return "", err
	}
	return requireID("performerCreate", input.Name, resp.PerformerCreate.ID)
}

// CreateStudio creates a studio and returns its id.
func (c *Client) CreateStudio(ctx context.Context, input catalog.StudioCreate) (string, error) {
	var resp struct {
		StudioCreate idRef `json:"studioCreate"`
	}
	if err := c.do(ctx, "studioCreate", createStudioMutation, map[string]any{"input": input}, &resp); err != nil {
		return "", err
	}
	return requireID("studioCreate", input.Name, resp.StudioCreate.ID)
}

// CreateMovie creates a movie and returns its id.
func (c *Client) CreateMovie(ctx context.Context, input catalog.MovieCreate) (string, error) {
	var resp struct {
		MovieCreate idRef `json:"movieCreate"`
	}
	if err := c.do(ctx, "movieCreate", createMovieMutation, map[string]any{"input": input}, &resp); err != nil {
		return "", err
	}
	return requireID("movieCreate", input.Name, resp.MovieCreate.ID)
}

func requireID(operation, name, id string) (string, error) {
	if id == "" {
		return "", services.Wrap(services.ErrExternal, component, operation, fmt.Sprintf("no id returned for %q", name), nil)
	}
	return id, nil
}
