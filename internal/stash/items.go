package stash

import (
	"context"
	"fmt"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/services"
)

// FindItems enumerates every item of kind matching query.
func (c *Client) FindItems(ctx context.Context, kind catalog.Kind, query catalog.ItemQuery) ([]catalog.Item, error) {
	filter := itemFilter(kind, query)
	switch kind {
	case catalog.KindScene:
		scenes, _, err := c.findScenes(ctx, map[string]any{"per_page": -1}, filter)
		if err != nil {
			return nil, err
		}
		out := make([]catalog.Item, 0, len(scenes))
		for _, s := range scenes {
			out = append(out, s.item(catalog.KindScene))
		}
		return out, nil
	case catalog.KindGallery:
		var resp struct {
			FindGalleries struct {
				Galleries []wireItem `json:"galleries"`
			} `json:"findGalleries"`
		}
		vars := map[string]any{"filter": findFilter(""), "gallery_filter": filter}
		if err := c.do(ctx, "findGalleries", findGalleriesQuery, vars, &resp); err != nil {
			return nil, err
		}
		return toItems(catalog.KindGallery, resp.FindGalleries.Galleries), nil
	case catalog.KindPerformer:
		var resp struct {
			FindPerformers struct {
				Performers []wireItem `json:"performers"`
			} `json:"findPerformers"`
		}
		vars := map[string]any{"filter": findFilter(""), "performer_filter": filter}
		if err := c.do(ctx, "findPerformers", findPerformerItemsQuery, vars, &resp); err != nil {
			return nil, err
		}
		return toItems(catalog.KindPerformer, resp.FindPerformers.Performers), nil
	case catalog.KindMovie:
		var resp struct {
			FindMovies struct {
				Movies []wireItem `json:"movies"`
			} `json:"findMovies"`
		}
		vars := map[string]any{"filter": findFilter(""), "movie_filter": filter}
		if err := c.do(ctx, "findMovies", findMovieItemsQuery, vars, &resp); err != nil {
			return nil, err
		}
		return toItems(catalog.KindMovie, resp.FindMovies.Movies), nil
	default:
		return nil, services.Wrap(services.ErrValidation, component, "findItems", fmt.Sprintf("cannot enumerate %s", kind.Plural()), nil)
	}
}

// FindScenes returns every scene carrying tagID with its fingerprints.
func (c *Client) FindScenes(ctx context.Context, tagID string) ([]catalog.Scene, error) {
	scenes, _, err := c.findScenes(ctx, map[string]any{"per_page": -1}, map[string]any{"tags": tagCriterion(tagID)})
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Scene, 0, len(scenes))
	for _, s := range scenes {
		out = append(out, s.scene())
	}
	return out, nil
}

// FindScenesWithStashIDs returns one page of scenes linked to any registry.
// page is 1-based.
func (c *Client) FindScenesWithStashIDs(ctx context.Context, page, perPage int) (catalog.ScenePage, error) {
	filter := map[string]any{"page": page, "per_page": perPage}
	sceneFilter := map[string]any{
		"stash_id": map[string]any{"value": "", "modifier": "NOT_NULL"},
	}
	scenes, count, err := c.findScenes(ctx, filter, sceneFilter)
	if err != nil {
		return catalog.ScenePage{}, err
	}
	result := catalog.ScenePage{Count: count, Scenes: make([]catalog.Scene, 0, len(scenes))}
	for _, s := range scenes {
		result.Scenes = append(result.Scenes, s.scene())
	}
	return result, nil
}

func (c *Client) findScenes(ctx context.Context, filter, sceneFilter map[string]any) ([]wireScene, int, error) {
	var resp struct {
		FindScenes struct {
			Count  int         `json:"count"`
			Scenes []wireScene `json:"scenes"`
		} `json:"findScenes"`
	}
	vars := map[string]any{"filter": filter, "scene_filter": sceneFilter}
	if err := c.do(ctx, "findScenes", findScenesQuery, vars, &resp); err != nil {
		return nil, 0, err
	}
	return resp.FindScenes.Scenes, resp.FindScenes.Count, nil
}

func itemFilter(kind catalog.Kind, query catalog.ItemQuery) map[string]any {
	filter := map[string]any{}
	// Movies carry no tags in the catalog.
	if query.TagID != "" && kind != catalog.KindMovie {
		filter["tags"] = tagCriterion(query.TagID)
	}
	if query.URLRequired {
		filter["url"] = map[string]any{"value": "", "modifier": "NOT_NULL"}
	}
	if query.MissingFrontImage && kind == catalog.KindMovie {
		filter["is_missing"] = "front_image"
	}
	return filter
}

func toItems(kind catalog.Kind, wire []wireItem) []catalog.Item {
	out := make([]catalog.Item, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.item(kind))
	}
	return out
}
