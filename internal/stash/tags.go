package stash

import (
	"context"
	"fmt"
	"strings"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/services"
)

// FindTag returns the tag whose name or alias equals name, ignoring case, or
// nil when none exists.
func (c *Client) FindTag(ctx context.Context, name string) (*catalog.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var out struct {
		FindTags struct {
			Tags []wireTag `json:"tags"`
		} `json:"findTags"`
	}
	if err := c.do(ctx, "findTags", findTagsQuery, map[string]any{"filter": findFilter(name)}, &out); err != nil {
		return nil, err
	}
	for _, tag := range out.FindTags.Tags {
		if matchesTag(tag, name) {
			return &catalog.Tag{ID: tag.ID, Name: tag.Name, Aliases: tag.Aliases}, nil
		}
	}
	return nil, nil
}

func matchesTag(tag wireTag, name string) bool {
	if strings.EqualFold(tag.Name, name) {
		return true
	}
	for _, alias := range tag.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// CreateTag creates a tag and returns its id.
func (c *Client) CreateTag(ctx context.Context, name string) (string, error) {
	var out struct {
		TagCreate idRef `json:"tagCreate"`
	}
	input := map[string]any{"name": name}
	if err := c.do(ctx, "tagCreate", createTagMutation, map[string]any{"input": input}, &out); err != nil {
		return "", err
	}
	return requireID("tagCreate", name, out.TagCreate.ID)
}

// DestroyTag deletes a tag by id.
func (c *Client) DestroyTag(ctx context.Context, id string) error {
	return c.do(ctx, "tagDestroy", destroyTagMutation, map[string]any{"input": map[string]any{"id": id}}, nil)
}

// BulkUpdateTags applies tagIDs to every item in itemIDs with mode.
func (c *Client) BulkUpdateTags(ctx context.Context, kind catalog.Kind, itemIDs, tagIDs []string, mode catalog.BulkMode) error {
	if len(itemIDs) == 0 {
		return nil
	}
	var operation, mutation string
	switch kind {
	case catalog.KindScene:
		operation, mutation = "bulkSceneUpdate", bulkSceneUpdateMutation
	case catalog.KindGallery:
		operation, mutation = "bulkGalleryUpdate", bulkGalleryUpdateMutation
	case catalog.KindPerformer:
		operation, mutation = "bulkPerformerUpdate", bulkPerformerUpdateMutation
	default:
		return services.Wrap(services.ErrValidation, component, "bulkUpdate", fmt.Sprintf("%s does not carry tags", kind.Plural()), nil)
	}
	if tagIDs == nil {
		tagIDs = []string{}
	}
	input := map[string]any{
		"ids": itemIDs,
		"tag_ids": map[string]any{
			"ids":  tagIDs,
			"mode": string(mode),
		},
	}
	return c.do(ctx, operation, mutation, map[string]any{"input": input}, nil)
}
