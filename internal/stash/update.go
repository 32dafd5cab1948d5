package stash

import (
	"context"
	"fmt"

	"bulkscrape/internal/catalog"
	"bulkscrape/internal/services"
)

// Update persists a mapped update. Only fields set on the payload are sent.
func (c *Client) Update(ctx context.Context, update catalog.Update) error {
	var operation, mutation string
	switch update.(type) {
	case *catalog.SceneUpdate:
		operation, mutation = "sceneUpdate", sceneUpdateMutation
	case *catalog.GalleryUpdate:
		operation, mutation = "galleryUpdate", galleryUpdateMutation
	case *catalog.PerformerUpdate:
		operation, mutation = "performerUpdate", performerUpdateMutation
	case *catalog.MovieUpdate:
		operation, mutation = "movieUpdate", movieUpdateMutation
	case *catalog.StudioUpdate:
		operation, mutation = "studioUpdate", studioUpdateMutation
	case *catalog.TagUpdate:
		operation, mutation = "tagUpdate", tagUpdateMutation
	default:
		return services.Wrap(services.ErrValidation, component, "update", fmt.Sprintf("unsupported update %T", update), nil)
	}
	if update.TargetID() == "" {
		return services.Wrap(services.ErrValidation, component, operation, "missing target id", nil)
	}
	return c.do(ctx, operation, mutation, map[string]any{"input": update}, nil)
}
