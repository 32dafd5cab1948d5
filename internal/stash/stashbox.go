package stash

import (
	"context"

	"bulkscrape/internal/catalog"
)

// StashBoxes lists the registries configured in the catalog, in index order.
func (c *Client) StashBoxes(ctx context.Context) ([]catalog.StashBox, error) {
	var resp struct {
		Configuration struct {
			General struct {
				StashBoxes []wireStashBox `json:"stashBoxes"`
			} `json:"general"`
		} `json:"configuration"`
	}
	if err := c.do(ctx, "configuration", stashBoxesQuery, nil, &resp); err != nil {
		return nil, err
	}
	boxes := resp.Configuration.General.StashBoxes
	out := make([]catalog.StashBox, 0, len(boxes))
	for i, box := range boxes {
		out = append(out, catalog.StashBox{Index: i, Name: box.Name, Endpoint: box.Endpoint, APIKey: box.APIKey})
	}
	return out, nil
}

// QueryStashBoxScenes asks registry index for candidates of every scene in
// sceneIDs. The result is one flat candidate list.
func (c *Client) QueryStashBoxScenes(ctx context.Context, index int, sceneIDs []string) ([]catalog.ScrapedScene, error) {
	if len(sceneIDs) == 0 {
		return nil, nil
	}
	var resp struct {
		Scenes []catalog.ScrapedScene `json:"queryStashBoxScene"`
	}
	input := map[string]any{"scene_ids": sceneIDs, "stash_box_index": index}
	if err := c.do(ctx, "queryStashBoxScene", queryStashBoxSceneQuery, map[string]any{"input": input}, &resp); err != nil {
		return nil, err
	}
	return resp.Scenes, nil
}

// SubmitFingerprints submits the fingerprints of sceneIDs to registry index.
func (c *Client) SubmitFingerprints(ctx context.Context, index int, sceneIDs []string) (bool, error) {
	var resp struct {
		Submitted bool `json:"submitStashBoxFingerprints"`
	}
	input := map[string]any{"scene_ids": sceneIDs, "stash_box_index": index}
	if err := c.do(ctx, "submitStashBoxFingerprints", submitFingerprintsMutation, map[string]any{"input": input}, &resp); err != nil {
		return false, err
	}
	return resp.Submitted, nil
}

// Identify starts the catalog identify task for sceneIDs with endpoint as the
// only source and returns the job id.
func (c *Client) Identify(ctx context.Context, endpoint string, sceneIDs []string) (string, error) {
	var resp struct {
		JobID string `json:"metadataIdentify"`
	}
	input := map[string]any{
		"sceneIDs": sceneIDs,
		"sources": []map[string]any{
			{"source": map[string]any{"stash_box_endpoint": endpoint}},
		},
	}
	if err := c.do(ctx, "metadataIdentify", metadataIdentifyMutation, map[string]any{"input": input}, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}
