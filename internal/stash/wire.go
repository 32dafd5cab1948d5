package stash

import (
	"time"

	"bulkscrape/internal/catalog"
)

type idRef struct {
	ID string `json:"id"`
}

func refIDs(refs []idRef) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.ID)
	}
	return out
}

// wireItem covers the item projections of every kind; absent members decode
// to their zero values.
type wireItem struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Date     string            `json:"date"`
	Details  string            `json:"details"`
	Tags     []idRef           `json:"tags"`
	StashIDs []catalog.StashID `json:"stash_ids"`
}

func (w wireItem) item(kind catalog.Kind) catalog.Item {
	return catalog.Item{
		Kind:     kind,
		ID:       w.ID,
		Title:    w.Title,
		Name:     w.Name,
		URL:      w.URL,
		Date:     w.Date,
		Details:  w.Details,
		TagIDs:   refIDs(w.Tags),
		StashIDs: w.StashIDs,
	}
}

type wireScene struct {
	wireItem
	Checksum  string            `json:"checksum"`
	OSHash    string            `json:"oshash"`
	PHash     string            `json:"phash"`
	File      catalog.SceneFile `json:"file"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (w wireScene) scene() catalog.Scene {
	return catalog.Scene{
		ID:        w.ID,
		Title:     w.Title,
		Checksum:  w.Checksum,
		OSHash:    w.OSHash,
		PHash:     w.PHash,
		File:      w.File,
		TagIDs:    refIDs(w.Tags),
		StashIDs:  w.StashIDs,
		UpdatedAt: w.UpdatedAt,
	}
}

type wireTag struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
}

type wireNamed struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Aliases string `json:"aliases"`
}

type wireStudio struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	URL     string   `json:"url"`
	Aliases []string `json:"aliases"`
}

type wireScraper struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Scene     *wireSupport `json:"scene"`
	Gallery   *wireSupport `json:"gallery"`
	Performer *wireSupport `json:"performer"`
}

type wireSupport struct {
	SupportedScrapes []string `json:"supported_scrapes"`
}

func (s *wireSupport) supports(scrapeType string) bool {
	if s == nil {
		return false
	}
	for _, t := range s.SupportedScrapes {
		if t == scrapeType {
			return true
		}
	}
	return false
}

type wireStashBox struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

func findFilter(query string) map[string]any {
	filter := map[string]any{"per_page": -1}
	if query != "" {
		filter["q"] = query
	}
	return filter
}

func tagCriterion(tagID string) map[string]any {
	return map[string]any{
		"value":    []string{tagID},
		"depth":    0,
		"modifier": "INCLUDES",
	}
}
