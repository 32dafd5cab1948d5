package tags

import "strings"

// Names holds the configured control tag names.
type Names struct {
	URL      string
	StashBox string
	Prefix   string
}

// FragmentTag returns the control tag selecting items for a fragment scraper.
func (n Names) FragmentTag(scraperID string) string {
	return n.Prefix + strings.TrimSpace(scraperID)
}

// All returns the url tag, the stash-box tag and one fragment tag per scraper
// id, without duplicates and in that order.
func (n Names) All(scraperIDs []string) []string {
	out := make([]string, 0, len(scraperIDs)+2)
	seen := make(map[string]struct{}, cap(out))
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	add(n.URL)
	add(n.StashBox)
	for _, id := range scraperIDs {
		add(n.FragmentTag(id))
	}
	return out
}
