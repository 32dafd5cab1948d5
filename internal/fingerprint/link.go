package fingerprint

import "bulkscrape/internal/catalog"

// Link returns a copy of candidate whose scene and performers carry stash ids
// for endpoint, taken from their remote site ids. Entries without a remote id
// are left unlinked.
func Link(candidate catalog.ScrapedScene, endpoint string) catalog.ScrapedScene {
	linked := candidate
	linked.StashIDs = nil
	if catalog.Present(candidate.RemoteSiteID) {
		linked.StashIDs = []catalog.StashID{{Endpoint: endpoint, StashID: catalog.Value(candidate.RemoteSiteID)}}
	}
	if len(candidate.Performers) > 0 {
		linked.Performers = make([]catalog.ScrapedPerformer, len(candidate.Performers))
		for i, p := range candidate.Performers {
			p.StashIDs = nil
			if catalog.Present(p.RemoteSiteID) {
				p.StashIDs = []catalog.StashID{{Endpoint: endpoint, StashID: catalog.Value(p.RemoteSiteID)}}
			}
			linked.Performers[i] = p
		}
	}
	return linked
}
