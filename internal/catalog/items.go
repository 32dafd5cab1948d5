package catalog

import (
	"net/url"
	"strings"
	"time"
)

// Item is the part of a catalog record the scrape loops read: identity, the
// fields used as a fragment scrape seed, and the current tag ids.
type Item struct {
	Kind    Kind
	ID      string
	Title   string
	Name    string
	URL     string
	Date    string
	Details string
	TagIDs  []string
	// StashIDs is only populated for scenes.
	StashIDs []StashID
}

// Host returns the network location of the item URL, or "" when the URL is
// missing or unparsable.
func (i Item) Host() string {
	raw := strings.TrimSpace(i.URL)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return parsed.Host
}

// Label returns a short human-readable label for logs.
func (i Item) Label() string {
	switch {
	case strings.TrimSpace(i.Title) != "":
		return i.Title
	case strings.TrimSpace(i.Name) != "":
		return i.Name
	default:
		return i.Kind.String() + " " + i.ID
	}
}

// SceneFile carries the file metadata used for fingerprint matching.
type SceneFile struct {
	Duration *float64 `json:"duration"`
}

// Scene is a local scene with the content fingerprints the matcher compares.
type Scene struct {
	ID        string
	Title     string
	Checksum  string
	OSHash    string
	PHash     string
	File      SceneFile
	TagIDs    []string
	StashIDs  []StashID
	UpdatedAt time.Time
}

// Item converts the scene into the generic item shape used for persistence.
func (s Scene) Item() Item {
	return Item{
		Kind:     KindScene,
		ID:       s.ID,
		Title:    s.Title,
		TagIDs:   append([]string(nil), s.TagIDs...),
		StashIDs: append([]StashID(nil), s.StashIDs...),
	}
}

// Fingerprint is one (algorithm, hash, duration) sample reported by the
// registry for a remote scene.
type Fingerprint struct {
	Algorithm string `json:"algorithm"`
	Hash      string `json:"hash"`
	Duration  *int   `json:"duration"`
}

// StashID links a local entity to a record in a stash-box registry.
type StashID struct {
	Endpoint string `json:"endpoint"`
	StashID  string `json:"stash_id"`
}

// MergeStashIDs returns existing with every entry of incoming applied. An
// incoming id replaces an existing id for the same endpoint.
func MergeStashIDs(existing, incoming []StashID) []StashID {
	out := make([]StashID, 0, len(existing)+len(incoming))
	replaced := make(map[string]struct{}, len(incoming))
	for _, id := range incoming {
		replaced[id.Endpoint] = struct{}{}
	}
	for _, id := range existing {
		if _, ok := replaced[id.Endpoint]; ok {
			continue
		}
		out = append(out, id)
	}
	seen := make(map[string]struct{}, len(incoming))
	for _, id := range incoming {
		if _, ok := seen[id.Endpoint]; ok {
			continue
		}
		seen[id.Endpoint] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Tag is a catalog tag.
type Tag struct {
	ID      string
	Name    string
	Aliases []string
}

// Performer is a catalog performer as seen by the entity resolver. Aliases is
// the raw delimited alias string stored by the catalog.
type Performer struct {
	ID      string
	Name    string
	Aliases string
}

// Studio is a catalog studio as seen by the entity resolver.
type Studio struct {
	ID      string
	Name    string
	URL     string
	Aliases []string
}

// Movie is a catalog movie as seen by the entity resolver.
type Movie struct {
	ID      string
	Name    string
	Aliases string
}

// StashBox is a registry endpoint configured in the catalog.
type StashBox struct {
	Index    int
	Name     string
	Endpoint string
	APIKey   string
}

// Scraper is a scraper plugin and the kinds it can fragment scrape.
type Scraper struct {
	ID       string
	Name     string
	Fragment map[Kind]bool
}

// SupportsFragment reports whether the scraper can fragment scrape kind.
func (s Scraper) SupportsFragment(kind Kind) bool {
	return s.Fragment[kind]
}

// ScenePage is one page of scenes with stash ids.
type ScenePage struct {
	Count  int
	Scenes []Scene
}

// ItemQuery narrows an item enumeration.
type ItemQuery struct {
	// TagID selects items carrying the tag; empty means no tag filter.
	TagID string
	// URLRequired keeps only items with a non-null URL.
	URLRequired bool
	// MissingFrontImage keeps only movies without a front image.
	MissingFrontImage bool
}
