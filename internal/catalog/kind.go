package catalog

import (
	"fmt"
	"strings"
)

// Kind identifies one of the catalog entity types the pipeline can touch.
type Kind int

const (
	KindScene Kind = iota + 1
	KindGallery
	KindPerformer
	KindMovie
	KindStudio
	KindTag
)

// ScrapeKinds lists the kinds that carry their own scrape loop, in the order
// the orchestrator processes them.
var ScrapeKinds = []Kind{KindScene, KindGallery, KindPerformer, KindMovie}

func (k Kind) String() string {
	switch k {
	case KindScene:
		return "scene"
	case KindGallery:
		return "gallery"
	case KindPerformer:
		return "performer"
	case KindMovie:
		return "movie"
	case KindStudio:
		return "studio"
	case KindTag:
		return "tag"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Plural returns the collection name used in log lines and summaries.
func (k Kind) Plural() string {
	if k == KindGallery {
		return "galleries"
	}
	return k.String() + "s"
}

// ParseKind resolves a kind name such as "scene" or "galleries".
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "scene", "scenes":
		return KindScene, nil
	case "gallery", "galleries":
		return KindGallery, nil
	case "performer", "performers":
		return KindPerformer, nil
	case "movie", "movies":
		return KindMovie, nil
	case "studio", "studios":
		return KindStudio, nil
	case "tag", "tags":
		return KindTag, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", value)
	}
}

// BulkMode selects how a bulk tag update combines ids with the current set.
type BulkMode string

const (
	BulkSet    BulkMode = "SET"
	BulkAdd    BulkMode = "ADD"
	BulkRemove BulkMode = "REMOVE"
)
