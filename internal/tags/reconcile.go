package tags

import (
	"context"
	"sort"

	"bulkscrape/internal/catalog"
)

// Merge returns (existing - control) ∪ scraped, deduplicated and sorted.
func Merge(existing, scraped, control []string) []string {
	controlSet := toSet(control)
	merged := make(map[string]struct{}, len(existing)+len(scraped))
	for _, id := range existing {
		if id == "" {
			continue
		}
		if _, ok := controlSet[id]; ok {
			continue
		}
		merged[id] = struct{}{}
	}
	for _, id := range scraped {
		if id == "" {
			continue
		}
		merged[id] = struct{}{}
	}
	return sortedKeys(merged)
}

// Stripped returns the control tags present in existing, the set Merge
// removes and ApplyAdditive must restore.
func Stripped(existing, control []string) []string {
	existingSet := toSet(existing)
	out := make(map[string]struct{}, len(control))
	for _, id := range control {
		if _, ok := existingSet[id]; ok {
			out[id] = struct{}{}
		}
	}
	return sortedKeys(out)
}

// BulkUpdater issues bulk tag updates against the catalog.
type BulkUpdater interface {
	BulkUpdateTags(ctx context.Context, kind catalog.Kind, itemIDs, tagIDs []string, mode catalog.BulkMode) error
}

// ApplyAdditive re-adds control tags to one item in ADD mode. It is a no-op
// when there is nothing to restore.
func ApplyAdditive(ctx context.Context, updater BulkUpdater, kind catalog.Kind, itemID string, controlIDs []string) error {
	if len(controlIDs) == 0 {
		return nil
	}
	return updater.BulkUpdateTags(ctx, kind, []string{itemID}, controlIDs, catalog.BulkAdd)
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
