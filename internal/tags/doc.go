// Package tags reconciles an item's tag set with freshly scraped tags.
//
// Merge drops every control tag from the existing set before unioning in the
// scraped tags. The control tags that were dropped are re-applied afterwards
// by ApplyAdditive through an ADD-mode bulk update, so a destructive field
// update can never lose them and stale scrape data can never duplicate them.
package tags
