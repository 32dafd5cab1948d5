// Package resolver maps entity mentions found inside scraped records to
// catalog identifiers.
//
// A mention that already carries a stored id is returned as is. Performers,
// studios, and movies are otherwise looked up by title-cased name and alias
// with case-insensitive exact comparison, and optionally created when nothing
// matches. Single-word names that match several entities are left unresolved.
// Tags never fall back to name search: only a stored id or, when enabled,
// creation resolves them.
package resolver
