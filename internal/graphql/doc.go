// Package graphql is the GraphQL-over-HTTP transport shared by the catalog
// and stash-box clients.
//
// It posts {query, variables} documents, authenticates with an API key header
// or session cookie, and classifies failures with the services error markers:
// rejected credentials become ErrUnauthorized and connection failures become
// ErrUnreachable, both of which end a run. Server-side GraphQL errors without
// data are ErrExternal and only fail the current item.
package graphql
