// Package stashbox talks to a stash-box registry directly.
//
// The catalog proxies most registry traffic; this client only covers the
// lookups the update finder needs that the catalog does not expose, namely a
// remote scene's last modification time.
package stashbox
