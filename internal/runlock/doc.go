// Package runlock keeps two bulkscrape runs from mutating the same catalog at
// once, using an advisory file lock in the state directory.
package runlock
