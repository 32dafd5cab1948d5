// Package ratelimit spaces outbound scraper calls by a minimum interval.
//
// One Limiter is shared by every item type in a run. Wait sleeps only for the
// part of the interval that has not already elapsed since the previous call.
package ratelimit
