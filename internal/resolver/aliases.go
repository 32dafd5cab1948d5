package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"bulkscrape/internal/textutil"
)

var (
	aliasDelimiter = regexp.MustCompile(`[/\n,]`)
	domainPattern  = regexp.MustCompile(`^[^.]*\.[^.]{2,3}(?:\.[^.]{2,3})?$`)
)

// NormalizeName trims the name and title-cases each word.
func NormalizeName(name string) string {
	return textutil.TitleCase(strings.TrimSpace(name))
}

// SplitAliases splits a stored alias string on the first delimiter that
// occurs in it ("/", newline, or ","). Entries are trimmed and blanks dropped.
func SplitAliases(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := []string{raw}
	if delim := aliasDelimiter.FindString(raw); delim != "" {
		parts = strings.Split(raw, delim)
	}
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// performerAlias strips a "source:" qualifier such as "iafd: Jane Doe".
func performerAlias(alias string) string {
	if idx := strings.LastIndex(alias, ":"); idx >= 0 {
		return strings.TrimSpace(alias[idx+1:])
	}
	return strings.TrimSpace(alias)
}

// looksLikeDomain reports whether a studio name is a bare site name such as
// "example.com" or "example.co.uk".
func looksLikeDomain(name string) bool {
	return domainPattern.MatchString(strings.TrimSpace(name))
}

// siteRoot keeps only the scheme and host of raw.
func siteRoot(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func singleToken(name string) bool {
	return !strings.Contains(name, " ")
}

func matchesName(search, candidate string) bool {
	return candidate != "" && strings.EqualFold(search, strings.TrimSpace(candidate))
}
