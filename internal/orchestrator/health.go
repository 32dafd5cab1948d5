package orchestrator

import "sort"

// DomainHealth remembers which hosts had a URL scraper during a batch. A host
// is skipped once it is known missing, unless it has also worked before.
type DomainHealth struct {
	working map[string]struct{}
	missing map[string]struct{}
}

func NewDomainHealth() *DomainHealth {
	return &DomainHealth{
		working: make(map[string]struct{}),
		missing: make(map[string]struct{}),
	}
}

// ShouldSkip reports whether host is known to have no scraper.
func (h *DomainHealth) ShouldSkip(host string) bool {
	if _, ok := h.working[host]; ok {
		return false
	}
	_, missing := h.missing[host]
	return missing
}

func (h *DomainHealth) MarkWorking(host string) { h.working[host] = struct{}{} }

func (h *DomainHealth) MarkMissing(host string) { h.missing[host] = struct{}{} }

// Missing returns the hosts without a scraper that never worked, sorted.
func (h *DomainHealth) Missing() []string {
	out := make([]string, 0, len(h.missing))
	for host := range h.missing {
		if _, ok := h.working[host]; ok {
			continue
		}
		out = append(out, host)
	}
	sort.Strings(out)
	return out
}
