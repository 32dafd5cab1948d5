package fingerprint

import (
	"fmt"
	"math"
	"strings"

	"bulkscrape/internal/catalog"
)

// Verdict is the outcome of matching one local scene.
type Verdict int

const (
	NoMatch Verdict = iota
	Matched
	Ambiguous
)

func (v Verdict) String() string {
	switch v {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no_match"
	}
}

// Hash labels recorded on a Score.
const (
	HashChecksum = "checksum"
	HashPHash    = "phash"
	HashOSHash   = "oshash"
)

// Score is the per-candidate accumulator.
type Score struct {
	Index             int
	Checksum          bool
	PHash             bool
	OSHash            bool
	HashLabel         string
	DurationAgreement int
	Total             int
	Accepted          bool
	Reason            string
}

// HasHash reports whether any hash matched.
func (s Score) HasHash() bool {
	return s.Checksum || s.PHash || s.OSHash
}

// MatchResult is the verdict for one local scene against a candidate set.
type MatchResult struct {
	Verdict  Verdict
	Scores   []Score
	Accepted []int
}

// Best returns the score of the single accepted candidate.
func (r MatchResult) Best() (Score, bool) {
	if r.Verdict != Matched || len(r.Accepted) != 1 {
		return Score{}, false
	}
	return r.Scores[r.Accepted[0]], true
}

// Match scores every candidate against scene and returns the verdict.
func Match(scene catalog.Scene, candidates []catalog.ScrapedScene, policy Policy) MatchResult {
	policy = policy.normalized()
	result := MatchResult{Scores: make([]Score, 0, len(candidates))}
	for i := range candidates {
		score := scoreCandidate(scene, candidates[i], policy)
		score.Index = i
		if score.Accepted {
			result.Accepted = append(result.Accepted, i)
		}
		result.Scores = append(result.Scores, score)
	}
	switch len(result.Accepted) {
	case 0:
		result.Verdict = NoMatch
	case 1:
		result.Verdict = Matched
	default:
		result.Verdict = Ambiguous
	}
	return result
}

func scoreCandidate(scene catalog.Scene, candidate catalog.ScrapedScene, policy Policy) Score {
	score := Score{Total: len(candidate.Fingerprints)}
	localDuration, hasLocalDuration := sceneDuration(scene)

	for _, fp := range candidate.Fingerprints {
		if hashEquals(fp, "MD5", scene.Checksum) {
			score.Checksum = true
			score.HashLabel = HashChecksum
		}
		if hashEquals(fp, "PHASH", scene.PHash) {
			score.PHash = true
			score.HashLabel = HashPHash
		}
		if hashEquals(fp, "OSHASH", scene.OSHash) {
			score.OSHash = true
			score.HashLabel = HashOSHash
		}
		if !hasLocalDuration || fp.Duration == nil || *fp.Duration == 0 {
			continue
		}
		if math.Abs(localDuration-float64(*fp.Duration)) <= policy.DurationToleranceSeconds {
			score.DurationAgreement++
		}
	}

	switch {
	case score.Total == 0:
		score.Reason = "candidate has no fingerprints"
	case !score.HasHash():
		score.Reason = "no hash matched"
	case score.Total < policy.MinFingerprints:
		score.Reason = fmt.Sprintf("%d fingerprints below minimum %d", score.Total, policy.MinFingerprints)
	case float64(score.DurationAgreement)/float64(score.Total) < policy.DurationMajority:
		score.Reason = fmt.Sprintf("duration agreement %d/%d below %.2f", score.DurationAgreement, score.Total, policy.DurationMajority)
	default:
		score.Accepted = true
		score.Reason = fmt.Sprintf("%s match, duration %d/%d", score.HashLabel, score.DurationAgreement, score.Total)
	}
	return score
}

// hashEquals compares a remote fingerprint with one local hash. A fingerprint
// that names its algorithm is only compared with the local hash of that
// algorithm; blank hashes never match.
func hashEquals(fp catalog.Fingerprint, algorithm, local string) bool {
	local = strings.TrimSpace(local)
	remote := strings.TrimSpace(fp.Hash)
	if local == "" || remote == "" {
		return false
	}
	if algo := strings.TrimSpace(fp.Algorithm); algo != "" && !strings.EqualFold(algo, algorithm) {
		return false
	}
	return remote == local
}

func sceneDuration(scene catalog.Scene) (float64, bool) {
	if scene.File.Duration == nil || *scene.File.Duration == 0 {
		return 0, false
	}
	return *scene.File.Duration, true
}
