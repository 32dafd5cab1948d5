package fingerprint

import (
	"testing"

	"bulkscrape/internal/catalog"
)

func durationPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func localScene() catalog.Scene {
	return catalog.Scene{
		ID:       "12",
		Checksum: "abc",
		PHash:    "ph-local",
		OSHash:   "os-local",
		File:     catalog.SceneFile{Duration: durationPtr(600)},
	}
}

func fingerprints(hash, algorithm string, durations ...int) []catalog.Fingerprint {
	out := make([]catalog.Fingerprint, 0, len(durations))
	for i, d := range durations {
		fp := catalog.Fingerprint{Algorithm: "PHASH", Hash: "other", Duration: intPtr(d)}
		if i == 0 {
			fp.Algorithm = algorithm
			fp.Hash = hash
		}
		out = append(out, fp)
	}
	return out
}

func TestMatchAcceptsSingleCandidate(t *testing.T) {
	candidates := []catalog.ScrapedScene{
		{Fingerprints: fingerprints("abc", "MD5", 600, 601, 598, 600)},
		{Fingerprints: fingerprints("zzz", "MD5", 600, 600, 600, 600)},
	}

	result := Match(localScene(), candidates, Policy{DurationToleranceSeconds: 5, DurationMajority: 0.75, MinFingerprints: 3})
	if result.Verdict != Matched {
		t.Fatalf("expected matched verdict, got %s", result.Verdict)
	}
	best, ok := result.Best()
	if !ok {
		t.Fatal("expected best score")
	}
	if best.Index != 0 {
		t.Fatalf("expected candidate 0, got %d", best.Index)
	}
	if best.HashLabel != HashChecksum || !best.Checksum {
		t.Fatalf("expected checksum hit, got %+v", best)
	}
	if best.DurationAgreement != 4 || best.Total != 4 {
		t.Fatalf("expected 4/4 duration agreement, got %d/%d", best.DurationAgreement, best.Total)
	}
	if result.Scores[1].Accepted {
		t.Fatalf("candidate without hash must be rejected: %+v", result.Scores[1])
	}
}

func TestMatchRejectsCandidateWithoutFingerprints(t *testing.T) {
	result := Match(localScene(), []catalog.ScrapedScene{{}}, DefaultPolicy())
	if result.Verdict != NoMatch {
		t.Fatalf("expected no match, got %s", result.Verdict)
	}
	if result.Scores[0].Accepted || result.Scores[0].Total != 0 {
		t.Fatalf("unexpected score: %+v", result.Scores[0])
	}
}

func TestMatchRejectsWithoutHashRegardlessOfDuration(t *testing.T) {
	candidate := catalog.ScrapedScene{Fingerprints: fingerprints("nope", "OSHASH", 600, 600, 600, 600, 600)}
	result := Match(localScene(), []catalog.ScrapedScene{candidate}, DefaultPolicy())
	if result.Verdict != NoMatch {
		t.Fatalf("expected no match, got %s", result.Verdict)
	}
	if result.Scores[0].DurationAgreement != 5 {
		t.Fatalf("expected durations to agree, got %d", result.Scores[0].DurationAgreement)
	}
}

func TestMatchRequiresMinimumFingerprints(t *testing.T) {
	candidate := catalog.ScrapedScene{Fingerprints: fingerprints("abc", "MD5", 600, 600)}
	result := Match(localScene(), []catalog.ScrapedScene{candidate}, Policy{DurationMajority: 0.5, MinFingerprints: 3})
	if result.Verdict != NoMatch {
		t.Fatalf("expected no match below minimum count, got %s", result.Verdict)
	}
}

func TestMatchRequiresDurationMajority(t *testing.T) {
	candidate := catalog.ScrapedScene{Fingerprints: fingerprints("abc", "MD5", 600, 900, 900, 900)}
	result := Match(localScene(), []catalog.ScrapedScene{candidate}, Policy{DurationToleranceSeconds: 5, DurationMajority: 0.5, MinFingerprints: 3})
	if result.Verdict != NoMatch {
		t.Fatalf("expected no match, got %s (%s)", result.Verdict, result.Scores[0].Reason)
	}
	if result.Scores[0].DurationAgreement != 1 {
		t.Fatalf("expected 1 agreeing duration, got %d", result.Scores[0].DurationAgreement)
	}
}

func TestMatchReportsAmbiguous(t *testing.T) {
	candidates := []catalog.ScrapedScene{
		{Fingerprints: fingerprints("abc", "MD5", 600, 600, 600)},
		{Fingerprints: fingerprints("ph-local", "PHASH", 600, 600, 600)},
	}
	result := Match(localScene(), candidates, DefaultPolicy())
	if result.Verdict != Ambiguous {
		t.Fatalf("expected ambiguous, got %s", result.Verdict)
	}
	if len(result.Accepted) != 2 {
		t.Fatalf("expected two accepted candidates, got %v", result.Accepted)
	}
	if _, ok := result.Best(); ok {
		t.Fatal("ambiguous result must not expose a best candidate")
	}
}

func TestMatchLastHashHitSetsLabel(t *testing.T) {
	candidate := catalog.ScrapedScene{Fingerprints: []catalog.Fingerprint{
		{Algorithm: "OSHASH", Hash: "os-local", Duration: intPtr(600)},
		{Algorithm: "PHASH", Hash: "ph-local", Duration: intPtr(600)},
		{Algorithm: "MD5", Hash: "abc", Duration: intPtr(600)},
	}}
	result := Match(localScene(), []catalog.ScrapedScene{candidate}, DefaultPolicy())
	score := result.Scores[0]
	if !score.Checksum || !score.PHash || !score.OSHash {
		t.Fatalf("expected every hash flag, got %+v", score)
	}
	if score.HashLabel != HashChecksum {
		t.Fatalf("expected label from last matching fingerprint, got %q", score.HashLabel)
	}
}

func TestMatchIgnoresBlankLocalHashes(t *testing.T) {
	scene := catalog.Scene{ID: "1", File: catalog.SceneFile{Duration: durationPtr(600)}}
	candidate := catalog.ScrapedScene{Fingerprints: []catalog.Fingerprint{
		{Hash: "", Duration: intPtr(600)},
		{Hash: "", Duration: intPtr(600)},
		{Hash: "", Duration: intPtr(600)},
	}}
	result := Match(scene, []catalog.ScrapedScene{candidate}, DefaultPolicy())
	if result.Verdict != NoMatch {
		t.Fatalf("blank hashes must not match, got %s", result.Verdict)
	}
}

func TestMatchSkipsMissingDurations(t *testing.T) {
	scene := localScene()
	scene.File.Duration = nil
	candidate := catalog.ScrapedScene{Fingerprints: fingerprints("abc", "MD5", 600, 600, 600)}
	result := Match(scene, []catalog.ScrapedScene{candidate}, DefaultPolicy())
	if result.Scores[0].DurationAgreement != 0 {
		t.Fatalf("expected no agreement without local duration, got %d", result.Scores[0].DurationAgreement)
	}
	if result.Verdict != NoMatch {
		t.Fatalf("expected no match, got %s", result.Verdict)
	}
}

func TestLinkCopiesStashIDs(t *testing.T) {
	remote := "remote-scene"
	performerRemote := "remote-performer"
	candidate := catalog.ScrapedScene{
		RemoteSiteID: &remote,
		Performers: []catalog.ScrapedPerformer{
			{RemoteSiteID: &performerRemote},
			{},
		},
	}

	linked := Link(candidate, "https://stashdb.org/graphql")
	if len(linked.StashIDs) != 1 || linked.StashIDs[0].StashID != remote {
		t.Fatalf("unexpected scene stash ids: %+v", linked.StashIDs)
	}
	if len(linked.Performers[0].StashIDs) != 1 || linked.Performers[0].StashIDs[0].StashID != performerRemote {
		t.Fatalf("unexpected performer stash ids: %+v", linked.Performers[0].StashIDs)
	}
	if len(linked.Performers[1].StashIDs) != 0 {
		t.Fatalf("performer without remote id must stay unlinked: %+v", linked.Performers[1].StashIDs)
	}
	if candidate.StashIDs != nil || candidate.Performers[0].StashIDs != nil {
		t.Fatal("Link must not mutate its input")
	}
}
