package fingerprint

// Policy holds the acceptance thresholds for a candidate.
type Policy struct {
	// DurationToleranceSeconds is the largest |local - remote| duration
	// difference that still counts as agreement.
	DurationToleranceSeconds float64
	// DurationMajority is the fraction of a candidate's fingerprints that must
	// agree on duration.
	DurationMajority float64
	// MinFingerprints is the smallest fingerprint count a candidate may have.
	MinFingerprints int
}

// DefaultPolicy returns the thresholds used when configuration leaves them unset.
func DefaultPolicy() Policy {
	return Policy{
		DurationToleranceSeconds: 10,
		DurationMajority:         0.8,
		MinFingerprints:          3,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.DurationToleranceSeconds < 0 {
		p.DurationToleranceSeconds = d.DurationToleranceSeconds
	}
	if p.DurationMajority <= 0 || p.DurationMajority > 1 {
		p.DurationMajority = d.DurationMajority
	}
	if p.MinFingerprints <= 0 {
		p.MinFingerprints = d.MinFingerprints
	}
	return p
}
