// Package fingerprint decides whether a stash-box candidate is the same
// physical scene as a local scene.
//
// Match scores every candidate on hash equality (checksum, perceptual hash,
// alternate hash) and on how many of the candidate's fingerprints agree with
// the local file duration, then reports a verdict: no match, exactly one
// match, or ambiguous. The package does no I/O and never mutates its inputs;
// Link returns a copy of the accepted candidate carrying registry stash ids.
package fingerprint
