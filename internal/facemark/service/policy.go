package service

// DefaultThreshold is the default acceptance threshold on the recognizer's
// 0–100 dissimilarity scale.  Overridable via config and the attend flag.
const DefaultThreshold = 70.0

type Decision int

const (
	DecisionRejected Decision = iota
	DecisionAccepted
)

// Rejection reasons, surfaced in feedback for diagnostics.  Both reasons
// map to the same Rejected outcome; "enrolled but model stale" is not
// distinguished from "never enrolled".
const (
	ReasonScoreTooHigh = "score above threshold"
	ReasonUnknownLabel = "label not in directory"
)

// Verdict is the policy outcome for one observation.
type Verdict struct {
	Decision Decision
	Identity IdentityInfo // valid only when Accepted
	Reason   string       // set only when Rejected
}

// Decide is pure: accept iff the label resolves in the directory AND the
// dissimilarity score is strictly below the threshold.  A score equal to
// the threshold is rejected.
func Decide(dir *Directory, label int64, score, threshold float64) Verdict {
	if score >= threshold {
		return Verdict{Decision: DecisionRejected, Reason: ReasonScoreTooHigh}
	}
	info, ok := dir.Lookup(label)
	if !ok {
		return Verdict{Decision: DecisionRejected, Reason: ReasonUnknownLabel}
	}
	return Verdict{Decision: DecisionAccepted, Identity: info}
}
