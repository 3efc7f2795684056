package engine

import "github.com/debnit/MsmeBazaar-sub001/internal/remote"

// Outcome is the fallback controller's decision about a remote scoring
// attempt. It is a pure function of the call result and the configured
// confidence thresholds; no mutable health state is involved.
type Outcome int

const (
	// OutcomeAccepted means the remote result is used as-is.
	OutcomeAccepted Outcome = iota
	// OutcomeHybrid means the remote result is blended with heuristics.
	OutcomeHybrid
	// OutcomeRejected means the remote result is discarded (or never
	// arrived) and heuristics alone produce the response.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeHybrid:
		return "hybrid"
	default:
		return "rejected"
	}
}

// decide gates the remote result on its self-reported confidence. A failed
// call (absence of a result) always rejects; absence is distinct from low
// confidence, but both end on the heuristic path.
func decide(result *remote.ScoreResult, err error, cfg Config) Outcome {
	if err != nil || result == nil {
		return OutcomeRejected
	}

	switch {
	case result.Confidence >= cfg.FallbackThreshold:
		return OutcomeAccepted
	case result.Confidence >= cfg.HybridThreshold:
		return OutcomeHybrid
	default:
		return OutcomeRejected
	}
}
