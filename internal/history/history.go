// Package history keeps a compact, bounded audit trail of match runs per
// buyer. It is a thin collaborator of the engine: records are appended
// fire-and-forget and capped to the most recent N entries per buyer.
package history

import (
	"context"
	"time"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

// DefaultCap is the per-buyer record limit when none is configured.
const DefaultCap = 50

// Record is the immutable summary of one match run.
type Record struct {
	ID          string             `json:"id"`
	BuyerID     string             `json:"buyer_id"`
	Timestamp   time.Time          `json:"timestamp"`
	MatchCount  int                `json:"match_count"`
	Confidence  float64            `json:"confidence"`
	Methodology domain.Methodology `json:"methodology"`
	TopMatch    string             `json:"top_match,omitempty"`
}

// Store persists match-run summaries. Implementations must keep at most their
// configured cap of records per buyer, newest first.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Recent(ctx context.Context, buyerID string, n int) ([]Record, error)
}
