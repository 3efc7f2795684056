package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/domain"
)

const appendTimeout = 5 * time.Second

// Recorder turns match responses into history records. Failures are logged
// and swallowed: the audit trail never affects a match request's outcome.
type Recorder struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a recorder backed by the given store.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{store: store, logger: logger, now: time.Now}
}

// Record archives a summary of the response for the buyer.
func (r *Recorder) Record(buyerID string, resp *domain.MatchingResponse) {
	if r == nil || r.store == nil || resp == nil {
		return
	}

	rec := Record{
		ID:          uuid.NewString(),
		BuyerID:     buyerID,
		Timestamp:   r.now().UTC(),
		MatchCount:  len(resp.Matches),
		Confidence:  resp.Confidence,
		Methodology: resp.Methodology,
		TopMatch:    resp.TopMatch(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := r.store.Append(ctx, rec); err != nil {
		r.logger.Warn("recording match history failed",
			zap.String("buyer_id", buyerID),
			zap.Error(err),
		)
	}
}
