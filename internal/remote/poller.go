package remote

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/debnit/MsmeBazaar-sub001/internal/utils"
)

const defaultPollInterval = 30 * time.Second

// Poller periodically checks the scoring service's health endpoint. It only
// feeds the observability surface; individual scoring requests are never
// gated on its result.
type Poller struct {
	client   *Client
	logger   *zap.Logger
	interval time.Duration
}

// NewPoller creates a health poller. A non-positive interval falls back to
// the default.
func NewPoller(client *Client, logger *zap.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{client: client, logger: logger, interval: interval}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	wasHealthy := p.client.Healthy()

	for {
		status, err := p.client.Health(ctx)
		healthy := err == nil

		if healthy != wasHealthy {
			if healthy {
				p.logger.Info("remote scorer recovered",
					zap.String("status", status.Status),
					zap.String("model_version", status.ModelVersion),
				)
			} else {
				p.logger.Warn("remote scorer unhealthy", zap.Error(err))
			}
			wasHealthy = healthy
		} else if healthy {
			p.logger.Debug("remote scorer health",
				zap.String("status", status.Status),
				zap.String("model_version", status.ModelVersion),
				zap.String("last_update", status.LastUpdate),
			)
		}

		if err := utils.WaitFor(ctx, p.interval); err != nil {
			return err
		}
	}
}
