package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/broncospizza/orders-api/internal/pkg/logger"
	"github.com/broncospizza/orders-api/internal/pkg/metrics"
)

// Pinger wraps the PingContext method.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DBHealthChecker monitors the health of the database connection and
// feeds both the /health endpoint and the db_up gauge.
type DBHealthChecker struct {
	pinger        Pinger
	logger        logger.Logger
	isHealthy     atomic.Bool
	checkInterval time.Duration
	checkTimeout  time.Duration
}

// NewDBHealthChecker creates a new DBHealthChecker. It does not start
// the monitoring.
func NewDBHealthChecker(pinger Pinger, logger logger.Logger, checkInterval, checkTimeout time.Duration) *DBHealthChecker {
	return &DBHealthChecker{
		pinger:        pinger,
		logger:        logger,
		checkInterval: checkInterval,
		checkTimeout:  checkTimeout,
	}
}

// Start begins the continuous health monitoring in a background
// goroutine. The initial check runs synchronously to set the state
// before the server accepts traffic.
func (hc *DBHealthChecker) Start(ctx context.Context) {
	hc.logger.Infow("starting DB health checker")
	hc.checkHealth(ctx)

	go func() {
		ticker := time.NewTicker(hc.checkInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hc.checkHealth(ctx)
			case <-ctx.Done():
				hc.logger.Infow("stopping DB health checker")
				return
			}
		}
	}()
}

// IsHealthy returns the current health status of the database.
func (hc *DBHealthChecker) IsHealthy() bool {
	return hc.isHealthy.Load()
}

// checkHealth performs a single check and logs only on transitions.
func (hc *DBHealthChecker) checkHealth(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, hc.checkTimeout)
	defer cancel()

	err := hc.pinger.PingContext(pingCtx)
	wasHealthy := hc.isHealthy.Load()

	if err != nil {
		metrics.DBUptime.Set(0)
		if wasHealthy {
			hc.logger.Errorw("database connection lost", "error", err)
			hc.isHealthy.Store(false)
		}
		return
	}

	metrics.DBUptime.Set(1)
	if !wasHealthy {
		hc.logger.Infow("database connection restored")
		hc.isHealthy.Store(true)
	}
}
