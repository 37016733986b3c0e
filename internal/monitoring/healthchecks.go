package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_INTERVAL = 15 * time.Second

// HealthChecker is implemented by providers that expose a cheap liveness probe.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// MonitorHealth probes the checker every interval and stores the result in
// healthy until ctx is cancelled. The first probe runs immediately.
func MonitorHealth(ctx context.Context, name string, checker HealthChecker, interval time.Duration, healthy *atomic.Bool) {
	if interval <= 0 {
		interval = HEALTHCHECK_INTERVAL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		isHealthy := checker.Healthy(probeCtx)
		was := healthy.Swap(isHealthy)
		if isHealthy {
			ProviderHealthy.WithLabelValues(name).Set(1)
		} else {
			ProviderHealthy.WithLabelValues(name).Set(0)
		}

		switch {
		case !isHealthy:
			slog.Warn("[HealthCheck] Provider is unhealthy", slog.String("provider", name))
		case !was:
			slog.Info("[HealthCheck] Provider recovered", slog.String("provider", name))
		}
	}

	probe()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probe()
		}
	}
}
