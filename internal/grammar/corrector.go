// Package grammar wraps a grammar provider so correction is always best
// effort.
package grammar

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spacesedan/positivipy/internal/models"
	"github.com/spacesedan/positivipy/internal/monitoring"
)

const defaultTimeout = 10 * time.Second

// Provider is implemented by clients.LanguageToolClient and clients.OpenAIClient.
type Provider interface {
	Correct(ctx context.Context, text string) (string, error)
}

type Corrector struct {
	name     string
	provider Provider
	healthy  *atomic.Bool
	timeout  time.Duration
}

// NewCorrector returns a Corrector that starts out healthy. A nil provider
// yields a pass-through corrector.
func NewCorrector(name string, provider Provider) *Corrector {
	healthy := &atomic.Bool{}
	healthy.Store(true)
	return &Corrector{
		name:     name,
		provider: provider,
		healthy:  healthy,
		timeout:  defaultTimeout,
	}
}

func (c *Corrector) WithTimeout(d time.Duration) *Corrector {
	c.timeout = d
	return c
}

// Health exposes the flag the health monitor writes to.
func (c *Corrector) Health() *atomic.Bool {
	return c.healthy
}

// Correct returns the corrected text, or text unchanged when the provider is
// missing, unhealthy or fails.
func (c *Corrector) Correct(ctx context.Context, text string) string {
	if c.provider == nil || strings.TrimSpace(text) == "" {
		return text
	}
	if !c.healthy.Load() {
		slog.Debug("[Grammar] Provider marked unhealthy, skipping correction", slog.String("provider", c.name))
		return text
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	corrected, err := c.provider.Correct(ctx, text)
	if err != nil {
		monitoring.ExternalCallFailures.WithLabelValues(c.name).Inc()
		err = models.NewError(models.CorrectionError, "grammar.Correct", err)
		slog.Warn("[Grammar] Correction failed, keeping original text",
			slog.String("provider", c.name),
			slog.String("error", err.Error()))
		return text
	}
	if strings.TrimSpace(corrected) == "" {
		return text
	}
	return corrected
}
