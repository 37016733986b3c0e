// Package translation wraps a translation provider so failures fall back to
// the untranslated text.
package translation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/positivipy/internal/models"
	"github.com/spacesedan/positivipy/internal/monitoring"
)

const (
	DefaultLanguage = "en"
	defaultTimeout  = 10 * time.Second
)

var errEmptyTranslation = errors.New("provider returned an empty translation")

// Provider is implemented by clients.GtxTranslateClient and clients.CloudTranslateClient.
type Provider interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

type Translator struct {
	name     string
	provider Provider
	timeout  time.Duration
}

func NewTranslator(name string, provider Provider) *Translator {
	return &Translator{name: name, provider: provider, timeout: defaultTimeout}
}

func (t *Translator) WithTimeout(d time.Duration) *Translator {
	t.timeout = d
	return t
}

// Translate returns the translated text and true, or text and false when no
// translation could be produced.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, bool) {
	target = strings.TrimSpace(target)
	if t.provider == nil || target == "" || strings.TrimSpace(text) == "" {
		return text, false
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	translated, err := t.provider.Translate(ctx, text, target)
	if err == nil && strings.TrimSpace(translated) == "" {
		err = errEmptyTranslation
	}
	if err != nil {
		monitoring.ExternalCallFailures.WithLabelValues(t.name).Inc()
		err = models.NewError(models.TranslationError, "translation.Translate", err)
		slog.Warn("[Translation] Translation failed, showing original text",
			slog.String("provider", t.name),
			slog.String("target", target),
			slog.String("error", err.Error()))
		return text, false
	}
	return translated, true
}

// AlternateLanguage picks the language the translate link points at.
func AlternateLanguage(lang string) string {
	switch strings.ToLower(lang) {
	case "en":
		return "es"
	case "es":
		return "en"
	default:
		return DefaultLanguage
	}
}
