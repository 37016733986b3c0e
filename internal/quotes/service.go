// Package quotes runs the per-request pipeline: load the corpus, sample and
// repair a sentence, attribute it, translate it and record it.
package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/positivipy/internal/attribution"
	"github.com/spacesedan/positivipy/internal/cleaner"
	"github.com/spacesedan/positivipy/internal/models"
	"github.com/spacesedan/positivipy/internal/monitoring"
	"github.com/spacesedan/positivipy/internal/sentiment"
	"github.com/spacesedan/positivipy/internal/translation"
)

const (
	outcomeGenerated = "generated"
	outcomeFallback  = "fallback"
	outcomeRedisplay = "redisplay"
)

type CorpusLoader interface {
	Load(ctx context.Context) (models.Corpus, error)
}

// Generator samples one raw sentence from a model trained on text.
type Generator interface {
	Generate(text string) (string, error)
}

type Corrector interface {
	Correct(ctx context.Context, text string) string
}

type Translator interface {
	Translate(ctx context.Context, text, target string) (string, bool)
}

type Recorder interface {
	RecordQuote(ctx context.Context, quote string, at time.Time)
}

type Options struct {
	MaxAttempts      int
	FallbackQuote    string
	PositivityFilter bool
}

type Service struct {
	corpus     CorpusLoader
	generator  Generator
	corrector  Corrector
	translator Translator
	recorder   Recorder
	opts       Options
	now        func() time.Time
}

func NewService(corpus CorpusLoader, gen Generator, corrector Corrector, translator Translator, recorder Recorder, opts Options) *Service {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	return &Service{
		corpus:     corpus,
		generator:  gen,
		corrector:  corrector,
		translator: translator,
		recorder:   recorder,
		opts:       opts,
		now:        time.Now,
	}
}

// NewQuote generates a fresh quote rendered in lang. Only a corpus failure is
// returned; every later stage degrades instead.
func (s *Service) NewQuote(ctx context.Context, lang string) (models.QuoteResult, error) {
	lang = normalizeLanguage(lang)

	corpus, err := s.corpus.Load(ctx)
	if err != nil {
		monitoring.ExternalCallFailures.WithLabelValues("corpus").Inc()
		return models.QuoteResult{}, fmt.Errorf("loading corpus: %w", err)
	}

	text, fallback := s.generate(ctx, corpus)

	result := models.QuoteResult{
		Text:      text,
		Language:  translation.DefaultLanguage,
		Fallback:  fallback,
		Matches:   attribution.Attribute(text, corpus),
		Sentiment: sentiment.Analyze(text),
		CreatedAt: s.now(),
	}
	if lang != translation.DefaultLanguage {
		s.translate(ctx, &result, lang)
	}

	s.recorder.RecordQuote(ctx, result.Text, result.CreatedAt)

	if fallback {
		monitoring.QuotesServed.WithLabelValues(outcomeFallback).Inc()
	} else {
		monitoring.QuotesServed.WithLabelValues(outcomeGenerated).Inc()
	}
	return result, nil
}

// Redisplay shows an existing quote again with the attributions the caller
// already has, translating it when asked to or when lang is not English.
func (s *Service) Redisplay(ctx context.Context, quote, lang string, translate bool, matches []models.Match) models.QuoteResult {
	lang = normalizeLanguage(lang)

	result := models.QuoteResult{
		Text:      quote,
		Language:  translation.DefaultLanguage,
		Matches:   padMatches(matches),
		Sentiment: sentiment.Analyze(quote),
		CreatedAt: s.now(),
	}
	if translate || lang != translation.DefaultLanguage {
		s.translate(ctx, &result, lang)
	}

	s.recorder.RecordQuote(ctx, result.Text, result.CreatedAt)
	monitoring.QuotesServed.WithLabelValues(outcomeRedisplay).Inc()
	return result
}

func (s *Service) generate(ctx context.Context, corpus models.Corpus) (string, bool) {
	joined := corpus.JoinedText()

	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		monitoring.GenerationAttempts.Inc()

		raw, err := s.generator.Generate(joined)
		if err != nil {
			slog.Debug("[Quotes] Sampling failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			continue
		}
		if cleaner.IsEmpty(raw) {
			continue
		}

		quote := cleaner.Clean(raw)
		if cleaner.IsEmpty(quote) {
			continue
		}
		quote = s.corrector.Correct(ctx, quote)

		if s.opts.PositivityFilter {
			if score := sentiment.Analyze(quote); score.Label == sentiment.LabelNegative {
				slog.Debug("[Quotes] Discarding negative candidate",
					slog.Int("attempt", attempt),
					slog.Float64("score", score.Score))
				continue
			}
		}
		return quote, false
	}

	err := models.NewError(models.GenerationError, "quotes.generate",
		fmt.Errorf("no usable sentence after %d attempts", s.opts.MaxAttempts))
	slog.Warn("[Quotes] Serving fallback quote", slog.String("error", err.Error()))
	return s.opts.FallbackQuote, true
}

func (s *Service) translate(ctx context.Context, result *models.QuoteResult, lang string) {
	if translated, ok := s.translator.Translate(ctx, result.Text, lang); ok {
		result.Text = translated
		result.Language = lang
		result.Translated = true
	}
}

func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return translation.DefaultLanguage
	}
	return lang
}

func padMatches(matches []models.Match) []models.Match {
	out := make([]models.Match, 0, attribution.Surfaced)
	for _, m := range matches {
		if len(out) == attribution.Surfaced {
			break
		}
		out = append(out, m)
	}
	for len(out) < attribution.Surfaced {
		out = append(out, models.PlaceholderMatch())
	}
	return out
}
