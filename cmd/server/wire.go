package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/positivipy/config"
	"github.com/spacesedan/positivipy/internal/clients"
	"github.com/spacesedan/positivipy/internal/corpus"
	"github.com/spacesedan/positivipy/internal/db"
	"github.com/spacesedan/positivipy/internal/generator"
	"github.com/spacesedan/positivipy/internal/grammar"
	"github.com/spacesedan/positivipy/internal/monitoring"
	"github.com/spacesedan/positivipy/internal/quotes"
	"github.com/spacesedan/positivipy/internal/server"
	"github.com/spacesedan/positivipy/internal/translation"
)

type app struct {
	server  *server.Server
	closers []func()
}

// Close releases clients in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg config.AppConfig) (*app, error) {
	a := &app{}

	source := a.corpusSource(ctx, cfg)
	gen := generator.NewCache(cfg.Generator.ModelCacheSize, cfg.Generator.ModelCacheTTL, generator.DefaultOptions())
	stores, closeStores := db.OpenStores(ctx, cfg, cfg.Sinks)
	a.closers = append(a.closers, closeStores)
	recorder := db.NewRecorder(stores...)

	svc := quotes.NewService(source, gen, corrector(ctx, cfg), translator(ctx, cfg), recorder, quotes.Options{
		MaxAttempts:      cfg.Generator.MaxAttempts,
		FallbackQuote:    cfg.Generator.FallbackQuote,
		PositivityFilter: cfg.Generator.PositivityFilter,
	})

	srv, err := server.NewServer(svc, recorder)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("building server: %w", err)
	}
	a.server = srv
	return a, nil
}

func (a *app) corpusSource(ctx context.Context, cfg config.AppConfig) *corpus.Source {
	fetcher := clients.NewCorpusClient(cfg.Corpus, cfg.HTTPClient)
	if cfg.Valkey.Address == "" || cfg.Corpus.CacheTTL <= 0 {
		return corpus.NewSource(fetcher)
	}

	vc, err := clients.NewValkeyClient(ctx, cfg.Valkey)
	if err != nil {
		slog.Warn("[Main] Corpus cache disabled", slog.String("error", err.Error()))
		return corpus.NewSource(fetcher)
	}
	a.closers = append(a.closers, vc.Close)
	return corpus.NewSource(fetcher, corpus.WithCache(vc, cfg.Corpus.CacheTTL, cfg.Corpus.URL))
}

func corrector(ctx context.Context, cfg config.AppConfig) *grammar.Corrector {
	switch cfg.Grammar.Provider {
	case "languagetool":
		lt := clients.NewLanguageToolClient(cfg.Grammar, cfg.HTTPClient)
		c := grammar.NewCorrector("languagetool", lt)
		go monitoring.MonitorHealth(ctx, "languagetool", lt, cfg.Grammar.HealthInterval, c.Health())
		return c
	case "openai":
		client, err := clients.NewOpenAIClient(cfg.Grammar)
		if err != nil {
			slog.Warn("[Main] Grammar correction disabled", slog.String("error", err.Error()))
			return grammar.NewCorrector("none", nil)
		}
		return grammar.NewCorrector("openai", client)
	default:
		return grammar.NewCorrector("none", nil)
	}
}

func translator(ctx context.Context, cfg config.AppConfig) *translation.Translator {
	switch cfg.Translate.Provider {
	case "gtx":
		return translation.NewTranslator("gtx", clients.NewGtxTranslateClient(cfg.Translate, cfg.HTTPClient))
	case "google":
		client, err := clients.NewCloudTranslateClient(ctx, cfg.Translate)
		if err != nil {
			slog.Warn("[Main] Translation disabled", slog.String("error", err.Error()))
			return translation.NewTranslator("none", nil)
		}
		return translation.NewTranslator("google", client)
	default:
		return translation.NewTranslator("none", nil)
	}
}
