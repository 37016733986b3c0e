package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/spacesedan/positivipy/internal/models"
)

const cacheKeyPrefix = "positivipy:corpus:"

type Fetcher interface {
	FetchCSV(ctx context.Context) ([]byte, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Source fetches the corpus for every request. Concurrent loads share one
// download, and the raw CSV may be cached for a TTL.
type Source struct {
	fetcher  Fetcher
	cache    Cache
	cacheTTL time.Duration
	cacheKey string
	group    singleflight.Group
}

type Option func(*Source)

// WithCache enables the shared raw CSV cache. A zero TTL leaves it disabled.
func WithCache(cache Cache, ttl time.Duration, sourceURL string) Option {
	return func(s *Source) {
		if cache == nil || ttl <= 0 {
			return
		}
		sum := sha256.Sum256([]byte(sourceURL))
		s.cache = cache
		s.cacheTTL = ttl
		s.cacheKey = cacheKeyPrefix + hex.EncodeToString(sum[:8])
	}
}

func NewSource(fetcher Fetcher, opts ...Option) *Source {
	s := &Source{fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Load(ctx context.Context) (models.Corpus, error) {
	// the download is shared, so one caller going away must not fail the rest
	raw, err, shared := s.group.Do("corpus", func() (interface{}, error) {
		return s.rawCSV(context.WithoutCancel(ctx))
	})
	if err != nil {
		return models.Corpus{}, models.NewError(models.FetchError, "corpus.Load", err)
	}
	if shared {
		slog.Debug("[CorpusSource] Shared in-flight corpus download")
	}

	c, err := ParseBytes(raw.([]byte))
	if err != nil {
		return models.Corpus{}, models.NewError(models.FetchError, "corpus.Parse", err)
	}
	slog.Debug("[CorpusSource] Corpus loaded", slog.Int("posts", c.Len()))
	return c, nil
}

func (s *Source) rawCSV(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		b, ok, err := s.cache.Get(ctx, s.cacheKey)
		switch {
		case err != nil:
			slog.Warn("[CorpusSource] Cache read failed, fetching corpus",
				slog.String("error", err.Error()))
		case ok:
			slog.Debug("[CorpusSource] Corpus cache hit")
			return b, nil
		}
	}

	b, err := s.fetcher.FetchCSV(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cacheKey, b, s.cacheTTL); err != nil {
			slog.Warn("[CorpusSource] Failed to cache corpus",
				slog.String("error", err.Error()))
		}
	}
	return b, nil
}
