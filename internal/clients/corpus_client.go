package clients

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/spacesedan/positivipy/config"
)

// CorpusClient downloads the raw corpus CSV.
type CorpusClient struct {
	URL   string
	retry *RetryClient
}

func NewCorpusClient(cfg config.CorpusConfig, httpCfg config.HTTPClientConfig) *CorpusClient {
	base := &http.Client{Timeout: httpCfg.Timeout}
	client := base

	if cfg.OAuthTokenURL != "" {
		oauthConf := &clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		client = oauthConf.Client(ctx)
		client.Timeout = httpCfg.Timeout
		slog.Info("[CorpusClient] Using client credentials for corpus source",
			slog.String("token_url", cfg.OAuthTokenURL))
	}

	return &CorpusClient{
		URL:   cfg.URL,
		retry: NewRetryClient("CorpusClient", client, httpCfg.MaxRetries),
	}
}

// WithBackoff overrides the retry schedule; used by tests.
func (c *CorpusClient) WithBackoff(initial, max time.Duration) *CorpusClient {
	c.retry.InitialBackoff = initial
	c.retry.MaxBackoff = max
	return c
}

func (c *CorpusClient) FetchCSV(ctx context.Context) ([]byte, error) {
	start := time.Now()
	resp, err := c.retry.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	})
	if err != nil {
		slog.Error("[CorpusClient] Failed to fetch corpus",
			slog.String("url", c.URL),
			slog.String("error", err.Error()))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[CorpusClient] unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[CorpusClient] failed to read response: %w", err)
	}

	slog.Debug("[CorpusClient] Fetched corpus",
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)))
	return body, nil
}
