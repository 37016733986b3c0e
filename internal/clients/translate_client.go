package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"

	"github.com/spacesedan/positivipy/config"
)

// GtxTranslateClient talks to the keyless Google translate web endpoint.
type GtxTranslateClient struct {
	Endpoint string
	retry    *RetryClient
}

func NewGtxTranslateClient(cfg config.TranslateConfig, httpCfg config.HTTPClientConfig) *GtxTranslateClient {
	return &GtxTranslateClient{
		Endpoint: cfg.GtxURL,
		retry:    NewRetryClient("GtxTranslateClient", &http.Client{Timeout: httpCfg.Timeout}, httpCfg.MaxRetries),
	}
}

func (c *GtxTranslateClient) WithBackoff(initial, max time.Duration) *GtxTranslateClient {
	c.retry.InitialBackoff = initial
	c.retry.MaxBackoff = max
	return c
}

func (c *GtxTranslateClient) Translate(ctx context.Context, text, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	resp, err := c.retry.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+params.Encode(), nil)
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("[GtxTranslateClient] unexpected status code %d", resp.StatusCode)
	}

	return parseGtxResponse(body)
}

// parseGtxResponse joins the translated chunks of [[["chunk","source",...],...],...].
func parseGtxResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("[GtxTranslateClient] invalid JSON response")
	}
	var sb strings.Builder
	for _, chunk := range gjson.GetBytes(body, "0.#.0").Array() {
		sb.WriteString(chunk.String())
	}
	if sb.Len() == 0 {
		return "", errors.New("[GtxTranslateClient] empty translation")
	}
	return sb.String(), nil
}

// CloudTranslateClient uses the Cloud Translation v2 API with an API key.
type CloudTranslateClient struct {
	service *translate.Service
}

func NewCloudTranslateClient(ctx context.Context, cfg config.TranslateConfig) (*CloudTranslateClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("[CloudTranslateClient] missing GOOGLE_TRANSLATE_API_KEY")
	}
	svc, err := translate.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("[CloudTranslateClient] failed to create service: %w", err)
	}
	return &CloudTranslateClient{service: svc}, nil
}

func (c *CloudTranslateClient) Translate(ctx context.Context, text, target string) (string, error) {
	resp, err := c.service.Translations.List([]string{text}, target).Format("text").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("[CloudTranslateClient] translation failed: %w", err)
	}
	if len(resp.Translations) == 0 {
		return "", errors.New("[CloudTranslateClient] empty translation")
	}
	return resp.Translations[0].TranslatedText, nil
}
