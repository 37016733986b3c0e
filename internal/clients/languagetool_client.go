package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf16"

	"golang.org/x/time/rate"

	"github.com/spacesedan/positivipy/config"
	"github.com/spacesedan/positivipy/internal/models"
)

const (
	languageToolCheckPath     = "/v2/check"
	languageToolLanguagesPath = "/v2/languages"
)

type LanguageToolClient struct {
	BaseURL  string
	Language string
	retry    *RetryClient
	limiter  *rate.Limiter
}

func NewLanguageToolClient(cfg config.GrammarConfig, httpCfg config.HTTPClientConfig) *LanguageToolClient {
	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 20
	}
	return &LanguageToolClient{
		BaseURL:  strings.TrimRight(cfg.LanguageToolURL, "/"),
		Language: cfg.Language,
		retry:    NewRetryClient("LanguageToolClient", &http.Client{Timeout: httpCfg.Timeout}, httpCfg.MaxRetries),
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (c *LanguageToolClient) WithBackoff(initial, max time.Duration) *LanguageToolClient {
	c.retry.InitialBackoff = initial
	c.retry.MaxBackoff = max
	return c
}

// Check returns the raw rule matches LanguageTool reports for text.
func (c *LanguageToolClient) Check(ctx context.Context, text string) (*models.LanguageToolResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("[LanguageToolClient] rate limiter: %w", err)
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.Language)

	resp, err := c.retry.Do(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+languageToolCheckPath, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[LanguageToolClient] unexpected status code %d", resp.StatusCode)
	}

	var result models.LanguageToolResponse
	if err := json.Unmarshal(body, &result); err != nil {
		slog.Error("[LanguageToolClient] Failed to unmarshal response",
			slog.String("error", err.Error()),
			getPreview(body))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// Correct applies the first suggested replacement of every match.
func (c *LanguageToolClient) Correct(ctx context.Context, text string) (string, error) {
	result, err := c.Check(ctx, text)
	if err != nil {
		return "", err
	}
	return ApplyReplacements(text, result.Matches), nil
}

// Healthy reports whether the languages endpoint answers.
func (c *LanguageToolClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+languageToolLanguagesPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.retry.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// ApplyReplacements rewrites text back to front so earlier offsets stay valid.
// LanguageTool offsets count UTF-16 code units.
func ApplyReplacements(text string, matches []models.LanguageToolMatch) string {
	units := utf16.Encode([]rune(text))

	sorted := make([]models.LanguageToolMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset > sorted[j].Offset })

	limit := len(units)
	for _, m := range sorted {
		if len(m.Replacements) == 0 {
			continue
		}
		end := m.Offset + m.Length
		// skip overlapping or out of range matches
		if m.Offset < 0 || end > limit || m.Length < 0 {
			continue
		}
		repl := utf16.Encode([]rune(m.Replacements[0].Value))
		next := make([]uint16, 0, len(units)-m.Length+len(repl))
		next = append(next, units[:m.Offset]...)
		next = append(next, repl...)
		next = append(next, units[end:]...)
		units = next
		limit = m.Offset
	}
	return string(utf16.Decode(units))
}
