package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// RetryClient retries transport failures and 5xx responses with exponential backoff.
type RetryClient struct {
	Name           string
	Client         *http.Client
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func NewRetryClient(name string, client *http.Client, maxRetries int) *RetryClient {
	if maxRetries <= 0 {
		maxRetries = MAX_RETRIES
	}
	return &RetryClient{
		Name:           name,
		Client:         client,
		MaxRetries:     maxRetries,
		InitialBackoff: INITIAL_BACKOFF,
		MaxBackoff:     MAX_BACKOFF,
	}
}

// Do builds a fresh request per attempt so request bodies can be replayed.
func (r *RetryClient) Do(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	var resp *http.Response
	var err error
	backoff := r.InitialBackoff

	for attempt := 0; attempt < r.MaxRetries; attempt++ {
		req, buildErr := build(ctx)
		if buildErr != nil {
			return nil, fmt.Errorf("failed to build request: %w", buildErr)
		}
		req.Header.Set("User-Agent", USER_AGENT)

		resp, err = r.Client.Do(req)
		if err == nil && resp.StatusCode < 500 {
			return resp, nil
		}

		slog.Warn(fmt.Sprintf("[%s] Request failed, will retry", r.Name),
			slog.Int("attempt", attempt+1),
			slog.String("error", errMsg(err, resp)))

		if resp != nil {
			resp.Body.Close()
		}

		if attempt == r.MaxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > r.MaxBackoff {
			backoff = r.MaxBackoff
		}
	}

	if err == nil {
		err = fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", r.MaxRetries, err)
}

func errMsg(err error, resp *http.Response) string {
	if err != nil {
		return err.Error()
	}
	if resp != nil {
		return fmt.Sprintf("status code %d", resp.StatusCode)
	}
	return "unknown error"
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
