package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/positivipy/config"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
	openAIGrammarPrompt  = "You fix spelling and grammar. Reply with the corrected sentence only, " +
		"keeping its meaning, tone and language. If nothing needs fixing, reply with the sentence unchanged."
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIClient corrects grammar through a chat completion model.
type OpenAIClient struct {
	Client chatCompleter
	Model  string
}

func NewOpenAIClient(cfg config.GrammarConfig) (*OpenAIClient, error) {
	if cfg.OpenAIKey == "" {
		slog.Error("[OpenAIClient] Missing OPENAI_API_KEY in environment variables")
		return nil, errors.New("[OpenAIClient] missing OPENAI_API_KEY")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
	clientConfig.HTTPClient = &http.Client{
		Timeout: openAIRequestTimeout,
	}

	slog.Info("[OpenAIClient] OpenAI client initialized with custom HTTP timeout",
		slog.Duration("timeout", openAIRequestTimeout),
		slog.String("model", cfg.OpenAIModel))

	return &OpenAIClient{
		Client: openai.NewClientWithConfig(clientConfig),
		Model:  cfg.OpenAIModel,
	}, nil
}

func (c *OpenAIClient) Correct(ctx context.Context, text string) (string, error) {
	resp, err := c.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAIGrammarPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("[OpenAIClient] chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("[OpenAIClient] empty response")
	}

	corrected := strings.TrimSpace(resp.Choices[0].Message.Content)
	corrected = strings.Trim(corrected, `"`)
	if corrected == "" {
		return "", errors.New("[OpenAIClient] empty completion")
	}
	return corrected, nil
}
