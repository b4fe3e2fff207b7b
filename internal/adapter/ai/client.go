package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/balajircs83/AI-Interview-Platform/internal/adapter/observability"
	"github.com/balajircs83/AI-Interview-Platform/internal/config"
	"github.com/balajircs83/AI-Interview-Platform/internal/domain"
)

// Client implements domain.AIClient against an OpenAI-compatible chat
// completions endpoint (OpenRouter by default).
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs a scoring client with the configured transport timeout.
func New(cfg config.Config) *Client {
	return &Client{cfg: cfg, hc: &http.Client{
		Timeout:   cfg.ChatTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) backoffConfig() *backoff.ExponentialBackOff {
	expo := backoff.NewExponentialBackOff()
	maxElapsedTime, initialInterval, maxInterval, multiplier := c.cfg.GetAIBackoffConfig()
	expo.MaxElapsedTime = maxElapsedTime
	expo.InitialInterval = initialInterval
	expo.MaxInterval = maxInterval
	expo.Multiplier = multiplier
	return expo
}

// ChatJSON sends the prompt pair to the chat completions API and returns the
// first choice's message content. Transient failures are retried with
// exponential backoff; callers treat any returned error as a hard call
// failure and fall back.
func (c *Client) ChatJSON(ctx domain.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if c.cfg.OpenRouterAPIKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY missing", domain.ErrInvalidArgument)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.OpenRouterModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("op=ai.chat: %w", err)
	}

	start := time.Now()
	var content string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenRouterBaseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.OpenRouterAPIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.hc.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("op=ai.chat: status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("op=ai.chat: status %d: %s", resp.StatusCode, string(b)))
		}
		var cr chatResponse
		if err := json.Unmarshal(b, &cr); err != nil {
			return backoff.Permanent(fmt.Errorf("op=ai.chat: decode: %w", err))
		}
		if cr.Error != nil {
			return fmt.Errorf("op=ai.chat: upstream: %s", cr.Error.Message)
		}
		if len(cr.Choices) == 0 {
			return fmt.Errorf("op=ai.chat: empty choices")
		}
		content = cr.Choices[0].Message.Content
		return nil
	}

	err = backoff.Retry(op, backoff.WithContext(c.backoffConfig(), ctx))
	observability.AIRequestDuration.WithLabelValues("openrouter", "chat").Observe(time.Since(start).Seconds())
	if err != nil {
		observability.AIRequestsTotal.WithLabelValues("openrouter", "chat_error").Inc()
		slog.Warn("chat completion failed", slog.String("model", c.cfg.OpenRouterModel), slog.Any("error", err))
		return "", err
	}
	observability.AIRequestsTotal.WithLabelValues("openrouter", "chat").Inc()
	return content, nil
}
