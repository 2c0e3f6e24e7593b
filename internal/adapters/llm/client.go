// Package llm is the model-invocation adapter: one bounded chat-completion
// call per invocation, no streaming.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mandatedisrael/basefly/internal/adapters/httpx"
	"github.com/mandatedisrael/basefly/internal/adapters/observability"
	"github.com/mandatedisrael/basefly/internal/domain"
)

const defaultBase = "https://api.openai.com/v1"

var ErrUnauthorized = errors.New("llm: unauthorized")

type Client struct {
	base  string
	key   string
	model string
	hc    *http.Client
	rl    *rate.Limiter
}

func New(base, key, model string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = defaultBase
	}
	if model == "" {
		model = "gpt-4o"
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		key:   key,
		model: model,
		hc:    &http.Client{Timeout: 60 * time.Second},
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion and returns the model's text verbatim.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) Complete(ctx context.Context, comp domain.Completion) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	msgs := make([]chatMessage, 0, 2)
	if comp.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: comp.System})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: comp.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    msgs,
		MaxTokens:   comp.MaxTokens,
		Temperature: comp.Temperature,
	})
	if err != nil {
		return "", err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// fresh request each attempt; the body reader is consumed
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return "", err
		}
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("Content-Type", "application/json")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			if i < 3 && httpx.SleepCtx(ctx, httpx.Backoff(i)) {
				continue
			}
			return "", lastErr
		}
		observability.ObserveExternal("llm", "chat_completions", resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusOK:
			var out chatResponse
			err := json.NewDecoder(resp.Body).Decode(&out)
			resp.Body.Close()
			if err != nil {
				return "", fmt.Errorf("decode completion: %w", err)
			}
			if len(out.Choices) == 0 {
				return "", errors.New("llm: empty choices")
			}
			return out.Choices[0].Message.Content, nil

		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			return "", ErrUnauthorized

		case httpx.Retryable(resp.StatusCode):
			wait := httpx.RetryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = httpx.Backoff(i)
			}
			lastErr = fmt.Errorf("llm: remote %d", resp.StatusCode)
			if i < 3 && httpx.SleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return "", fmt.Errorf("llm: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return "", lastErr
}
