// internal/ollama/client.go
// Package ollama implements a client for Ollama-compatible HTTP endpoints,
// wrapping non-streaming chat generation with response validation and
// bounded retry.
package ollama

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

	"github.com/mwiater/simplebench/internal/appconfig"
	"github.com/mwiater/simplebench/internal/logging"
)

// ErrEmptyResponse indicates an otherwise successful chat call carried no
// generated content. It is retried like any other failure.
var ErrEmptyResponse = errors.New("ollama: no content in response")

// MaxRetriesError indicates every generation attempt failed. It wraps the
// last underlying error.
type MaxRetriesError struct {
	Attempts int
	Last     error
}

func (e *MaxRetriesError) Error() string {
	return fmt.Sprintf("ollama: failed to get response after %d retries: %v", e.Attempts, e.Last)
}

func (e *MaxRetriesError) Unwrap() error { return e.Last }

// Client issues generation requests against a single Ollama host and model.
// All sampling configuration is fixed at construction.
type Client struct {
	client      *http.Client
	baseURL     string
	model       string
	temperature float64
	topP        float64
	maxTokens   int
	maxRetries  int
	timeout     time.Duration
}

// New constructs a Client from the application configuration.
func New(cfg *appconfig.Config) *Client {
	timeout := cfg.RequestTimeout()
	return &Client{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &http.Transport{ForceAttemptHTTP2: false},
		},
		baseURL:     strings.TrimRight(cfg.HostURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		maxTokens:   cfg.MaxTokens,
		maxRetries:  cfg.MaxRetries,
		timeout:     timeout,
	}
}

// Model returns the model identifier this client was built for.
func (c *Client) Model() string { return c.model }

// chatMessage is a single message in an /api/chat request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the non-streaming /api/chat response shape.
type chatResponse struct {
	Model   string `json:"model"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

// Generate produces one model response for prompt, retrying failed attempts
// up to the configured maximum. Transport errors, non-200 statuses, and
// empty content all count as failed attempts. Context cancellation aborts
// immediately without further retries.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		content, err := c.chat(ctx, prompt)
		if err == nil {
			return content, nil
		}
		lastErr = err
		logging.LogEvent("attempt %d/%d failed: %v", attempt, c.maxRetries, err)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}
	logging.LogEvent("max retries exceeded for model %s", c.model)
	return "", &MaxRetriesError{Attempts: c.maxRetries, Last: lastErr}
}

// chat performs a single non-streaming chat request and validates that the
// response carries content.
func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":    c.model,
		"messages": []chatMessage{{Role: "user", Content: prompt}},
		"options":  c.options(),
		"stream":   false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	logging.LogRequest("BENCH->LLM", c.baseURL, c.model, body)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	logging.LogRequest("LLM->BENCH", c.baseURL, c.model, respBody)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: /api/chat returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var result chatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}

	content := result.Message.Content
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

func (c *Client) options() map[string]any {
	return map[string]any{
		"temperature": c.temperature,
		"top_p":       c.topP,
		"num_predict": c.maxTokens,
	}
}
