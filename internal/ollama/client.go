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

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"matterdesk/internal/config"
	"matterdesk/internal/domain"
	"matterdesk/internal/resilience"
)

const (
	defaultBaseURL    = "http://localhost:11434"
	defaultModel      = "llama3.2:1b"
	defaultTimeout    = 5 * time.Minute
	defaultMaxRetries = 3

	maxErrorBody = 512
)

// Client talks to an Ollama server. It is safe for concurrent use and shares
// one pooled HTTP client across calls.
type Client struct {
	cfg     config.OllamaConfig
	http    *http.Client
	limiter *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a Client from the Ollama configuration. Zero values fall
// back to the defaults of a local Ollama install.
func NewClient(cfg *config.OllamaConfig, opts ...Option) *Client {
	c := &Client{cfg: *cfg}
	if c.cfg.BaseURL == "" {
		c.cfg.BaseURL = defaultBaseURL
	}
	c.cfg.BaseURL = strings.TrimRight(c.cfg.BaseURL, "/")
	if c.cfg.DefaultModel == "" {
		c.cfg.DefaultModel = defaultModel
	}
	if c.cfg.Timeout <= 0 {
		c.cfg.Timeout = defaultTimeout
	}
	if c.cfg.MaxRetries <= 0 {
		c.cfg.MaxRetries = defaultMaxRetries
	}
	if c.cfg.RetryDelay < 0 {
		c.cfg.RetryDelay = 0
	}
	if c.cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(c.cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// Timeouts are applied per attempt through the request context.
		c.http = &http.Client{}
	}
	return c
}

// DefaultModel returns the model used when a call names none.
func (c *Client) DefaultModel() string {
	return c.cfg.DefaultModel
}

// Generate sends a single prompt to /api/generate and returns the generated text.
func (c *Client) Generate(ctx context.Context, model, prompt string) (string, error) {
	model = c.model(model)
	if strings.TrimSpace(prompt) == "" {
		return "", &Error{Kind: KindInvalidInput, Op: "generate", Model: model, Err: errors.New("prompt is required")}
	}

	req := generateRequest{Model: model, Prompt: prompt, Stream: false}
	var resp generateResponse
	if err := c.execute(ctx, "generate", model, http.MethodPost, "/api/generate", req, &resp, prompt); err != nil {
		return "", err
	}
	c.logResponse("generate", model, resp.Response)
	return resp.Response, nil
}

// Chat sends a single user message to /api/chat and returns the reply content.
func (c *Client) Chat(ctx context.Context, model, message string) (string, error) {
	model = c.model(model)
	if strings.TrimSpace(message) == "" {
		return "", &Error{Kind: KindInvalidInput, Op: "chat", Model: model, Err: errors.New("message is required")}
	}

	req := chatRequest{
		Model:    model,
		Messages: []ChatMessage{{Role: "user", Content: message}},
		Stream:   false,
	}
	var resp chatResponse
	if err := c.execute(ctx, "chat", model, http.MethodPost, "/api/chat", req, &resp, message); err != nil {
		return "", err
	}
	c.logResponse("chat", model, resp.Message.Content)
	return resp.Message.Content, nil
}

// ListModels returns the models installed on the server.
func (c *Client) ListModels(ctx context.Context) ([]domain.LLMModel, error) {
	var resp tagsResponse
	if err := c.execute(ctx, "list_models", "", http.MethodGet, "/api/tags", nil, &resp, ""); err != nil {
		return nil, err
	}
	models := make([]domain.LLMModel, 0, len(resp.Models))
	for _, m := range resp.Models {
		models = append(models, domain.LLMModel{Name: m.Name, Size: m.Size, ModifiedAt: m.ModifiedAt})
	}
	return models, nil
}

// IsHealthy probes the server root. Any failure yields false.
func (c *Client) IsHealthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/", http.NoBody)
	if err != nil {
		zap.L().Error("ollama health check failed", zap.Error(err))
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		zap.L().Error("ollama health check failed", zap.String("endpoint", c.cfg.BaseURL), zap.Error(err))
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *Client) model(model string) string {
	if strings.TrimSpace(model) == "" {
		return c.cfg.DefaultModel
	}
	return model
}

// execute runs one logical call with fixed-delay retries. Only transport
// failures are retried; everything else is returned as soon as it is seen.
func (c *Client) execute(ctx context.Context, op, model, method, path string, body, out any, logText string) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindInvalidInput, Op: op, Model: model, Err: err}
		}
	}

	retryCfg := resilience.RetryConfig{
		MaxAttempts: c.cfg.MaxRetries,
		Delay:       c.cfg.RetryDelay,
		ShouldRetry: func(err error) bool { return KindOf(err).Retryable() },
		OnRetry:     resilience.RetryLogger("ollama", op, c.cfg.MaxRetries, c.cfg.RetryDelay),
	}

	_, attempts, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context, attempt int) (struct{}, error) {
		return struct{}{}, c.attempt(ctx, op, model, method, path, payload, out, logText, attempt)
	})
	if err == nil {
		return nil
	}

	if ctx.Err() != nil && KindOf(err) != KindCanceled {
		err = &Error{Kind: KindCanceled, Op: op, Model: model, Endpoint: c.cfg.BaseURL + path, Attempts: attempts, Err: ctx.Err()}
	} else if KindOf(err).Retryable() {
		err = &Error{Kind: KindExhausted, Op: op, Model: model, Endpoint: c.cfg.BaseURL + path, Attempts: attempts, Err: err}
	}

	zap.L().Error("ollama operation failed",
		zap.String("operation", op),
		zap.String("model", model),
		zap.Int("attempts", attempts),
		zap.Stringer("kind", KindOf(err)),
		zap.Error(err),
	)
	return err
}

func (c *Client) attempt(ctx context.Context, op, model, method, path string, payload []byte, out any, logText string, attempt int) error {
	endpoint := c.cfg.BaseURL + path
	fail := func(kind Kind, status int, err error) error {
		return &Error{Kind: kind, Op: op, Model: model, Endpoint: endpoint, StatusCode: status, Attempts: attempt, Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return fail(KindCanceled, 0, ctx.Err())
			}
			return fail(KindTransport, 0, err)
		}
	}

	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("model", model),
		zap.Int("attempt", attempt),
		zap.Int("max_attempts", c.cfg.MaxRetries),
	}
	if c.cfg.LogPrompts && logText != "" {
		fields = append(fields, zap.String("prompt", logText))
	}
	zap.L().Info("sending ollama request", fields...)

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, endpoint, reqBody)
	if err != nil {
		return fail(KindInvalidInput, 0, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(classify(ctx, attemptCtx), 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(classify(ctx, attemptCtx), resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fail(KindModelNotFound, resp.StatusCode, nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fail(KindTransport, resp.StatusCode, fmt.Errorf("unexpected status: %s", truncate(string(respBody), maxErrorBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fail(KindDecode, resp.StatusCode, err)
	}
	return nil
}

// classify maps a failed round trip to a Kind. The caller's context wins
// over the per-attempt deadline.
func classify(parent, attempt context.Context) Kind {
	switch {
	case parent.Err() != nil:
		return KindCanceled
	case errors.Is(attempt.Err(), context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindTransport
	}
}

func (c *Client) logResponse(op, model, text string) {
	if c.cfg.LogResponses {
		zap.L().Info("received ollama response", zap.String("operation", op), zap.String("model", model), zap.String("response", text))
		return
	}
	zap.L().Info("received ollama response", zap.String("operation", op), zap.String("model", model), zap.Int("length", len(text)))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
