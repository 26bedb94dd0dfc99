// Package gemini implements the client for the Google generative-language
// REST endpoint. It issues exactly one attempt per call; retries, backoff and
// rate limiting are deliberately absent.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public generative-language API root.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"

	// DefaultTimeout bounds a single generateContent call.
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client calls the generateContent endpoint. It is safe for concurrent use,
// though the UI only ever keeps one call in flight.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client with default base URL, model and timeout.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(Config{APIKey: apiKey})
}

// NewClientWithConfig creates a client with custom config. Zero-value fields
// fall back to package defaults.
func NewClientWithConfig(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Generate sends prompt as a single user turn and returns the first
// candidate's first text part.
//
// Failure modes: ErrMissingCredential (no key, no request issued),
// *UpstreamError (non-2xx), ErrEmptyGeneration (2xx without candidate text)
// and *TransportError (network-level failure).
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", ErrMissingCredential
	}

	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{
				Role:  "user",
				Parts: []GeminiPart{{Text: prompt}},
			},
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestID := uuid.NewString()
	start := time.Now()
	c.logger.Debug("calling generateContent",
		zap.String("request_id", requestID),
		zap.String("model", c.model),
		zap.String("url", RedactKey(url)),
		zap.Int("prompt_len", len(prompt)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("transport failure",
			zap.String("request_id", requestID),
			zap.Error(err))
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamMessage(body)
		c.logger.Debug("upstream error",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", ErrEmptyGeneration
	}

	if len(geminiResp.Candidates) == 0 ||
		len(geminiResp.Candidates[0].Content.Parts) == 0 ||
		geminiResp.Candidates[0].Content.Parts[0].Text == "" {
		c.logger.Debug("empty generation",
			zap.String("request_id", requestID),
			zap.Int("candidates", len(geminiResp.Candidates)))
		return "", ErrEmptyGeneration
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	c.logger.Debug("generation complete",
		zap.String("request_id", requestID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_len", len(text)))
	return text, nil
}

// upstreamMessage extracts the error.message field from a non-2xx body,
// falling back to a generic description when the body is not parseable.
func upstreamMessage(body []byte) string {
	var errResp geminiErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return "An unknown error occurred."
}

var keyParamRegex = regexp.MustCompile(`(key=)[^&\s]+`)

// RedactKey masks the key query parameter so request URLs can be logged.
func RedactKey(s string) string {
	return keyParamRegex.ReplaceAllString(s, "${1}[REDACTED_KEY]")
}
