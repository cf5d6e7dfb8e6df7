// Package completion answers free-form questions about a selection through
// the Anthropic Messages API.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/ukaji3/sheetchat-go/pkg/sheetchat/models"
)

const (
	anthropicAPIVersion = "2023-06-01"

	DefaultBaseURL   = "https://api.anthropic.com/v1/messages"
	DefaultModel     = "claude-3-5-sonnet-20240620"
	DefaultMaxTokens = 1024
	DefaultTimeout   = 60 * time.Second
)

// ErrCredentialMissing indicates the client was built without an API key.
var ErrCredentialMissing = errors.New("completion: API key is missing")

// CredentialMissingMessage is the reply given instead of a completion when
// no API key is configured.
const CredentialMissingMessage = "I can't answer that yet: no API key is configured for the assistant. " +
	"Set completion.api_key in the config file or export the key variable and try again."

// FailureMessage is the reply given when the service call fails.
const FailureMessage = "Sorry, I couldn't get an answer from the assistant service. Please try again."

// Config configures a Client. Zero fields take the package defaults.
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	ID      string             `json:"id"`
	Type    string             `json:"type"`
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the HTTP client, whose timeout otherwise comes
// from Config.Timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// Client talks to the Messages API.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

// New creates a Client. A missing API key is not an error here; every call
// then fails closed with CredentialMissingMessage.
func New(cfg Config, opts ...Option) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete answers query given the recent history and the selection. It
// never fails: errors are logged and replaced by a fixed reply.
func (c *Client) Complete(ctx context.Context, history []models.Message, query string, data *models.SelectionSnapshot) string {
	reply, err := c.Chat(ctx, history, query, data)
	switch {
	case errors.Is(err, ErrCredentialMissing):
		c.logger.WarnContext(ctx, "completion skipped", "error", err)
		return CredentialMissingMessage
	case err != nil:
		c.logger.ErrorContext(ctx, "completion failed", "model", c.cfg.Model, "error", err)
		return FailureMessage
	}
	return reply
}

// Chat sends one Messages API request and returns the concatenated text
// blocks of the reply.
func (c *Client) Chat(ctx context.Context, history []models.Message, query string, data *models.SelectionSnapshot) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrCredentialMissing
	}

	payload := anthropicRequest{
		Model:     c.cfg.Model,
		System:    SystemPrompt(data),
		Messages:  conversation(history, query),
		MaxTokens: c.cfg.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("completion: marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("completion: creating HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
	req.Header.Set("content-type", "application/json")

	c.logger.DebugContext(ctx, "sending completion request", "model", c.cfg.Model, "messages", len(payload.Messages))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion: HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("completion: reading response body (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion: API returned status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("completion: parsing response JSON: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("completion: API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	var text string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("completion: response has no text content")
	}
	return text, nil
}

// conversation converts history plus the new query into the alternating
// user/assistant sequence the API requires. Leading assistant turns such as
// the greeting are dropped and consecutive turns of one role are merged.
func conversation(history []models.Message, query string) []anthropicMessage {
	var out []anthropicMessage
	add := func(role, content string) {
		if content == "" {
			return
		}
		if len(out) == 0 && role != string(models.RoleUser) {
			return
		}
		if n := len(out); n > 0 && out[n-1].Role == role {
			out[n-1].Content += "\n\n" + content
			return
		}
		out = append(out, anthropicMessage{Role: role, Content: content})
	}

	for _, m := range history {
		add(string(m.Role), m.Content)
	}
	add(string(models.RoleUser), query)
	return out
}

// truncate shortens s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
