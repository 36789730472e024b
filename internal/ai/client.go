// Package ai talks to the Gemini generateContent REST API.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	defaultTimeout = time.Minute
)

var (
	// ErrUnavailable is returned by every call when no API key is configured.
	ErrUnavailable   = errors.New("ai features are not available: no API key configured")
	ErrEmptyResponse = errors.New("ai response contained no text")
	ErrInvalidJSON   = errors.New("failed to parse ai response as JSON")
)

// Config configures a Client.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Client generates text and JSON from prompts.
type Client struct {
	http    fastshot.ClientHttpMethods
	model   string
	enabled bool
	retries int
	logger  *slog.Logger
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// New creates a Client. Without an API key the client reports itself
// unavailable and makes no requests.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		model:   cfg.Model,
		enabled: strings.TrimSpace(cfg.APIKey) != "",
		retries: cfg.MaxRetries,
		logger:  logger,
	}
	if !c.enabled {
		logger.Warn("no AI API key configured, AI features disabled")
		return c
	}

	c.http = fastshot.NewClient(strings.TrimRight(cfg.BaseURL, "/")).
		Config().SetTimeout(cfg.Timeout).
		Header().Add("Content-Type", "application/json").
		Header().Add("x-goog-api-key", cfg.APIKey).
		Build()
	return c
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool { return c != nil && c.enabled }

// GenerateText returns the model's reply to prompt. system may be empty.
func (c *Client) GenerateText(ctx context.Context, prompt, system string) (string, error) {
	return c.generate(ctx, prompt, system, "")
}

// GenerateJSON asks for a JSON reply and decodes it into out.
func (c *Client) GenerateJSON(ctx context.Context, prompt, system string, out any) error {
	text, err := c.generate(ctx, prompt, system, "application/json")
	if err != nil {
		return err
	}
	if err := ExtractJSON(text, out); err != nil {
		c.logger.Warn("unparsable JSON from model", "error", err, "raw", text)
		return err
	}
	return nil
}

func (c *Client) generate(ctx context.Context, prompt, system, mimeType string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	if mimeType != "" {
		body.GenerationConfig = &generationConfig{ResponseMimeType: mimeType}
	}

	req := c.http.POST(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)).
		Context().Set(ctx).
		Header().Add("Accept", "application/json").
		Body().AsJSON(body)
	if c.retries > 0 {
		req = req.Retry().SetExponentialBackoff(time.Second, uint(c.retries), 2.0)
	}

	resp, err := req.Send()
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, err := resp.Body().AsString()
		if err != nil {
			return "", fmt.Errorf("failed to read error response: %w", err)
		}
		return "", fmt.Errorf("ai request failed: %s", strings.TrimSpace(msg))
	}

	var res generateResponse
	if err := resp.Body().AsJSON(&res); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if res.PromptFeedback != nil && res.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", res.PromptFeedback.BlockReason)
	}

	var b strings.Builder
	for _, cand := range res.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}
