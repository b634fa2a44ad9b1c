// Package insights turns a computed report into a short conversational
// summary through the Anthropic Messages API. The service is strictly
// best-effort: any failure is replaced with a placeholder note so the
// numeric report always goes out.
package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"preetosbot/internal/config"
)

// Unavailable is the placeholder attached when no summary could be made.
const Unavailable = "AI analysis unavailable"

// Summarizer produces free text from a structured report prompt.
type Summarizer interface {
	Summarize(ctx context.Context, structured string) (string, error)
}

// Client is the Anthropic-backed Summarizer.
type Client struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	logger    *slog.Logger
}

// New builds the summary client. Returns nil when no API key is configured;
// callers treat a nil client as "service absent".
func New(cfg config.AnthropicConfig, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		logger:    logger,
	}
}

// Summarize implements Summarizer.
func (c *Client) Summarize(ctx context.Context, structured string) (string, error) {
	prompt := fmt.Sprintf(
		"Give me a brief, conversational summary of this sales performance. "+
			"Keep it concise and friendly - no recommendations needed:\n\n%s",
		structured,
	)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("anthropic messages: empty response")
	}
	return text, nil
}

// BestEffort runs the summarizer and degrades to the placeholder on any
// failure, including an absent (nil) summarizer.
func BestEffort(ctx context.Context, s Summarizer, structured string, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}
	if s == nil {
		return Unavailable
	}

	text, err := s.Summarize(ctx, structured)
	if err != nil {
		logger.WarnContext(ctx, "summary service failed", "error", err)
		return Unavailable
	}
	return text
}
