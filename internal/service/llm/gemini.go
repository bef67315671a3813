package llm

import (
	"context"
	"fmt"
	"strings"

	applogger "Diversonal/pkg/logger"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiCompleter sends single-turn prompts to the Gemini API.
type GeminiCompleter struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	l           *applogger.Logger
}

func NewGeminiCompleter(ctx context.Context, cfg Config, l *applogger.Logger) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if l == nil {
		l = applogger.Nop()
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	l.Debug("gemini completer initialized",
		applogger.String("model", cfg.Model),
		applogger.Int("max_tokens", cfg.MaxTokens),
	)
	return &GeminiCompleter{
		client:      client,
		model:       cfg.Model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: float32(cfg.Temperature),
		l:           l,
	}, nil
}

// Complete returns the text of the first candidate that has any.
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{MaxOutputTokens: c.maxTokens}
	if c.temperature > 0 {
		config.Temperature = genai.Ptr(c.temperature)
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var out strings.Builder
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if part != nil && part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}
	if out.Len() == 0 {
		return "", ErrEmptyReply
	}
	return out.String(), nil
}
