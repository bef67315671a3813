package llm

import (
	"context"
	"errors"
	"fmt"

	domsvc "Diversonal/internal/domain/service"
	applogger "Diversonal/pkg/logger"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderNone      = "none"

	defaultMaxTokens = 512
)

var (
	// ErrNotConfigured is returned when the selected provider has no API key, or the provider is "none".
	ErrNotConfigured = errors.New("llm: provider not configured")
	// ErrEmptyReply is returned when the model answers without any text.
	ErrEmptyReply = errors.New("llm: empty reply")
)

// Config selects and tunes a completion provider.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int
	Temperature float64
}

// New builds the Completer for cfg.Provider.
func New(ctx context.Context, cfg Config, l *applogger.Logger) (domsvc.Completer, error) {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	switch cfg.Provider {
	case ProviderAnthropic:
		c, err := NewAnthropicCompleter(cfg, l)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderGemini:
		c, err := NewGeminiCompleter(ctx, cfg, l)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderNone, "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
