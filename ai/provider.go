// Package ai wraps the OpenAI-compatible completion API used for
// summarization and quiz generation.
package ai

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Config holds the AI provider configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.openai.com/v1",
		APIKey:     "",
		Model:      "gpt-4o-mini",
		MaxRetries: 3,
		Timeout:    60 * time.Second,
	}
}

// Provider is the text-completion collaborator: prompt in, completion out,
// fallible.
type Provider struct {
	client *openai.Client
	config *Config
}

// NewProvider creates a new AI provider.
func NewProvider(cfg *Config) (*Provider, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required, set OPENAI_API_KEY environment variable")
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Provider{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

// NewProviderFromEnv creates a provider from environment variables.
func NewProviderFromEnv() (*Provider, error) {
	return NewProvider(&Config{
		BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		APIKey:  getEnv("OPENAI_API_KEY", ""),
		Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	})
}

// Complete performs a single completion round trip for the given prompt.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	var result string
	err := p.doWithRetry(ctx, func() error {
		req := openai.ChatCompletionRequest{
			Model: p.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		}

		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("empty completion response")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to complete prompt: %w", err)
	}

	return result, nil
}

// doWithRetry executes a function with exponential backoff retry.
func (p *Provider) doWithRetry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < p.config.MaxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			if attempt < p.config.MaxRetries-1 {
				waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				log.Printf("AI request failed (attempt %d), retrying in %v: %v", attempt+1, waitTime, err)
				select {
				case <-time.After(waitTime):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
	return lastErr
}

// getEnv gets an environment variable with a fallback.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
