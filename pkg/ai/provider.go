// Package ai provides AI provider integration for structured generation.
//
// This package implements a provider-agnostic interface for asking an AI
// service to produce JSON that conforms to a declared schema. Gemini enforces
// the schema natively through responseSchema; Anthropic enforces it through a
// forced tool call whose input schema is the declared shape.
package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"thoreinstein.com/shadow/pkg/config"
	shadowerrors "thoreinstein.com/shadow/pkg/errors"
)

// Schema declares the shape of a structured response. Types use the uppercase
// spelling Gemini expects; providers that want standard JSON Schema lowercase
// them during conversion.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Schema type constants.
const (
	TypeObject = "OBJECT"
	TypeArray  = "ARRAY"
	TypeString = "STRING"
)

// StructuredRequest is a single structured-generation call.
type StructuredRequest struct {
	Operation string // Short name used in error messages, e.g. "Analyze"
	System    string // System instruction
	Prompt    string // User prompt
	Schema    *Schema
}

// Provider interface for structured AI operations.
type Provider interface {
	// IsAvailable checks if provider is available and configured.
	IsAvailable() bool

	// GenerateStructured asks the provider for JSON conforming to the
	// request schema and returns the raw JSON payload.
	GenerateStructured(ctx context.Context, req *StructuredRequest) (json.RawMessage, error)

	// Name returns the provider name.
	Name() string
}

// Provider name constants.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// NewProvider creates an AI provider based on config.
// Environment variables take precedence over config file values for API keys.
// When model is empty, provider-specific default models from config are used.
func NewProvider(cfg *config.AIConfig, verbose bool) (Provider, error) {
	if cfg == nil {
		return nil, shadowerrors.NewConfigError("ai", "config is nil")
	}

	var logger *slog.Logger
	if verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	switch cfg.Provider {
	case ProviderGemini, "":
		apiKey := resolveGeminiAPIKey(cfg.APIKey)
		if apiKey == "" {
			return nil, shadowerrors.NewConfigError("ai.api_key",
				"Gemini API key not set (set GEMINI_API_KEY or ai.api_key in config)")
		}
		// Use global model if set, otherwise use provider-specific default
		model := cfg.Model
		if model == "" {
			model = cfg.GeminiModel
		}
		p := NewGeminiProvider(apiKey, model, logger)
		if cfg.Endpoint != "" {
			p.baseURL = cfg.Endpoint
		}
		return p, nil

	case ProviderAnthropic:
		apiKey := resolveAnthropicAPIKey(cfg.APIKey)
		if apiKey == "" {
			return nil, shadowerrors.NewConfigError("ai.api_key",
				"Anthropic API key not set (set ANTHROPIC_API_KEY or ai.api_key in config)")
		}
		model := cfg.Model
		if model == "" {
			model = cfg.AnthropicModel
		}
		p := NewAnthropicProvider(apiKey, model, logger)
		if cfg.Endpoint != "" {
			p.apiURL = cfg.Endpoint
		}
		return p, nil

	default:
		return nil, shadowerrors.NewConfigError("ai.provider",
			"unsupported AI provider: "+cfg.Provider+" (supported: gemini, anthropic)")
	}
}

// resolveGeminiAPIKey returns the API key from the GEMINI_API_KEY or
// SHADOW_AI_API_KEY environment variables if set, otherwise falls back to the
// config value.
func resolveGeminiAPIKey(configKey string) string {
	if envKey := os.Getenv("GEMINI_API_KEY"); envKey != "" {
		return envKey
	}
	if envKey := os.Getenv("SHADOW_AI_API_KEY"); envKey != "" {
		return envKey
	}
	return configKey
}

// resolveAnthropicAPIKey returns the API key from the ANTHROPIC_API_KEY or
// SHADOW_AI_API_KEY environment variables if set, otherwise falls back to the
// config value.
func resolveAnthropicAPIKey(configKey string) string {
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		return envKey
	}
	if envKey := os.Getenv("SHADOW_AI_API_KEY"); envKey != "" {
		return envKey
	}
	return configKey
}
