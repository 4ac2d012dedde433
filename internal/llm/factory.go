package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/legalyze/internal/model"
)

// DefaultOllamaURL is the OpenAI-compatible endpoint of a local Ollama server
const DefaultOllamaURL = "http://localhost:11434/v1"

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		if config.BaseURL == "" {
			config.BaseURL = DefaultOllamaURL
		}
		if config.Model == "" {
			config.Model = "llama3.1"
		}
		return newOpenAICompatible("ollama", config)

	case "":
		// No provider configured - return nil (LLM disabled)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config, taking proxies from the HTTP settings
func ConfigFromModel(modelConfig model.LLMConfig, httpConfig model.HTTPConfig) Config {
	return Config{
		Provider:       modelConfig.Provider,
		Model:          modelConfig.Model,
		APIKey:         modelConfig.APIKey,
		BaseURL:        modelConfig.BaseURL,
		Timeout:        modelConfig.Timeout,
		MaxTokens:      modelConfig.MaxTokens,
		MaxInputTokens: modelConfig.MaxInputTokens,
		HTTPProxy:      httpConfig.HTTPProxy,
		HTTPSProxy:     httpConfig.HTTPSProxy,
		NoProxy:        httpConfig.NoProxy,
	}
}
