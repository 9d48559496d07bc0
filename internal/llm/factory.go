package llm

import (
	"fmt"
	"strings"

	"github.com/clausetag/clausetag/internal/model"
)

// NewProvider creates an LLM provider from configuration. An empty provider
// name means summaries are disabled and both return values are nil.
func NewProvider(config model.LLMConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}
