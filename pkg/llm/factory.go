package llm

import (
	"fmt"

	"go.uber.org/zap"
)

// NewCompleter creates the chat client selected by cfg.Provider.
func NewCompleter(cfg *Config, logger *zap.Logger) (Completer, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIClient(cfg, logger)
	case "anthropic":
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// NewEmbedder creates the embedding client. Only OpenAI-compatible
// endpoints serve embeddings, regardless of the chat provider.
func NewEmbedder(cfg *Config, logger *zap.Logger) (Embedder, error) {
	return NewOpenAIClient(cfg, logger)
}
