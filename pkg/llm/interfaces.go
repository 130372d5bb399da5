// Package llm provides clients for the external language-model
// capabilities the pipeline consumes: text embedding and summarization.
package llm

import "context"

// Completer generates a chat completion for a prompt. Used for cluster
// summarization, trend extraction and gender/category inference.
// Use this interface for dependency injection to enable mocking in tests.
type Completer interface {
	// Complete generates a response to prompt under systemMessage.
	Complete(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error)

	// Model returns the configured model name.
	Model() string
}

// Embedder produces a fixed-length embedding vector for the input text.
type Embedder interface {
	Embed(ctx context.Context, input string) ([]float64, error)
}

// Ensure the concrete clients satisfy the interfaces at compile time.
var (
	_ Completer = (*OpenAIClient)(nil)
	_ Embedder  = (*OpenAIClient)(nil)
	_ Completer = (*AnthropicClient)(nil)
)
