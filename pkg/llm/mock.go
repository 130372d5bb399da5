package llm

import "context"

// MockClient is a configurable mock for testing LLM-backed functionality.
// Set the function fields to control behavior in tests.
type MockClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns "" and nil error.
	CompleteFunc func(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error)

	// EmbedFunc is called when Embed is invoked.
	// If nil, returns nil slice and nil error.
	EmbedFunc func(ctx context.Context, input string) ([]float64, error)

	// ModelName is returned by Model. Defaults to "mock-model".
	ModelName string

	// Call tracking for verification
	CompleteCalls int
	EmbedCalls    int
}

// NewMockClient creates a new mock with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{ModelName: "mock-model"}
}

// Complete implements Completer.
func (m *MockClient) Complete(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error) {
	m.CompleteCalls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, systemMessage, maxTokens)
	}
	return "", nil
}

// Embed implements Embedder.
func (m *MockClient) Embed(ctx context.Context, input string) ([]float64, error) {
	m.EmbedCalls++
	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, input)
	}
	return nil, nil
}

// Model implements Completer.
func (m *MockClient) Model() string {
	return m.ModelName
}
