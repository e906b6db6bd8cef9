package mock

import "context"

// MockGenerator is a test double for ai.Generator.
// By default it echoes its prompt, which lets tests assert on the exact
// prompt the composer built.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	GenerateFunc func(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)

	callCount  int
	lastPrompt string
}

// NewMockGenerator creates a mock generator that echoes prompts.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns the prompt verbatim unless a GenerateFunc is injected.
func (m *MockGenerator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	m.callCount++
	m.lastPrompt = prompt

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, maxTokens, temperature)
	}
	return prompt, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// LastPrompt returns the prompt from the most recent Generate call.
func (m *MockGenerator) LastPrompt() string {
	return m.lastPrompt
}

// Reset clears recorded state and any injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.lastPrompt = ""
	m.GenerateFunc = nil
}
