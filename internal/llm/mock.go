package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for MockProvider
type MockResponse struct {
	Text string
	Err  error
}

// MockProvider returns canned responses in FIFO order and records prompts.
// Once the queue is empty it reports the provider as unavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{Text: resp.Text, Model: "mock"}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
