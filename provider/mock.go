package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a deterministic provider for tests and dry runs.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received

	mu sync.Mutex
}

// NewMockProvider creates a new mock provider with a few GregTech names.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Copper Ingot": "铜锭",
			"Tin Ingot":    "锡锭",
			"Bronze Gear":  "青铜齿轮",
			"Steam Boiler": "蒸汽锅炉",
		},
	}
}

// Translate returns the known translation of each text, or the text in
// brackets.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount++
	m.LastRequest = &req

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		if translation, ok := m.Translations[text]; ok {
			results[i] = translation
		} else {
			results[i] = fmt.Sprintf("[%s]", text)
		}
	}

	return results, nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

var _ AIProvider = (*MockProvider)(nil)
