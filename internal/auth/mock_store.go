package auth

import "sync"

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{tokens: make(map[string]string)}
}

func (m *MockStore) SetToken(host string, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[host] = token
	return nil
}

func (m *MockStore) GetToken(host string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[host]
	if !ok {
		return "", ErrTokenNotFound
	}
	return token, nil
}

func (m *MockStore) DeleteToken(host string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[host]; !ok {
		return ErrTokenNotFound
	}
	delete(m.tokens, host)
	return nil
}
