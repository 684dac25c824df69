package tokenstore

import "sync"

// MemoryStore implementación en memoria de Store, para tests.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore construye un store vacío, opcionalmente con un token inicial.
func NewMemoryStore(initial string) *MemoryStore {
	return &MemoryStore{token: initial}
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
