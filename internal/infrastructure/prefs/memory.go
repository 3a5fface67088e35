package prefs

import (
	"context"
	"sync"

	"github.com/jhoicas/biciros/internal/domain/repository"
)

var _ repository.PreferenceStore = (*MemoryStore)(nil)

// MemoryStore preferencias en memoria; se pierden al terminar el proceso.
// Los errores inyectados con FailGet/FailSet permiten probar las rutas de fallo.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
	sets   int
}

// NewMemory crea un almacén vacío.
func NewMemory() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	s.sets++
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	delete(s.values, key)
	return nil
}

// FailGet hace que Get devuelva err (nil lo desactiva).
func (s *MemoryStore) FailGet(err error) {
	s.mu.Lock()
	s.getErr = err
	s.mu.Unlock()
}

// FailSet hace que Set y Remove devuelvan err (nil lo desactiva).
func (s *MemoryStore) FailSet(err error) {
	s.mu.Lock()
	s.setErr = err
	s.mu.Unlock()
}

// Writes número de escrituras exitosas.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}
