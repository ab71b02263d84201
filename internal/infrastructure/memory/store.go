// Package memory adaptador de persistencia en memoria del proceso.
package memory

import (
	"context"
	"sync"

	"github.com/enjaz/bizledger/internal/domain/repository"
)

var _ repository.BatchStore = (*Store)(nil)

// Store mapa clave → JSON protegido por RWMutex. Guarda copias de los bytes.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: map[string][]byte{}}
}

// Load devuelve una copia del valor o nil si la clave no existe.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return clone(v), nil
}

// Save reemplaza el valor de key.
func (s *Store) Save(ctx context.Context, key string, value []byte) error {
	return s.SaveBatch(ctx, map[string][]byte{key: value})
}

// SaveBatch reemplaza varias claves bajo un único lock.
func (s *Store) SaveBatch(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.data[k] = clone(v)
	}
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
