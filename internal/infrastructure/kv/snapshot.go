// Package kv da acceso tipado (JSON) a las raíces de agregado guardadas en un
// repository.Store, sea cual sea el adaptador.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enjaz/bizledger/internal/domain/repository"
)

// Claves de las raíces de agregado.
const (
	KeyEmployees   = "employees"
	KeyUsers       = "users"
	KeyInvoices    = "invoices"
	KeySuppliers   = "suppliers"
	KeyPayments    = "payment_transactions"
	KeyInventory   = "inventory"
	KeyExpenses    = "expenses"
	KeySettings    = "company_settings"
	KeyPermissions = "role_permissions"
)

// Snapshot raíz de agregado T guardada como un único documento JSON.
type Snapshot[T any] struct {
	store repository.Store
	key   string
	def   func() T
}

var _ repository.Aggregate[[]int] = (*Snapshot[[]int])(nil)

// NewSnapshot enlaza la clave key del store. def produce el valor cuando la
// clave aún no existe.
func NewSnapshot[T any](store repository.Store, key string, def func() T) *Snapshot[T] {
	return &Snapshot[T]{store: store, key: key, def: def}
}

// NewList atajo para listas que empiezan vacías.
func NewList[E any](store repository.Store, key string) *Snapshot[[]E] {
	return NewSnapshot(store, key, func() []E { return []E{} })
}

// Key clave subyacente.
func (s *Snapshot[T]) Key() string { return s.key }

// Get carga el valor o el valor por defecto si no existe.
func (s *Snapshot[T]) Get(ctx context.Context) (T, error) {
	raw, err := s.store.Load(ctx, s.key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("kv: cargar %s: %w", s.key, err)
	}
	if raw == nil {
		return s.def(), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("kv: decodificar %s: %w", s.key, err)
	}
	return v, nil
}

// Put reemplaza el valor guardado.
func (s *Snapshot[T]) Put(ctx context.Context, v T) error {
	raw, err := s.encode(v)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("kv: guardar %s: %w", s.key, err)
	}
	return nil
}

func (s *Snapshot[T]) encode(v T) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("kv: codificar %s: %w", s.key, err)
	}
	return raw, nil
}

// Batch acumula valores de varias raíces para guardarlos juntos.
type Batch struct {
	values map[string][]byte
	err    error
}

// NewBatch crea un lote vacío.
func NewBatch() *Batch { return &Batch{values: map[string][]byte{}} }

// Stage codifica v bajo la clave de s. El primer error queda registrado y se
// devuelve en Commit.
func Stage[T any](b *Batch, s *Snapshot[T], v T) {
	if b.err != nil {
		return
	}
	raw, err := s.encode(v)
	if err != nil {
		b.err = err
		return
	}
	b.values[s.key] = raw
}

// Commit guarda el lote. Si el store implementa BatchStore la escritura es
// atómica; si no, las claves se guardan una a una.
func (b *Batch) Commit(ctx context.Context, store repository.Store) error {
	if b.err != nil {
		return b.err
	}
	if bs, ok := store.(repository.BatchStore); ok {
		if err := bs.SaveBatch(ctx, b.values); err != nil {
			return fmt.Errorf("kv: guardar lote: %w", err)
		}
		return nil
	}
	for k, v := range b.values {
		if err := store.Save(ctx, k, v); err != nil {
			return fmt.Errorf("kv: guardar %s: %w", k, err)
		}
	}
	return nil
}
