package repository

import "context"

// Store puerto de persistencia clave → valor JSON (DIP).
// La tecnología subyacente (memoria, archivo, PostgreSQL) es indiferente al núcleo.
type Store interface {
	// Load devuelve el JSON guardado bajo key, o nil (sin error) si no existe.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save reemplaza el valor guardado bajo key.
	Save(ctx context.Context, key string, value []byte) error
}

// Aggregate acceso tipado a una raíz de agregado guardada como un único valor.
// Get devuelve el valor por defecto si la clave no existe.
type Aggregate[T any] interface {
	Get(ctx context.Context) (T, error)
	Put(ctx context.Context, v T) error
}

// BatchStore Store que además guarda varias claves de forma atómica.
type BatchStore interface {
	Store
	SaveBatch(ctx context.Context, values map[string][]byte) error
}
