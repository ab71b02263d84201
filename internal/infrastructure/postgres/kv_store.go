package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/enjaz/bizledger/internal/domain/repository"
)

var _ repository.BatchStore = (*KVStore)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertSQL = `
INSERT INTO kv_store (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

// querier lo comparten *pgxpool.Pool y pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// KVStore implementa repository.BatchStore sobre la tabla kv_store (JSONB).
type KVStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewKVStore construye el store y crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return nil, fmt.Errorf("crear tabla kv_store: %w", err)
	}
	return &KVStore{pool: pool, tx: NewTxRunner(pool)}, nil
}

// Load devuelve el JSON de key o nil si no existe.
func (s *KVStore) Load(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value::text FROM kv_store WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return raw, nil
}

// Save inserta o reemplaza key.
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	return save(ctx, s.pool, key, value)
}

// SaveBatch guarda varias claves en una sola transacción.
func (s *KVStore) SaveBatch(ctx context.Context, values map[string][]byte) error {
	return s.tx.Run(ctx, func(tx pgx.Tx) error {
		for k, v := range values {
			if err := save(ctx, tx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// SumNumeric suma un campo numérico de los elementos de una lista JSON
// directamente en la base (p. ej. amount de invoices). Devuelve cero si la
// clave no existe.
func (s *KVStore) SumNumeric(ctx context.Context, key, field string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM((elem->>$2)::numeric), 0)
		FROM kv_store, jsonb_array_elements(value) AS elem
		WHERE key = $1 AND jsonb_typeof(value) = 'array'`, key, field).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sumar %s.%s: %w", key, field, err)
	}
	return total, nil
}

func save(ctx context.Context, q querier, key string, value []byte) error {
	if _, err := q.Exec(ctx, upsertSQL, key, string(value)); err != nil {
		return fmt.Errorf("guardar %s: %w", key, err)
	}
	return nil
}
