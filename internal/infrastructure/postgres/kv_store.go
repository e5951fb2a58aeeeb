package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS kv_entries (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// KVStore implementación del puerto KeyValueStore sobre la tabla kv_entries.
type KVStore struct {
	pool  *pgxpool.Pool
	q     Querier
	owner bool
}

// NewKVStore construye el store sobre el pool y crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool) (*KVStore, error) {
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("create kv_entries: %w", err)
	}
	return &KVStore{pool: pool, q: pool, owner: true}, nil
}

// Get obtiene el valor de una clave.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.q.QueryRow(ctx, `SELECT value FROM kv_entries WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get kv %q: %w", key, err)
	}
	return value, true, nil
}

// Put inserta o sobrescribe el valor completo de la clave.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("put kv %q: %w", key, err)
	}
	return nil
}

// PutBatch escribe varias claves dentro de una sola transacción.
func (s *KVStore) PutBatch(ctx context.Context, entries map[string][]byte) error {
	if !s.owner {
		for key, value := range entries {
			if err := s.Put(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	}
	return NewTxRunner(s.pool).Run(ctx, func(tx *KVStore) error {
		for key, value := range entries {
			if err := tx.Put(ctx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete elimina la clave; no falla si no existe.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM kv_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete kv %q: %w", key, err)
	}
	return nil
}

// Keys lista las claves guardadas en orden alfabético.
func (s *KVStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.q.Query(ctx, `SELECT key FROM kv_entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list kv keys: %w", err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan kv key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close cierra el pool si el store es el dueño (no aplica dentro de una tx).
func (s *KVStore) Close() error {
	if s.owner {
		s.pool.Close()
	}
	return nil
}
