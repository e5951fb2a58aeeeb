// Package bolt implementa el almacenamiento clave/valor local sobre un archivo bbolt.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
	bbolt "go.etcd.io/bbolt"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// DefaultBucket bucket donde viven todas las colecciones.
const DefaultBucket = "contenidos"

// KVStore store clave/valor sobre un único bucket bbolt.
type KVStore struct {
	db     *bbolt.DB
	bucket []byte
}

// Open abre (o crea) el archivo en path y asegura el bucket.
func Open(path, bucket string) (*KVStore, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio %s: %w", dir, err)
		}
	}
	// Timeout: otro proceso con el archivo abierto no debe colgar el arranque.
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("abrir bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear bucket %s: %w", bucket, err)
	}
	return &KVStore{db: db, bucket: []byte(bucket)}, nil
}

// Get obtiene una copia del valor; los slices de bbolt solo son válidos dentro de la tx.
func (s *KVStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v != nil {
			out = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", key, err)
	}
	return out, out != nil, nil
}

// Put sobrescribe el valor de la clave.
func (s *KVStore) Put(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// PutBatch escribe todas las claves en una única transacción de escritura.
func (s *KVStore) PutBatch(_ context.Context, entries map[string][]byte) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		for key, value := range entries {
			if err := b.Put([]byte(key), value); err != nil {
				return fmt.Errorf("put %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("put batch: %w", err)
	}
	return nil
}

// Delete elimina la clave.
func (s *KVStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys lista las claves en el orden de bbolt (bytes ascendentes).
func (s *KVStore) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Close cierra el archivo.
func (s *KVStore) Close() error {
	return s.db.Close()
}
