package repository

import (
	"context"
	"sort"
)

// KeyValueStore puerto de almacenamiento clave/valor durable. Cada colección del panel
// se guarda completa como un único valor JSON bajo su clave.
type KeyValueStore interface {
	// Get devuelve el valor y ok=false si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put sobrescribe el valor completo de la clave.
	Put(ctx context.Context, key string, value []byte) error
	// PutBatch escribe varias claves de forma atómica.
	PutBatch(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// BlobSchema valida el valor crudo de cada clave conocida antes de escribirlo sin pasar
// por un repositorio (respaldos, importaciones). La ausencia de una clave significa que no se acepta.
type BlobSchema map[string]func(raw []byte) error

// Keys claves aceptadas, en orden alfabético.
func (s BlobSchema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
