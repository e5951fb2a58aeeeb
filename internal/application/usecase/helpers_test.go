package usecase_test

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/infrastructure/memory"
)

var nop = zerolog.Nop()

// countingStore cuenta las escrituras para comprobar que un no-op no reescribe el blob.
type countingStore struct {
	*memory.KVStore
	puts atomic.Int32
}

func newCountingStore() *countingStore {
	return &countingStore{KVStore: memory.NewKVStore()}
}

func (s *countingStore) Put(ctx context.Context, key string, value []byte) error {
	s.puts.Add(1)
	return s.KVStore.Put(ctx, key, value)
}
