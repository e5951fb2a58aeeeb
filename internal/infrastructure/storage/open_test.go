package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenidos-api/internal/infrastructure/bolt"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/storage"
	"github.com/jhoicas/Contenidos-api/pkg/config"
)

func TestOpen_Drivers(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}
	s, err := storage.Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &memory.KVStore{}, s)
	require.NoError(t, s.Close())

	cfg.Store = config.StoreConfig{Driver: config.StoreBolt, Path: filepath.Join(t.TempDir(), "data", "c.db"), Bucket: bolt.DefaultBucket}
	s, err = storage.Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &bolt.KVStore{}, s)
	require.NoError(t, s.Close())

	cfg.Store.Driver = "localstorage"
	_, err = storage.Open(ctx, cfg, zerolog.Nop())
	assert.Error(t, err)
}
