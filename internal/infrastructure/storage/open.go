// Package storage elige el backend clave/valor según STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/bolt"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contenidos-api/pkg/config"
)

// Open abre el store configurado. El llamador debe cerrarlo.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.KeyValueStore, error) {
	switch cfg.Store.Driver {
	case config.StoreBolt:
		s, err := bolt.Open(cfg.Store.Path, cfg.Store.Bucket)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Store.Path).Str("bucket", cfg.Store.Bucket).Msg("store bbolt abierto")
		return s, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		s, err := postgres.NewKVStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.DBName).Msg("store PostgreSQL abierto")
		return s, nil
	case config.StoreMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return memory.NewKVStore(), nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Store.Driver)
}
