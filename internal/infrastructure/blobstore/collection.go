package blobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

// collection lee y escribe un único valor T bajo key.
type collection[T any] struct {
	store repository.KeyValueStore
	key   string
	log   zerolog.Logger
	now   func() time.Time
}

func newCollection[T any](store repository.KeyValueStore, key string, log zerolog.Logger) collection[T] {
	return collection[T]{
		store: store,
		key:   key,
		log:   log.With().Str("key", key).Logger(),
		now:   time.Now,
	}
}

// parse desenvuelve el sobre (o el formato legado) y decodifica los items como T.
func parse[T any](raw []byte) (T, int, error) {
	var zero T
	items, version, err := decode(raw)
	if err != nil {
		return zero, version, err
	}
	var v T
	if err := json.Unmarshal(items, &v); err != nil {
		return zero, version, fmt.Errorf("%w: %v", errUndecodable, err)
	}
	return v, version, nil
}

// load devuelve ok=false si la clave no existe o su contenido no se puede interpretar.
// Solo los fallos del backend y las versiones de esquema futuras son errores.
func (c collection[T]) load(ctx context.Context) (T, bool, error) {
	var zero T
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return zero, false, err
	}
	if !ok {
		return zero, false, nil
	}
	v, version, err := parse[T](raw)
	switch {
	case err == nil:
	case errors.Is(err, ErrSchemaVersion):
		return zero, false, err
	case errors.Is(err, errMalformed):
		c.log.Warn().Err(err).Msg("blob ilegible, se trata como vacío")
		return zero, false, nil
	default:
		c.log.Error().Err(err).Int("schema_version", version).Msg("items con forma inesperada; se leen vacíos y no se sobrescriben")
		return zero, false, nil
	}
	if version < SchemaVersion {
		c.log.Info().Int("from", version).Int("to", SchemaVersion).Msg("blob migrado al leer")
	}
	return v, true, nil
}

func (c collection[T]) save(ctx context.Context, v T) error {
	if err := c.writable(ctx); err != nil {
		return err
	}
	raw, err := encode(v, c.now())
	if err != nil {
		return err
	}
	return c.store.Put(ctx, c.key, raw)
}

// writable rechaza pisar un valor JSON válido que no se pudo decodificar: hasta que un
// operador lo restaure (respaldo o seed import) la clave queda de solo lectura.
// El JSON roto o ausente sí se sobrescribe.
func (c collection[T]) writable(ctx context.Context) error {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil || !ok {
		return err
	}
	_, _, err = parse[T](raw)
	switch {
	case err == nil, errors.Is(err, errMalformed):
		return nil
	case errors.Is(err, ErrSchemaVersion):
		return err
	}
	c.log.Error().Err(err).Msg("escritura bloqueada: el valor guardado no se pudo interpretar")
	return fmt.Errorf("%w (%s)", ErrUnreadableBlob, c.key)
}
