package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

// BackupUseCase exporta e importa las colecciones del panel tal como están guardadas.
// Solo se aceptan las claves de schema; los usuarios nunca forman parte del respaldo.
type BackupUseCase struct {
	store  repository.KeyValueStore
	schema repository.BlobSchema
	log    zerolog.Logger
}

func NewBackupUseCase(store repository.KeyValueStore, schema repository.BlobSchema, log zerolog.Logger) *BackupUseCase {
	return &BackupUseCase{store: store, schema: schema, log: log}
}

// Export devuelve el valor crudo de cada clave permitida presente en el almacén.
func (uc *BackupUseCase) Export(ctx context.Context) (*dto.Backup, error) {
	keys, err := uc.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.Backup{Collections: make(map[string]json.RawMessage, len(keys))}
	for _, k := range keys {
		if _, ok := uc.schema[k]; !ok {
			continue
		}
		raw, ok, err := uc.store.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if !ok || !json.Valid(raw) {
			continue
		}
		out.Collections[k] = json.RawMessage(raw)
	}
	return out, nil
}

// Import escribe todas las colecciones del respaldo en una sola operación.
// Rechaza el respaldo completo si alguna clave no está permitida o su valor no tiene la
// forma de la colección; en ese caso no se escribe nada.
func (uc *BackupUseCase) Import(ctx context.Context, in dto.Backup) ([]string, error) {
	if len(in.Collections) == 0 {
		return nil, fmt.Errorf("%w: respaldo vacío", domain.ErrInvalidInput)
	}
	entries := make(map[string][]byte, len(in.Collections))
	keys := make([]string, 0, len(in.Collections))
	for k, v := range in.Collections {
		validate, ok := uc.schema[k]
		if !ok {
			return nil, fmt.Errorf("%w: clave %q", domain.ErrUnknownKind, k)
		}
		if err := validate(v); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidInput, k, err)
		}
		entries[k] = []byte(v)
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if err := uc.store.PutBatch(ctx, entries); err != nil {
		return nil, err
	}
	uc.log.Debug().Strs("keys", keys).Msg("respaldo escrito")
	return keys, nil
}
