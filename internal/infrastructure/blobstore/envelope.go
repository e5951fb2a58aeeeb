// Package blobstore implementa los repositorios del panel sobre un KeyValueStore: cada
// colección se lee completa, se modifica en memoria y se sobrescribe completa.
package blobstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

// SchemaVersion versión actual del sobre persistido.
const SchemaVersion = 1

// Claves fijas (las de contenido salen de entity.ContentKind).
const (
	KeyCategories = "categories"
	KeyParts      = "parts"
	KeyUsers      = "users"
	KeyAbout      = "about"
)

var (
	errMalformed   = errors.New("blob malformado")
	errUndecodable = errors.New("items con forma inesperada")
	// ErrSchemaVersion el blob fue escrito por una versión más nueva; no se sobrescribe.
	ErrSchemaVersion = fmt.Errorf("%w: versión de esquema no soportada", domain.ErrConflict)
	// ErrUnreadableBlob el valor guardado es JSON pero no tiene la forma de la colección.
	ErrUnreadableBlob = fmt.Errorf("%w: el valor guardado no tiene la forma esperada; restaure un respaldo antes de escribir", domain.ErrConflict)
)

// envelope formato en disco: {"schema_version":1,"saved_at":"...","items":...}.
type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	SavedAt       time.Time       `json:"saved_at"`
	Items         json.RawMessage `json:"items"`
}

// migrations[v] lleva el contenido de la versión v a la v+1.
var migrations = map[int]func(json.RawMessage) (json.RawMessage, error){
	// v0: valor desnudo (el array u objeto tal como lo guardaba el navegador). Mismo formato de items.
	0: func(items json.RawMessage) (json.RawMessage, error) { return items, nil },
}

func encode(v any, now time.Time) ([]byte, error) {
	items, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializar items: %w", err)
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, SavedAt: now.UTC(), Items: items})
}

// decode devuelve los items en la versión actual. errMalformed si el valor no es JSON utilizable.
func decode(raw []byte) (json.RawMessage, int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		return nil, 0, errMalformed
	}
	items, version := json.RawMessage(raw), 0
	if raw[0] == '{' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && (env.SchemaVersion > 0 || env.Items != nil) {
			items, version = env.Items, env.SchemaVersion
		}
	}
	if version > SchemaVersion {
		return nil, version, fmt.Errorf("%w: %d", ErrSchemaVersion, version)
	}
	for v := version; v < SchemaVersion; v++ {
		migrate, ok := migrations[v]
		if !ok {
			return nil, version, fmt.Errorf("%w: sin migración desde %d", ErrSchemaVersion, v)
		}
		var err error
		if items, err = migrate(items); err != nil {
			return nil, version, fmt.Errorf("migrar desde %d: %w", v, err)
		}
	}
	if len(items) == 0 {
		return nil, version, errMalformed
	}
	return items, version, nil
}

// BackupSchema claves que entran en un respaldo (todas menos los usuarios). Cada valor se valida
// contra el tipo de su colección con las mismas reglas de lectura que los repositorios.
func BackupSchema() repository.BlobSchema {
	return repository.BlobSchema{
		KeyCategories: validateAs[entity.Forest],
		KeyParts:      validateAs[[]*entity.Product],
		KeyAbout:      validateAs[*entity.AboutPage],

		entity.KindBlog.StorageKey():       validateAs[[]*entity.BlogPost],
		entity.KindCareer.StorageKey():     validateAs[[]*entity.Career],
		entity.KindEvent.StorageKey():      validateAs[[]*entity.Event],
		entity.KindNews.StorageKey():       validateAs[[]*entity.NewsItem],
		entity.KindIndustry.StorageKey():   validateAs[[]*entity.IndustryPage],
		entity.KindLocation.StorageKey():   validateAs[[]*entity.Location],
		entity.KindSEO.StorageKey():        validateAs[[]*entity.SEOEntry],
		entity.KindSocialLink.StorageKey(): validateAs[[]*entity.SocialLink],
		entity.KindFAQ.StorageKey():        validateAs[[]*entity.FAQ],
		entity.KindContact.StorageKey():    validateAs[[]*entity.Contact],
	}
}

func validateAs[T any](raw []byte) error {
	_, _, err := parse[T](raw)
	return err
}
