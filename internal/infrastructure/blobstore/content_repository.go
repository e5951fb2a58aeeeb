package blobstore

import (
	"context"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

// ContentRepo guarda una colección de contenido bajo la clave de su tipo.
type ContentRepo[T entity.Content] struct {
	c collection[[]T]
}

// NewContentRepository construye el repositorio de la colección kind.
func NewContentRepository[T entity.Content](store repository.KeyValueStore, kind entity.ContentKind, log zerolog.Logger) *ContentRepo[T] {
	return &ContentRepo[T]{c: newCollection[[]T](store, kind.StorageKey(), log)}
}

func (r *ContentRepo[T]) Load(ctx context.Context) ([]T, error) {
	list, _, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(list))
	for _, item := range list {
		if !isNil(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ContentRepo[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return r.c.save(ctx, items)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

var _ repository.AboutRepository = (*AboutRepo)(nil)

// AboutRepo guarda el documento "Nosotros" bajo la clave "about".
type AboutRepo struct {
	c collection[*entity.AboutPage]
}

func NewAboutRepository(store repository.KeyValueStore, log zerolog.Logger) *AboutRepo {
	return &AboutRepo{c: newCollection[*entity.AboutPage](store, KeyAbout, log)}
}

func (r *AboutRepo) Load(ctx context.Context) (*entity.AboutPage, error) {
	page, _, err := r.c.load(ctx)
	return page, err
}

func (r *AboutRepo) Save(ctx context.Context, page *entity.AboutPage) error {
	return r.c.save(ctx, page)
}
