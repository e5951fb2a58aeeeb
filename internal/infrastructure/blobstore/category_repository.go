package blobstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/domain/categorytree"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo guarda el bosque completo bajo la clave "categories".
type CategoryRepo struct {
	c collection[entity.Forest]
}

// NewCategoryRepository construye el repositorio de categorías.
func NewCategoryRepository(store repository.KeyValueStore, log zerolog.Logger) *CategoryRepo {
	return &CategoryRepo{c: newCollection[entity.Forest](store, KeyCategories, log)}
}

// Load devuelve el bosque guardado, o uno vacío si no hay datos utilizables.
func (r *CategoryRepo) Load(ctx context.Context) (entity.Forest, error) {
	forest, ok, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	if !ok || forest == nil {
		return entity.Forest{}, nil
	}
	if dups := categorytree.DuplicateIDs(forest); len(dups) > 0 {
		r.c.log.Warn().Strs("ids", dups).Msg("categorías con IDs duplicados; las mutaciones afectarán a todas")
	}
	return forest, nil
}

// Save sobrescribe el bosque completo.
func (r *CategoryRepo) Save(ctx context.Context, forest entity.Forest) error {
	return r.c.save(ctx, categorytree.Normalize(forest))
}
