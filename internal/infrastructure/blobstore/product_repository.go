package blobstore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo guarda el catálogo de repuestos bajo la clave "parts".
type ProductRepo struct {
	c collection[[]*entity.Product]
}

// NewProductRepository construye el repositorio de repuestos.
func NewProductRepository(store repository.KeyValueStore, log zerolog.Logger) *ProductRepo {
	return &ProductRepo{c: newCollection[[]*entity.Product](store, KeyParts, log)}
}

func (r *ProductRepo) Load(ctx context.Context) ([]*entity.Product, error) {
	list, _, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	return compact(list), nil
}

func (r *ProductRepo) Save(ctx context.Context, products []*entity.Product) error {
	if products == nil {
		products = []*entity.Product{}
	}
	return r.c.save(ctx, products)
}

// compact descarta los null que pueda traer un array legado.
func compact[T any](list []*T) []*T {
	out := make([]*T, 0, len(list))
	for _, v := range list {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}
