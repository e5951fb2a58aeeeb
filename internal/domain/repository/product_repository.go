package repository

import (
	"context"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// ProductRepository persiste el catálogo de repuestos completo.
type ProductRepository interface {
	Load(ctx context.Context) ([]*entity.Product, error)
	Save(ctx context.Context, products []*entity.Product) error
}
