package repository

import (
	"context"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// CategoryRepository persiste el bosque de categorías completo (lectura y escritura total).
type CategoryRepository interface {
	// Load devuelve el bosque guardado; ausente o corrupto se trata como bosque vacío.
	Load(ctx context.Context) (entity.Forest, error)
	Save(ctx context.Context, forest entity.Forest) error
}
