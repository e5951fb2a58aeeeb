package repository

import (
	"context"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// ContentRepository persiste una colección de contenido completa bajo su propia clave.
type ContentRepository[T entity.Content] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, items []T) error
}

// AboutRepository persiste el documento único de "Nosotros". nil si aún no existe.
type AboutRepository interface {
	Load(ctx context.Context) (*entity.AboutPage, error)
	Save(ctx context.Context, page *entity.AboutPage) error
}
