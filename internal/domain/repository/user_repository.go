package repository

import (
	"context"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para los operadores del panel.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
}
