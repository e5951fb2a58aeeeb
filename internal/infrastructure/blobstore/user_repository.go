package blobstore

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo guarda los operadores bajo la clave "users".
type UserRepo struct {
	mu sync.Mutex
	c  collection[[]*entity.User]
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(store repository.KeyValueStore, log zerolog.Logger) *UserRepo {
	return &UserRepo{c: newCollection[[]*entity.User](store, KeyUsers, log)}
}

// Create agrega un usuario. ErrEmailAlreadyExists si el email ya está registrado (sin distinguir mayúsculas).
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.all(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	return r.c.save(ctx, append(users, user))
}

// FindByEmail busca un usuario por email. nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID obtiene un usuario por ID. nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Count número de usuarios registrados.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	users, err := r.all(ctx)
	return len(users), err
}

func (r *UserRepo) all(ctx context.Context) ([]*entity.User, error) {
	users, _, err := r.c.load(ctx)
	if err != nil {
		return nil, err
	}
	return compact(users), nil
}
