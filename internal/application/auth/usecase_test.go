package auth_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenidos-api/internal/application/auth"
	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/blobstore"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/Contenidos-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth() *auth.AuthUseCase {
	repo := blobstore.NewUserRepository(memory.NewKVStore(), zerolog.Nop())
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "contenidos-test"}, zerolog.Nop())
}

func TestAuthUseCase_RegistroYLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Editor@Example.com ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", user.Email)
	assert.Equal(t, entity.RoleEditor, user.Role)
	assert.Equal(t, "editor@example.com", user.Name)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "EDITOR@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "editor@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	userID, role, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleEditor, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "editor@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthUseCase_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	created, err := uc.EnsureAdmin(ctx, "", "", "")
	require.NoError(t, err)
	assert.False(t, created, "sin credenciales no se crea nada")

	created, err = uc.EnsureAdmin(ctx, "admin@example.com", "admin-pass-123", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "otro@example.com", "admin-pass-123", "Otro")
	require.NoError(t, err)
	assert.False(t, created, "solo arranca si no hay usuarios")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "admin-pass-123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)
}
