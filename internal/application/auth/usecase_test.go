package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrianbura/copie-stok/internal/application/auth"
	"github.com/adrianbura/copie-stok/internal/application/dto"
	"github.com/adrianbura/copie-stok/internal/domain"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
	"github.com/adrianbura/copie-stok/pkg/jwt"
)

const secret = "test-secret"

func newAuth() (*auth.AuthUseCase, *memory.UserRepository) {
	repo := memory.NewUserRepository(memory.NewStore())
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 10, Issuer: "test"}), repo
}

// ─── CreateUser ─────────────────────────────────────────────────────────────

func TestCreateUser_RolPorDefectoViewer(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "Ana@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "viewer", u.Role)
	assert.Equal(t, "ana@example.com", u.Email)

	stored, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "password1", stored.PasswordHash)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "ana@example.com", Password: "password1"})
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "ANA@example.com", Password: "password2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ─── Login ──────────────────────────────────────────────────────────────────

func TestLogin_TokenConRol(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "op@example.com", Password: "password1", Role: "operator"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "op@example.com", Password: "password1"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, "operator", role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "op@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "op@example.com", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuth()
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ─── EnsureAdmin ────────────────────────────────────────────────────────────

func TestEnsureAdmin_Idempotente(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin@example.com", "supersecret"))
	require.NoError(t, uc.EnsureAdmin(ctx, "admin@example.com", "supersecret"))

	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "admin", list[0].Role)
}

func TestEnsureAdmin_SinEmailNoHaceNada(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()
	require.NoError(t, uc.EnsureAdmin(ctx, "", ""))
	list, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEnsureAdmin_PasswordCorta(t *testing.T) {
	uc, _ := newAuth()
	err := uc.EnsureAdmin(context.Background(), "admin@example.com", "corta")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
