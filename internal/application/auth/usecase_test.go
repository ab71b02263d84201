package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/internal/application/auth"
	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/infrastructure/kv"
	"github.com/enjaz/bizledger/internal/infrastructure/memory"
	"github.com/enjaz/bizledger/pkg/jwt"
	"github.com/enjaz/bizledger/pkg/logger"
)

const secret = "test-secret"

type fixture struct {
	uc        *auth.AuthUseCase
	users     *kv.UserDirectory
	employees *kv.Snapshot[[]entity.Employee]
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	users := kv.NewUserDirectory(store)
	employees := kv.NewList[entity.Employee](store, kv.KeyEmployees)
	uc := auth.NewAuthUseCase(users, employees, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "bizledger"}, logger.Nop())
	require.NoError(t, uc.EnsureOwner(context.Background(), "owner", "s3cret!"))
	return fixture{uc: uc, users: users, employees: employees}
}

func TestEnsureOwner_Idempotente(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.uc.EnsureOwner(ctx, "owner", "otra"))

	users, err := f.users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, entity.SuperAdminUserID, users[0].ID)
	assert.Equal(t, entity.RoleOwner, users[0].Role)

	staff, err := f.employees.Get(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, entity.OwnerPlaceholderEmployeeID, staff[0].ID)
	assert.Equal(t, entity.SuperAdminUserID, staff[0].LinkedUserID)
}

func TestEnsureOwner_RecreaPlaceholder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.employees.Put(ctx, []entity.Employee{{ID: "e-1", Name: "Karim"}}))

	require.NoError(t, f.uc.EnsureOwner(ctx, "owner", "s3cret!"))
	staff, err := f.employees.Get(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, entity.OwnerPlaceholderEmployeeID, staff[0].ID)
	assert.Equal(t, "e-1", staff[1].ID)
}

func TestLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.uc.Login(ctx, dto.LoginRequest{Username: "OWNER", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, entity.SuperAdminUserID, res.User.ID)

	userID, role, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.SuperAdminUserID, userID)
	assert.Equal(t, string(entity.RoleOwner), role)

	_, err = f.uc.Login(ctx, dto.LoginRequest{Username: "owner", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.uc.Login(ctx, dto.LoginRequest{Username: "owner"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_UsuarioSinClave(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.users.CreateUser(ctx, entity.User{ID: "u-1", Username: "karim", Role: entity.RoleViewer}))

	_, err := f.uc.Login(ctx, dto.LoginRequest{Username: "karim", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate_RelevaRolDelDirectorio(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.users.CreateUser(ctx, entity.User{ID: "u-1", Username: "karim", Role: entity.RoleViewer}))
	token, err := jwt.Generate(secret, "u-1", string(entity.RoleViewer), "bizledger", 60)
	require.NoError(t, err)

	u, err := f.users.GetUser(ctx, "u-1")
	require.NoError(t, err)
	u.Role = entity.RoleManager
	require.NoError(t, f.users.UpdateUser(ctx, u))

	actor, err := f.uc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, dto.Actor{UserID: "u-1", Role: entity.RoleManager}, actor)

	require.NoError(t, f.users.DeleteUser(ctx, "u-1"))
	_, err = f.uc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Authenticate(ctx, "no-es-un-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
