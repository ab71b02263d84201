package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enjaz/bizledger/internal/application/usecase"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/infrastructure/kv"
	"github.com/enjaz/bizledger/internal/infrastructure/memory"
	"github.com/enjaz/bizledger/pkg/logger"
)

// releaserSpy registra los usuarios liberados.
type releaserSpy struct {
	released []string
	err      error
}

func (r *releaserSpy) ReleaseUser(_ context.Context, userID string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.released = append(r.released, userID)
	return 1, nil
}

func newUsers(t *testing.T) (*usecase.UserUseCase, *kv.UserDirectory, *releaserSpy) {
	t.Helper()
	dir := kv.NewUserDirectory(memory.NewStore())
	ctx := context.Background()
	for _, u := range []entity.User{
		{ID: entity.SuperAdminUserID, Username: "owner", Role: entity.RoleOwner},
		{ID: "u-1", Username: "karim", Role: entity.RoleViewer, PasswordHash: "secret"},
		{ID: "u-2", Username: "laila", Role: entity.RoleAdmin},
	} {
		require.NoError(t, dir.CreateUser(ctx, u))
	}
	spy := &releaserSpy{}
	return usecase.NewUserUseCase(dir, authz.NewGate(authz.DefaultMatrix()), spy, logger.Nop()), dir, spy
}

func TestUsers_ChangeRole(t *testing.T) {
	uc, dir, _ := newUsers(t)
	ctx := context.Background()

	_, err := uc.ChangeRole(ctx, accountant, "u-1", entity.RoleSales)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.ChangeRole(ctx, manager, "u-1", entity.RoleSales)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSales, got.Role)

	stored, err := dir.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSales, stored.Role)
	assert.Equal(t, "secret", stored.PasswordHash)

	_, err = uc.ChangeRole(ctx, manager, "u-1", "ROOT")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.ChangeRole(ctx, manager, "nope", entity.RoleSales)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUsers_ChangeRolePrivilegiadoSoloOwner(t *testing.T) {
	uc, _, _ := newUsers(t)
	ctx := context.Background()

	_, err := uc.ChangeRole(ctx, admin, "u-1", entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ChangeRole(ctx, admin, "u-2", entity.RoleViewer)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.ChangeRole(ctx, owner, "u-1", entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, got.Role)

	_, err = uc.ChangeRole(ctx, owner, entity.SuperAdminUserID, entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrProtectedRecord)
}

func TestUsers_Delete(t *testing.T) {
	uc, dir, spy := newUsers(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, admin, "u-1"), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, owner, entity.SuperAdminUserID), domain.ErrProtectedRecord)

	require.NoError(t, uc.Delete(ctx, owner, "u-1"))
	assert.Equal(t, []string{"u-1"}, spy.released)
	_, err := dir.GetUser(ctx, "u-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.Delete(ctx, owner, "u-1"), domain.ErrNotFound)
}

func TestUsers_DeleteRestauraUsuarioSiFallaLiberacion(t *testing.T) {
	uc, dir, spy := newUsers(t)
	ctx := context.Background()
	spy.err = errors.New("nómina no disponible")
	assert.Error(t, uc.Delete(ctx, owner, "u-1"))

	got, err := dir.GetUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "karim", got.Username)
	assert.Equal(t, "secret", got.PasswordHash)

	spy.err = nil
	require.NoError(t, uc.Delete(ctx, owner, "u-1"))
	assert.Equal(t, []string{"u-1"}, spy.released)
}

func TestUsers_ListOcultaHash(t *testing.T) {
	uc, _, _ := newUsers(t)
	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
