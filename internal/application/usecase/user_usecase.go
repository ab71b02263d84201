package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/authz"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/logger"
)

// UserReleaser limpia las referencias de nómina a un usuario borrado.
type UserReleaser interface {
	ReleaseUser(ctx context.Context, userID string) (int, error)
}

// UserUseCase administración de cuentas de usuario desde el directorio.
type UserUseCase struct {
	users    repository.UserDirectory
	gate     *authz.Gate
	releaser UserReleaser
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserDirectory, gate *authz.Gate, releaser UserReleaser, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, gate: gate, releaser: releaser, log: log.Component("users")}
}

// List devuelve los usuarios sin hash de contraseña.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// ChangeRole asigna un rol. Dar o quitar ADMIN/OWNER exige OWNER; el resto
// requiere canManageUsers. El super administrador no cambia de rol.
func (uc *UserUseCase) ChangeRole(ctx context.Context, actor dto.Actor, userID string, role entity.Role) (dto.UserResponse, error) {
	if !role.Valid() {
		return dto.UserResponse{}, fmt.Errorf("%w: rol %q desconocido", domain.ErrValidation, role)
	}
	if err := uc.gate.RequireCapability(actor.Role, entity.CanManageUsers); err != nil {
		return dto.UserResponse{}, err
	}
	u, err := uc.users.GetUser(ctx, userID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if role.Privileged() || u.Role.Privileged() {
		if err := uc.gate.Require(actor.Role, authz.ActionElevateUser); err != nil {
			return dto.UserResponse{}, err
		}
	}
	if u.ID == entity.SuperAdminUserID && role != entity.RoleOwner {
		return dto.UserResponse{}, fmt.Errorf("%w: el super administrador siempre es OWNER", domain.ErrProtectedRecord)
	}
	u.Role = role
	if err := uc.users.UpdateUser(ctx, u); err != nil {
		return dto.UserResponse{}, fmt.Errorf("users: actualizar %s: %w", u.ID, err)
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", string(role)).Str("actor", actor.UserID).Msg("rol cambiado")
	return dto.ToUserResponse(u), nil
}

// Delete borra un usuario (sólo OWNER) y limpia las referencias de nómina.
// Si la limpieza falla, el usuario se vuelve a crear tal como estaba.
func (uc *UserUseCase) Delete(ctx context.Context, actor dto.Actor, userID string) error {
	if err := uc.gate.Require(actor.Role, authz.ActionDeleteUser); err != nil {
		return err
	}
	if userID == entity.SuperAdminUserID {
		return fmt.Errorf("%w: no se puede borrar el super administrador", domain.ErrProtectedRecord)
	}
	u, err := uc.users.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("users: borrar %s: %w", userID, err)
	}
	if err := uc.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("users: borrar %s: %w", userID, err)
	}
	n, err := uc.releaser.ReleaseUser(ctx, userID)
	if err != nil {
		err = fmt.Errorf("users: liberar referencias de %s: %w", userID, err)
		if rerr := uc.users.CreateUser(ctx, u); rerr != nil {
			uc.log.Error().Err(rerr).Str("user_id", userID).Msg("no se pudo restaurar el usuario")
			return errors.Join(err, rerr)
		}
		uc.log.Warn().Err(err).Str("user_id", userID).Msg("usuario restaurado: no se liberaron las referencias de nómina")
		return err
	}
	uc.log.Info().Str("user_id", userID).Int("employees_released", n).Str("actor", actor.UserID).Msg("usuario eliminado")
	return nil
}
