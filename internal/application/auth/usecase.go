package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enjaz/bizledger/internal/application/dto"
	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/ledger"
	"github.com/enjaz/bizledger/internal/domain/payroll"
	"github.com/enjaz/bizledger/internal/domain/repository"
	"github.com/enjaz/bizledger/pkg/jwt"
	"github.com/enjaz/bizledger/pkg/logger"
	"github.com/enjaz/bizledger/pkg/password"
	"github.com/enjaz/bizledger/pkg/validation"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UserFinder directorio con búsqueda por username (login).
type UserFinder interface {
	repository.UserDirectory
	FindByUsername(ctx context.Context, username string) (entity.User, error)
}

// AuthUseCase login, validación de tokens y arranque del dueño.
type AuthUseCase struct {
	users     UserFinder
	employees repository.Aggregate[[]entity.Employee]
	jwtCfg    JWTConfig
	log       *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users UserFinder, employees repository.Aggregate[[]entity.Employee], jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, employees: employees, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return dto.LoginResponse{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	user, err := uc.users.FindByUsername(ctx, in.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return dto.LoginResponse{}, domain.ErrUnauthorized
	}
	if err != nil {
		return dto.LoginResponse{}, err
	}
	if user.PasswordHash == "" || !password.Matches(user.PasswordHash, in.Password) {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido")
		return dto.LoginResponse{}, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	return dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

// Authenticate valida el token y devuelve el actor. El rol se relee del
// directorio para que un cambio de rol tenga efecto sin esperar a que expire.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (dto.Actor, error) {
	userID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return dto.Actor{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	user, err := uc.users.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return dto.Actor{}, fmt.Errorf("%w: usuario %s ya no existe", domain.ErrUnauthorized, userID)
	}
	if err != nil {
		return dto.Actor{}, err
	}
	return dto.Actor{UserID: user.ID, Role: user.Role}, nil
}

// EnsureOwner siembra el super administrador y su registro de empleado si
// faltan. Es idempotente.
func (uc *AuthUseCase) EnsureOwner(ctx context.Context, username, plainPassword string) error {
	_, err := uc.users.GetUser(ctx, entity.SuperAdminUserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		owner := entity.User{
			ID:          entity.SuperAdminUserID,
			Username:    username,
			Name:        "General Manager",
			Role:        entity.RoleOwner,
			Permissions: []string{},
		}
		if plainPassword != "" {
			if owner.PasswordHash, err = password.Hash(plainPassword); err != nil {
				return fmt.Errorf("auth: hash de contraseña: %w", err)
			}
		}
		if err := uc.users.CreateUser(ctx, owner); err != nil {
			return fmt.Errorf("auth: crear super administrador: %w", err)
		}
		uc.log.Info().Str("user_id", owner.ID).Msg("super administrador creado")
	case err != nil:
		return fmt.Errorf("auth: buscar super administrador: %w", err)
	}

	staff, err := uc.employees.Get(ctx)
	if err != nil {
		return fmt.Errorf("auth: cargar empleados: %w", err)
	}
	for _, e := range staff {
		if e.ID == entity.OwnerPlaceholderEmployeeID {
			return nil
		}
	}
	next := append([]entity.Employee{payroll.OwnerPlaceholder(ledger.FormatDate(time.Now()))}, staff...)
	if err := uc.employees.Put(ctx, next); err != nil {
		return fmt.Errorf("auth: guardar empleados: %w", err)
	}
	uc.log.Info().Str("employee_id", entity.OwnerPlaceholderEmployeeID).Msg("registro del dueño creado")
	return nil
}
