package repository

import (
	"context"

	"github.com/enjaz/bizledger/internal/domain/entity"
)

// UserDirectory puerto hacia el directorio de usuarios (dueño del almacenamiento
// de User). La nómina sólo emite peticiones de alta, cambio y baja.
type UserDirectory interface {
	CreateUser(ctx context.Context, u entity.User) error
	UpdateUser(ctx context.Context, u entity.User) error
	DeleteUser(ctx context.Context, id string) error
	// GetUser devuelve domain.ErrNotFound si no existe.
	GetUser(ctx context.Context, id string) (entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
}
