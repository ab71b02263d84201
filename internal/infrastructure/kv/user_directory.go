package kv

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/enjaz/bizledger/internal/domain"
	"github.com/enjaz/bizledger/internal/domain/entity"
	"github.com/enjaz/bizledger/internal/domain/repository"
)

var _ repository.UserDirectory = (*UserDirectory)(nil)

// UserDirectory directorio de usuarios guardado como lista bajo KeyUsers.
// Serializa las escrituras para que dos altas concurrentes no se pisen.
type UserDirectory struct {
	mu    sync.Mutex
	users *Snapshot[[]entity.User]
}

// NewUserDirectory crea el directorio sobre store.
func NewUserDirectory(store repository.Store) *UserDirectory {
	return &UserDirectory{users: NewList[entity.User](store, KeyUsers)}
}

// CreateUser agrega u. ID y username (sin distinguir mayúsculas) son únicos.
func (d *UserDirectory) CreateUser(ctx context.Context, u entity.User) error {
	return d.mutate(ctx, func(list []entity.User) ([]entity.User, error) {
		for _, x := range list {
			if x.ID == u.ID {
				return nil, fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, u.ID)
			}
			if strings.EqualFold(x.Username, u.Username) {
				return nil, fmt.Errorf("%w: username %s", domain.ErrDuplicate, u.Username)
			}
		}
		return append(list, u), nil
	})
}

// UpdateUser reemplaza el usuario con el mismo ID.
func (d *UserDirectory) UpdateUser(ctx context.Context, u entity.User) error {
	return d.mutate(ctx, func(list []entity.User) ([]entity.User, error) {
		i := indexOf(list, u.ID)
		if i < 0 {
			return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, u.ID)
		}
		for _, x := range list {
			if x.ID != u.ID && strings.EqualFold(x.Username, u.Username) {
				return nil, fmt.Errorf("%w: username %s", domain.ErrDuplicate, u.Username)
			}
		}
		list[i] = u
		return list, nil
	})
}

// DeleteUser elimina el usuario id.
func (d *UserDirectory) DeleteUser(ctx context.Context, id string) error {
	return d.mutate(ctx, func(list []entity.User) ([]entity.User, error) {
		i := indexOf(list, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
		}
		return append(list[:i], list[i+1:]...), nil
	})
}

// GetUser devuelve el usuario id o domain.ErrNotFound.
func (d *UserDirectory) GetUser(ctx context.Context, id string) (entity.User, error) {
	list, err := d.users.Get(ctx)
	if err != nil {
		return entity.User{}, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return entity.User{}, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
}

// FindByUsername búsqueda sin distinguir mayúsculas.
func (d *UserDirectory) FindByUsername(ctx context.Context, username string) (entity.User, error) {
	list, err := d.users.Get(ctx)
	if err != nil {
		return entity.User{}, err
	}
	for _, u := range list {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return entity.User{}, fmt.Errorf("%w: username %s", domain.ErrNotFound, username)
}

// ListUsers devuelve todos los usuarios.
func (d *UserDirectory) ListUsers(ctx context.Context) ([]entity.User, error) {
	return d.users.Get(ctx)
}

func (d *UserDirectory) mutate(ctx context.Context, fn func([]entity.User) ([]entity.User, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	list, err := d.users.Get(ctx)
	if err != nil {
		return err
	}
	next, err := fn(list)
	if err != nil {
		return err
	}
	return d.users.Put(ctx, next)
}

func indexOf(list []entity.User, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
