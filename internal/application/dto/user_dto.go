package dto

import "github.com/enjaz/bizledger/internal/domain/entity"

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse usuario sin el hash de contraseña.
type UserResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Name     string      `json:"name"`
	Role     entity.Role `json:"role"`
}

// ToUserResponse oculta los campos sensibles.
func ToUserResponse(u entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Name: u.Name, Role: u.Role}
}
