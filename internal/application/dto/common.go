package dto

import "github.com/enjaz/bizledger/internal/domain/entity"

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	UserID string
	Role   entity.Role
}

// ErrorResponse cuerpo de error para clientes de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
