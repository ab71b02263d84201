package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los motores y casos de uso los envuelven con fmt.Errorf("%w: ...") y el
// llamador los distingue con errors.Is.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrValidation          = errors.New("entrada inválida")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrForbidden           = errors.New("acceso denegado")
	ErrProtectedRecord     = errors.New("registro protegido")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrDuplicate           = errors.New("recurso duplicado")
)
