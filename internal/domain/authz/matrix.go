package authz

import (
	"github.com/enjaz/bizledger/internal/domain/entity"
)

// Matrix tabla configurable rol → capacidades. Es un valor: With devuelve una
// copia y nunca modifica la original.
//
// OWNER no tiene fila; se le conceden todas las capacidades.
type Matrix struct {
	rows map[entity.Role]entity.RolePermission
}

// DefaultMatrix valores iniciales de la pantalla de ajustes.
func DefaultMatrix() Matrix {
	return NewMatrix([]entity.RolePermission{
		{Role: entity.RoleAdmin, CanEditSettings: true, CanDeleteItems: true, CanViewReports: true, CanManageUsers: true},
		{Role: entity.RoleManager, CanEditSettings: false, CanDeleteItems: true, CanViewReports: true, CanManageUsers: true},
		{Role: entity.RoleAccountant, CanEditSettings: false, CanDeleteItems: false, CanViewReports: true, CanManageUsers: false},
		{Role: entity.RoleSales},
		{Role: entity.RoleViewer},
	})
}

// NewMatrix construye la matriz a partir de filas persistidas. Se ignoran las
// filas de OWNER y de roles desconocidos.
func NewMatrix(rows []entity.RolePermission) Matrix {
	m := Matrix{rows: make(map[entity.Role]entity.RolePermission, len(rows))}
	for _, r := range rows {
		if r.Role == entity.RoleOwner || !r.Role.Valid() {
			continue
		}
		m.rows[r.Role] = r
	}
	return m
}

// IsAllowed consulta la matriz. Rol desconocido o sin fila → false.
func (m Matrix) IsAllowed(role entity.Role, c entity.Capability) bool {
	if !c.Valid() {
		return false
	}
	if role == entity.RoleOwner {
		return true
	}
	row, ok := m.rows[role]
	if !ok {
		return false
	}
	return row.Has(c)
}

// With devuelve una copia con la capacidad del rol fijada a v.
func (m Matrix) With(role entity.Role, c entity.Capability, v bool) Matrix {
	out := Matrix{rows: make(map[entity.Role]entity.RolePermission, len(m.rows)+1)}
	for k, r := range m.rows {
		out.rows[k] = r
	}
	row, ok := out.rows[role]
	if !ok {
		row = entity.RolePermission{Role: role}
	}
	out.rows[role] = row.With(c, v)
	return out
}

// Rows devuelve las filas en orden de entity.Roles() para persistir.
func (m Matrix) Rows() []entity.RolePermission {
	out := make([]entity.RolePermission, 0, len(m.rows))
	for _, role := range entity.Roles() {
		if r, ok := m.rows[role]; ok {
			out = append(out, r)
		}
	}
	return out
}
