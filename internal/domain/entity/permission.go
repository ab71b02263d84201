package entity

// Capability permiso configurable por rol.
type Capability string

const (
	CanEditSettings Capability = "canEditSettings"
	CanDeleteItems  Capability = "canDeleteItems"
	CanViewReports  Capability = "canViewReports"
	CanManageUsers  Capability = "canManageUsers"
)

// Capabilities devuelve las capacidades en el orden de la matriz.
func Capabilities() []Capability {
	return []Capability{CanEditSettings, CanDeleteItems, CanViewReports, CanManageUsers}
}

// Valid informa si c es una capacidad conocida.
func (c Capability) Valid() bool {
	switch c {
	case CanEditSettings, CanDeleteItems, CanViewReports, CanManageUsers:
		return true
	}
	return false
}

// RolePermission fila de la matriz configurable.
type RolePermission struct {
	Role            Role `json:"role"`
	CanEditSettings bool `json:"canEditSettings"`
	CanDeleteItems  bool `json:"canDeleteItems"`
	CanViewReports  bool `json:"canViewReports"`
	CanManageUsers  bool `json:"canManageUsers"`
}

// Has devuelve el valor de la capacidad en la fila.
func (p RolePermission) Has(c Capability) bool {
	switch c {
	case CanEditSettings:
		return p.CanEditSettings
	case CanDeleteItems:
		return p.CanDeleteItems
	case CanViewReports:
		return p.CanViewReports
	case CanManageUsers:
		return p.CanManageUsers
	}
	return false
}

// With devuelve una copia de la fila con la capacidad fijada a v.
func (p RolePermission) With(c Capability, v bool) RolePermission {
	switch c {
	case CanEditSettings:
		p.CanEditSettings = v
	case CanDeleteItems:
		p.CanDeleteItems = v
	case CanViewReports:
		p.CanViewReports = v
	case CanManageUsers:
		p.CanManageUsers = v
	}
	return p
}
