package entity

// Role identidad de autorización fija asociada a un User.
type Role string

// Roles válidos. El conjunto es cerrado: cualquier otro valor es desconocido.
const (
	RoleOwner      Role = "OWNER"
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
	RoleManager    Role = "MANAGER"
	RoleViewer     Role = "VIEWER"
	RoleSales      Role = "SALES"
)

// Roles devuelve todos los roles en orden de jerarquía.
func Roles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleAccountant, RoleManager, RoleViewer, RoleSales}
}

// Valid informa si r pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleAccountant, RoleManager, RoleViewer, RoleSales:
		return true
	}
	return false
}

// Privileged informa si el rol es ADMIN u OWNER (elevación restringida al OWNER).
func (r Role) Privileged() bool {
	return r == RoleOwner || r == RoleAdmin
}
