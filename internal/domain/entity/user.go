package entity

// SuperAdminUserID es el usuario OWNER sembrado al arrancar; no se puede borrar.
const SuperAdminUserID = "super-admin-01"

// User cuenta de acceso al sistema. La almacena el directorio de usuarios;
// la nómina sólo la referencia por ID.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         Role     `json:"role"`
	PasswordHash string   `json:"passwordHash,omitempty"` // bcrypt, nunca texto plano
	Permissions  []string `json:"permissions,omitempty"`
}
