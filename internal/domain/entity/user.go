package entity

import "time"

// Roles válidos para User (espejo de los permisos del panel).
const (
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleStaff      = "STAFF"
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleCustomer   = "CUSTOMER"
	RoleOther      = "OTHER"
)

// User representa un usuario del sistema (operador, colector o administrador).
// El login es por teléfono, no por email.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Phone        string // único, usado como credencial de acceso
	Email        string // opcional
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Role         string // ver constantes Role*
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve nombre y apellido, o el teléfono si no hay nombre cargado.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Phone
	}
}

// IsValidRole verifica que el rol sea uno de los definidos.
func IsValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleManager, RoleStaff, RoleSuperAdmin, RoleCustomer, RoleOther:
		return true
	}
	return false
}
