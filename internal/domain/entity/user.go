package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleContador  = "contador"
	RoleVendedor  = "vendedor"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, contador, vendedor, bodeguero
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleContador, RoleVendedor, RoleBodeguero:
		return true
	}
	return false
}
