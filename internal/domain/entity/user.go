package entity

import "time"

// Roles válidos para User.
const (
	RoleCliente      = "cliente"
	RoleEmpresa      = "empresa"
	RoleDistribuidor = "distribuidor"
	RoleBodeguero    = "bodeguero"
	RoleAdmin        = "admin"
	// RoleInvitado identifica sesiones anónimas de la tienda; nunca llega al backend.
	RoleInvitado = "invitado"
)

// IsValidRole indica si el rol pertenece al conjunto conocido por el backend.
func IsValidRole(role string) bool {
	switch role {
	case RoleCliente, RoleEmpresa, RoleDistribuidor, RoleBodeguero, RoleAdmin:
		return true
	}
	return false
}

// User representa un usuario registrado en el backend de AutoParts.
type User struct {
	ID               string
	RUT              string
	Name             string
	Email            string
	Role             string
	RegistrationDate time.Time
}

// Registration datos de alta de un usuario (la contraseña solo viaja al backend).
type Registration struct {
	RUT      string
	Name     string
	Email    string
	Password string
	Role     string
}
