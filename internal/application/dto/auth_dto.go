package dto

import (
	"time"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// LoginRequest credenciales del backend.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest alta de usuario. Rol vacío equivale a "cliente".
type RegisterRequest struct {
	RUT      string `json:"rut"`
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

// ToRegistration convierte la petición en datos de alta.
func (r RegisterRequest) ToRegistration() entity.Registration {
	return entity.Registration{RUT: r.RUT, Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role}
}

// ProfileRequest edición del perfil propio; los campos nil no cambian.
type ProfileRequest struct {
	Name  *string `json:"nombre"`
	Email *string `json:"email"`
	RUT   *string `json:"rut"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID               string    `json:"id"`
	RUT              string    `json:"rut"`
	Name             string    `json:"nombre"`
	Email            string    `json:"email"`
	Role             string    `json:"rol"`
	RegistrationDate time.Time `json:"fecha_registro"`
}

// SessionResponse token de la tienda más el usuario de la sesión (nil para invitados).
type SessionResponse struct {
	Token     string        `json:"token"`
	SessionID string        `json:"session_id"`
	Role      string        `json:"rol"`
	User      *UserResponse `json:"usuario"`
	ExpiresIn int           `json:"expires_in"` // segundos
}

// MeResponse estado resumido de la sesión actual.
type MeResponse struct {
	SessionID     string        `json:"session_id"`
	Authenticated bool          `json:"autenticado"`
	Role          string        `json:"rol"`
	User          *UserResponse `json:"usuario"`
	CartCount     int           `json:"carrito_cantidad"`
}

// FromUser mapea un usuario; nil devuelve nil.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:               u.ID,
		RUT:              u.RUT,
		Name:             u.Name,
		Email:            u.Email,
		Role:             u.Role,
		RegistrationDate: u.RegistrationDate,
	}
}
