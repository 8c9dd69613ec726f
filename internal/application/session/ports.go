package session

import (
	"context"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// AuthGateway operaciones de autenticación y perfil expuestas por el backend.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Register(ctx context.Context, in entity.Registration) (*entity.User, error)
	UpdateUser(ctx context.Context, token string, user *entity.User) (*entity.User, error)
}
