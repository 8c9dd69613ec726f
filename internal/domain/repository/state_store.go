package repository

import "context"

// Claves persistidas por sesión de la tienda.
const (
	KeyUser   = "user"
	KeyToken  = "token"
	KeyCart   = "cart"
	KeyCartID = "cartId"
)

// StateStore define el puerto de almacenamiento clave-valor por sesión (DIP).
// Get devuelve ("", false, nil) cuando la clave no existe.
type StateStore interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID string, keys ...string) error
	// Clear elimina todas las claves de la sesión.
	Clear(ctx context.Context, sessionID string) error
}
