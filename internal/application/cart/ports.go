package cart

import (
	"context"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Gateway recurso de carrito remoto en el backend.
type Gateway interface {
	CreateCart(ctx context.Context, token, userID string) (string, error)
	GetCart(ctx context.Context, token, cartID string) (*entity.Cart, error)
	AddItem(ctx context.Context, token, cartID string, item entity.CartItem) error
	UpdateItem(ctx context.Context, token, cartID, productID string, quantity int) error
	RemoveItem(ctx context.Context, token, cartID, productID string) error
	ClearCart(ctx context.Context, token, cartID string) error
}
