package orders

import (
	"context"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Gateway pedidos en el backend.
type Gateway interface {
	ListOrdersByUser(ctx context.Context, token, userID string) ([]*entity.Order, error)
	GetOrder(ctx context.Context, token, id string) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, token, id, status string) (*entity.Order, error)
	GetCart(ctx context.Context, token, cartID string) (*entity.Cart, error)
	GetUser(ctx context.Context, token, id string) (*entity.User, error)
}

// Receipt datos del comprobante de un pedido.
type Receipt struct {
	Order        *entity.Order
	CustomerName string
	Items        []entity.CartItem
	TrackingURL  string
}

// ReceiptGenerator genera el PDF del comprobante.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, r *Receipt) ([]byte, error)
}

// QRGenerator genera el PNG de un código QR.
type QRGenerator interface {
	PNG(content string) ([]byte, error)
}
