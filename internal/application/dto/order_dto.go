package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// CheckoutRequest formulario de envío y pago.
type CheckoutRequest struct {
	Name          string `json:"nombre"`
	Email         string `json:"email"`
	Phone         string `json:"telefono"`
	Address       string `json:"direccion"`
	Comuna        string `json:"comuna"`
	Region        string `json:"region"`
	PaymentMethod string `json:"metodo_pago"` // transbank|transferencia|efectivo
	Notes         string `json:"notas"`
}

// TransactionResponse transacción simulada creada para el pedido.
type TransactionResponse struct {
	Token   string          `json:"token"`
	OrderID string          `json:"pedido_id"`
	Amount  decimal.Decimal `json:"monto"`
	URL     string          `json:"url,omitempty"`
}

// CheckoutResponse resultado del checkout; Redirect es la ruta a la que debe navegar el cliente.
type CheckoutResponse struct {
	State       string               `json:"estado"`
	Order       OrderResponse        `json:"pedido"`
	Transaction *TransactionResponse `json:"transaccion,omitempty"`
	Redirect    string               `json:"redirect"`
}

// CheckoutStateResponse estado del formulario de checkout de la sesión.
type CheckoutStateResponse struct {
	State string `json:"estado"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"usuario_id"`
	UserName        string          `json:"usuario_nombre,omitempty"`
	CartID          string          `json:"carrito_id"`
	DeliveryAddress string          `json:"direccion_entrega"`
	Status          string          `json:"estado"`
	Total           decimal.Decimal `json:"total"`
	CreatedAt       *time.Time      `json:"fecha,omitempty"`
	HasReceipt      bool            `json:"tiene_comprobante"`
	TrackingURL     string          `json:"seguimiento_url,omitempty"`
}

// UpdateOrderStatusRequest cambio de estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"estado"`
}

// FromOrder mapea un pedido.
func FromOrder(o *entity.Order) OrderResponse {
	out := OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		CartID:          o.CartID,
		DeliveryAddress: o.DeliveryAddress,
		Status:          o.Status,
		Total:           o.Total,
		HasReceipt:      o.HasReceipt(),
	}
	if !o.CreatedAt.IsZero() {
		t := o.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

// FromOrders mapea una lista de pedidos; nunca devuelve nil.
func FromOrders(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromOrder(o))
	}
	return out
}

// FromTransaction mapea una transacción; nil devuelve nil.
func FromTransaction(t *entity.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{Token: t.Token, OrderID: t.OrderID, Amount: t.Amount, URL: t.URL}
}
