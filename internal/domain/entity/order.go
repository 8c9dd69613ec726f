package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido.
const (
	OrderPending   = "pendiente"
	OrderConfirmed = "confirmado"
	OrderShipped   = "enviado"
	OrderDelivered = "entregado"
	OrderCancelled = "cancelado"
)

// orderNext progresión lineal pendiente → confirmado → enviado → entregado.
var orderNext = map[string]string{
	OrderPending:   OrderConfirmed,
	OrderConfirmed: OrderShipped,
	OrderShipped:   OrderDelivered,
}

// Order representa un pedido creado en el backend.
type Order struct {
	ID              string
	UserID          string
	CartID          string
	DeliveryAddress string
	Status          string
	Total           decimal.Decimal
	CreatedAt       time.Time
}

// NewOrder datos para crear un pedido.
type NewOrder struct {
	UserID          string
	CartID          string
	DeliveryAddress string
	Total           decimal.Decimal
	PaymentMethod   string
}

// IsValidOrderStatus indica si el estado es conocido.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// IsTerminal indica si el pedido ya no admite cambios de estado.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderDelivered || o.Status == OrderCancelled
}

// CanTransition valida el paso de estado: avanzar un paso o cancelar un pedido no terminal.
func CanTransition(from, to string) bool {
	if !IsValidOrderStatus(from) || !IsValidOrderStatus(to) {
		return false
	}
	if from == OrderDelivered || from == OrderCancelled {
		return false
	}
	if to == OrderCancelled {
		return true
	}
	return orderNext[from] == to
}

// HasReceipt indica si el pedido ya puede emitir comprobante.
func (o *Order) HasReceipt() bool {
	switch o.Status {
	case OrderConfirmed, OrderShipped, OrderDelivered:
		return true
	}
	return false
}
