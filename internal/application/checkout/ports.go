package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Gateway pedidos y simulación Transbank en el backend.
type Gateway interface {
	CreateOrder(ctx context.Context, token string, in entity.NewOrder) (*entity.Order, error)
	CreateTransaction(ctx context.Context, token, orderID string, amount decimal.Decimal) (*entity.Transaction, error)
	ConfirmPayment(ctx context.Context, token, txToken, orderID string) error
}

// Cart lo que el checkout necesita del carrito de la sesión.
type Cart interface {
	RemoteID() string
	Total() decimal.Decimal
	IsEmpty() bool
	Detach(ctx context.Context) error
}

// Scheduler ejecuta f después de d. time.AfterFunc en producción.
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timeScheduler struct{}

func (timeScheduler) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }
