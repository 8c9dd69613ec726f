package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentTransbank     = "transbank"
	PaymentTransferencia = "transferencia"
	PaymentEfectivo      = "efectivo"
)

// Estados de un pago.
const (
	PaymentPending = "pendiente"
	PaymentPaid    = "pagado"
	PaymentFailed  = "fallido"
)

// Payment representa un pago registrado en el backend.
type Payment struct {
	ID        string
	OrderID   string
	Amount    decimal.Decimal
	Method    string
	Status    string
	Timestamp time.Time
}

// Transaction es la transacción simulada de Transbank creada para un pedido.
type Transaction struct {
	Token   string
	OrderID string
	Amount  decimal.Decimal
	URL     string
}

// TransbankStats resumen del panel de transacciones simuladas.
type TransbankStats struct {
	Total      int
	Approved   int
	Rejected   int
	Pending    int
	AmountPaid decimal.Decimal
}

// IsValidPaymentMethod indica si el método de pago es uno de los aceptados.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentTransbank, PaymentTransferencia, PaymentEfectivo:
		return true
	}
	return false
}
