package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// SimulatePaymentRequest parámetros de la pantalla de pago (vienen de /pago?monto=&orden=).
type SimulatePaymentRequest struct {
	OrderID string          `json:"orden"`
	Amount  decimal.Decimal `json:"monto"`
}

// SimulatePaymentResponse estado final de la simulación.
// Redirect sólo viene cuando el pago fue aprobado.
type SimulatePaymentResponse struct {
	State    string          `json:"estado"`
	OrderID  string          `json:"orden"`
	Amount   decimal.Decimal `json:"monto"`
	Redirect string          `json:"redirect,omitempty"`
	CanRetry bool            `json:"puede_reintentar"`
}

// RedirectResponse ruta a la que debe navegar el cliente.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}

// TransbankStatsResponse panel de transacciones simuladas.
type TransbankStatsResponse struct {
	Total      int             `json:"total"`
	Approved   int             `json:"aprobadas"`
	Rejected   int             `json:"rechazadas"`
	Pending    int             `json:"pendientes"`
	AmountPaid decimal.Decimal `json:"monto_total"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"pedido_id"`
	Amount    decimal.Decimal `json:"monto"`
	Method    string          `json:"metodo"`
	Status    string          `json:"estado"`
	Timestamp time.Time       `json:"fecha"`
}

// FromStats mapea las estadísticas.
func FromStats(s *entity.TransbankStats) TransbankStatsResponse {
	return TransbankStatsResponse{
		Total:      s.Total,
		Approved:   s.Approved,
		Rejected:   s.Rejected,
		Pending:    s.Pending,
		AmountPaid: s.AmountPaid,
	}
}

// FromPayment mapea un pago.
func FromPayment(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method,
		Status:    p.Status,
		Timestamp: p.Timestamp,
	}
}
