package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/application/admin"
	"github.com/jhoicas/autoparts-storefront/internal/application/checkout"
	"github.com/jhoicas/autoparts-storefront/internal/application/orders"
	"github.com/jhoicas/autoparts-storefront/internal/application/payment"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

var (
	_ checkout.Gateway     = (*Client)(nil)
	_ orders.Gateway       = (*Client)(nil)
	_ admin.Gateway        = (*Client)(nil)
	_ payment.Confirmer    = (*Client)(nil)
	_ payment.StatsGateway = (*Client)(nil)
)

func isNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }

func ordersFrom(out []orderWire) []*entity.Order {
	list := make([]*entity.Order, 0, len(out))
	for _, w := range out {
		list = append(list, w.entity())
	}
	return list
}

// CreateOrder POST /pedidos.
func (c *Client) CreateOrder(ctx context.Context, token string, in entity.NewOrder) (*entity.Order, error) {
	var out orderWire
	body := orderBody{
		UserID:          in.UserID,
		CartID:          in.CartID,
		DeliveryAddress: in.DeliveryAddress,
		Total:           in.Total,
		PaymentMethod:   in.PaymentMethod,
	}
	if err := c.do(ctx, http.MethodPost, "/pedidos", token, body, &out, "pedidos"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// ListOrders GET /pedidos.
func (c *Client) ListOrders(ctx context.Context, token string) ([]*entity.Order, error) {
	var out []orderWire
	if err := c.do(ctx, http.MethodGet, "/pedidos", token, nil, &out, "pedidos"); err != nil {
		return nil, err
	}
	return ordersFrom(out), nil
}

// ListOrdersByUser GET /pedidos/usuario/{id}.
func (c *Client) ListOrdersByUser(ctx context.Context, token, userID string) ([]*entity.Order, error) {
	var out []orderWire
	if err := c.do(ctx, http.MethodGet, "/pedidos/usuario/"+seg(userID), token, nil, &out, "pedidos"); err != nil {
		return nil, err
	}
	return ordersFrom(out), nil
}

// GetOrder GET /pedidos/{id}. Un 404 se devuelve como (nil, nil).
func (c *Client) GetOrder(ctx context.Context, token, id string) (*entity.Order, error) {
	var out orderWire
	if err := c.do(ctx, http.MethodGet, "/pedidos/"+seg(id), token, nil, &out, "pedidos"); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.entity(), nil
}

// UpdateOrderStatus PUT /pedidos/{id}/estado.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, id, status string) (*entity.Order, error) {
	var out orderWire
	if err := c.do(ctx, http.MethodPut, "/pedidos/"+seg(id)+"/estado", token, map[string]string{"estado": status}, &out, "pedidos"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// DeleteOrder DELETE /pedidos/{id}.
func (c *Client) DeleteOrder(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/pedidos/"+seg(id), token, nil, nil, "pedidos")
}

// ListPayments GET /pagos.
func (c *Client) ListPayments(ctx context.Context, token string) ([]*entity.Payment, error) {
	var out []paymentWire
	if err := c.do(ctx, http.MethodGet, "/pagos", token, nil, &out, "pagos"); err != nil {
		return nil, err
	}
	list := make([]*entity.Payment, 0, len(out))
	for _, w := range out {
		list = append(list, w.entity())
	}
	return list, nil
}

// UpdatePayment PUT /pagos/{id}.
func (c *Client) UpdatePayment(ctx context.Context, token string, p *entity.Payment) (*entity.Payment, error) {
	var out paymentWire
	body := paymentBody{OrderID: p.OrderID, Amount: p.Amount, Method: p.Method, Status: p.Status}
	if err := c.do(ctx, http.MethodPut, "/pagos/"+seg(p.ID), token, body, &out, "pagos"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// DeletePayment DELETE /pagos/{id}.
func (c *Client) DeletePayment(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/pagos/"+seg(id), token, nil, nil, "pagos")
}

// ListAudit GET /bitacora.
func (c *Client) ListAudit(ctx context.Context, token string) ([]*entity.AuditEntry, error) {
	var out []auditWire
	if err := c.do(ctx, http.MethodGet, "/bitacora", token, nil, &out, "bitacora"); err != nil {
		return nil, err
	}
	list := make([]*entity.AuditEntry, 0, len(out))
	for _, w := range out {
		list = append(list, &entity.AuditEntry{ID: string(w.ID), UserID: string(w.UserID), Action: w.Action, Timestamp: w.Timestamp.Time})
	}
	return list, nil
}

// CreateTransaction POST /transbank/crear-transaccion.
func (c *Client) CreateTransaction(ctx context.Context, token, orderID string, amount decimal.Decimal) (*entity.Transaction, error) {
	var out transactionWire
	body := map[string]any{"pedido_id": orderID, "monto": amount}
	if err := c.do(ctx, http.MethodPost, "/transbank/crear-transaccion", token, body, &out, "transbank"); err != nil {
		return nil, err
	}
	tx := &entity.Transaction{Token: out.Token, OrderID: string(out.OrderID), Amount: out.Amount, URL: out.URL}
	if tx.OrderID == "" {
		tx.OrderID = orderID
	}
	if tx.Amount.IsZero() {
		tx.Amount = amount
	}
	return tx, nil
}

// ConfirmPayment POST /transbank/confirmar-pago.
func (c *Client) ConfirmPayment(ctx context.Context, token, txToken, orderID string) error {
	body := map[string]string{"token": txToken, "pedido_id": orderID}
	return c.do(ctx, http.MethodPost, "/transbank/confirmar-pago", token, body, nil, "transbank")
}

// TransbankStats GET /transbank/estadisticas.
func (c *Client) TransbankStats(ctx context.Context, token string) (*entity.TransbankStats, error) {
	var out statsWire
	if err := c.do(ctx, http.MethodGet, "/transbank/estadisticas", token, nil, &out, "transbank"); err != nil {
		return nil, err
	}
	return &entity.TransbankStats{
		Total:      out.Total,
		Approved:   out.Approved,
		Rejected:   out.Rejected,
		Pending:    out.Pending,
		AmountPaid: out.AmountPaid,
	}, nil
}
