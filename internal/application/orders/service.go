// Package orders: seguimiento de pedidos, cambios de estado y comprobantes.
package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// Viewer quien consulta: dueño del pedido o personal con permiso.
type Viewer struct {
	UserID string
	Name   string
	Role   string
	Token  string
}

func (v Viewer) isStaff() bool {
	return v.Role == entity.RoleAdmin || v.Role == entity.RoleBodeguero
}

// Service casos de uso de pedidos.
type Service struct {
	gw        Gateway
	receipts  ReceiptGenerator
	qr        QRGenerator
	publicURL string
}

// NewService construye el servicio. publicURL es la base de los enlaces de seguimiento.
func NewService(gw Gateway, receipts ReceiptGenerator, qr QRGenerator, publicURL string) *Service {
	return &Service{gw: gw, receipts: receipts, qr: qr, publicURL: strings.TrimRight(publicURL, "/")}
}

// MyOrders pedidos del usuario, los más recientes primero.
func (s *Service) MyOrders(ctx context.Context, v Viewer) ([]*entity.Order, error) {
	if v.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := s.gw.ListOrdersByUser(ctx, v.Token, v.UserID)
	if err != nil {
		return nil, fmt.Errorf("orders: listar: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

// Get devuelve el pedido si el usuario es su dueño o es personal.
func (s *Service) Get(ctx context.Context, v Viewer, id string) (*entity.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	o, err := s.gw.GetOrder(ctx, v.Token, id)
	if err != nil {
		return nil, fmt.Errorf("orders: obtener: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.UserID != v.UserID && !v.isStaff() {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// UpdateStatus cambia el estado validando la progresión localmente antes de llamar al backend.
func (s *Service) UpdateStatus(ctx context.Context, v Viewer, id, status string) (*entity.Order, error) {
	if v.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.IsValidOrderStatus(status) {
		return nil, &domain.ValidationError{Fields: []string{"estado"}}
	}
	o, err := s.Get(ctx, v, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(o.Status, status) {
		return nil, fmt.Errorf("orders: %s → %s: %w", o.Status, status, domain.ErrInvalidTransition)
	}
	updated, err := s.gw.UpdateOrderStatus(ctx, v.Token, id, status)
	if err != nil {
		return nil, fmt.Errorf("orders: actualizar estado: %w", err)
	}
	log.Info().Str("order_id", id).Str("from", o.Status).Str("to", status).Str("by", v.UserID).Msg("estado de pedido actualizado")
	return updated, nil
}

// TrackingURL enlace público de seguimiento del pedido.
func (s *Service) TrackingURL(orderID string) string {
	return s.publicURL + "/pedidos/" + orderID
}

// Receipt genera el PDF del comprobante. Sólo pedidos confirmados en adelante tienen comprobante.
//
// Retorna:
//   - (pdf, filename, nil)   si todo sale bien.
//   - domain.ErrNotFound      si el pedido no existe.
//   - domain.ErrForbidden     si el pedido no es del usuario.
//   - domain.ErrInvalidInput  si el pedido aún está pendiente o fue cancelado.
func (s *Service) Receipt(ctx context.Context, v Viewer, id string) (pdf []byte, filename string, err error) {
	o, err := s.Get(ctx, v, id)
	if err != nil {
		return nil, "", err
	}
	if !o.HasReceipt() {
		return nil, "", fmt.Errorf("orders: pedido %s en estado %s sin comprobante: %w", o.ID, o.Status, domain.ErrInvalidInput)
	}

	r := &Receipt{Order: o, CustomerName: v.Name, TrackingURL: s.TrackingURL(o.ID)}
	if o.CartID != "" {
		c, err := s.gw.GetCart(ctx, v.Token, o.CartID)
		if err != nil {
			log.Warn().Err(err).Str("order_id", o.ID).Msg("comprobante sin detalle: no se pudo leer el carrito")
		} else if c != nil {
			r.Items = c.Items
		}
	}
	if o.UserID != v.UserID {
		if u, err := s.gw.GetUser(ctx, v.Token, o.UserID); err == nil && u != nil {
			r.CustomerName = u.Name
		} else {
			r.CustomerName = "Cliente #" + o.UserID
		}
	}

	pdf, err = s.receipts.GenerateReceipt(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("orders: generar comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("comprobante-pedido-%s.pdf", o.ID), nil
}

// TrackingQR PNG con el enlace de seguimiento del pedido.
func (s *Service) TrackingQR(ctx context.Context, v Viewer, id string) ([]byte, error) {
	o, err := s.Get(ctx, v, id)
	if err != nil {
		return nil, err
	}
	png, err := s.qr.PNG(s.TrackingURL(o.ID))
	if err != nil {
		return nil, fmt.Errorf("orders: qr: %w", err)
	}
	return png, nil
}
