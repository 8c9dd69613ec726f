package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/application/orders"
)

// OrderHandler seguimiento de pedidos, comprobantes y cambio de estado.
type OrderHandler struct {
	svc *orders.Service
}

// NewOrderHandler construye el handler de pedidos.
func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func viewer(c *fiber.Ctx) orders.Viewer {
	s := GetSession(c)
	v := orders.Viewer{UserID: s.UserID(), Role: s.Role(), Token: s.Token}
	if s.User != nil {
		v.Name = s.User.Name
	}
	return v
}

// Mine godoc
// @Summary      Mis pedidos
// @Description  Pedidos del usuario, los más recientes primero.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=[]dto.OrderResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/pedidos [get]
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	list, err := h.svc.MyOrders(c.UserContext(), viewer(c))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.FromOrders(list)
	for i := range out {
		out[i].TrackingURL = h.svc.TrackingURL(out[i].ID)
	}
	return respond(c, fiber.StatusOK, out)
}

// Get godoc
// @Summary      Detalle de pedido
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.Envelope{data=dto.OrderResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, err := h.svc.Get(c.UserContext(), viewer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := dto.FromOrder(o)
	out.TrackingURL = h.svc.TrackingURL(o.ID)
	return respond(c, fiber.StatusOK, out)
}

// Receipt godoc
// @Summary      Comprobante PDF del pedido
// @Description  Disponible desde que el pedido está confirmado.
// @Tags         pedidos
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/comprobante [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdf, filename, err := h.svc.Receipt(c.UserContext(), viewer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}

// TrackingQR godoc
// @Summary      QR de seguimiento del pedido
// @Tags         pedidos
// @Produce      image/png
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/qr [get]
func (h *OrderHandler) TrackingQR(c *fiber.Ctx) error {
	png, err := h.svc.TrackingQR(c.UserContext(), viewer(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, "inline; filename=pedido-"+c.Params("id")+"-qr.png")
	return c.Status(fiber.StatusOK).Send(png)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un pedido
// @Description  pendiente → confirmado → enviado → entregado, o cancelado desde cualquier estado no terminal.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "estado"
// @Success      200   {object}  dto.Envelope{data=dto.OrderResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/pedidos/{id}/estado [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	o, err := h.svc.UpdateStatus(c.UserContext(), viewer(c), c.Params("id"), in.Status)
	if err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo actualizar el estado del pedido"))
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Pedido actualizado a "+o.Status)
	return respond(c, fiber.StatusOK, dto.FromOrder(o))
}
