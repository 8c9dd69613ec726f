package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/checkout"
	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
)

// CheckoutHandler envío del formulario de compra.
type CheckoutHandler struct {
	svc   *checkout.Service
	carts *CartHandler
}

// NewCheckoutHandler construye el handler de checkout.
func NewCheckoutHandler(svc *checkout.Service, carts *CartHandler) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, carts: carts}
}

// Submit godoc
// @Summary      Finalizar compra
// @Description  Crea el pedido con el carrito sincronizado. Con Transbank crea además la transacción
// @Description  simulada y redirige a /pago; con otros métodos redirige a /pedido-exitoso.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CheckoutRequest  true  "datos de envío y método de pago"
// @Success      201   {object}  dto.Envelope{data=dto.CheckoutResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	s := GetSession(c)
	store, unlock, err := h.carts.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()

	res, err := h.svc.Submit(c.UserContext(), checkout.Input{
		SessionID: s.ID,
		UserID:    s.UserID(),
		Token:     s.Token,
		Form: checkout.Form{
			Name:          in.Name,
			Email:         in.Email,
			Phone:         in.Phone,
			Address:       in.Address,
			Comuna:        in.Comuna,
			Region:        in.Region,
			PaymentMethod: in.PaymentMethod,
			Notes:         in.Notes,
		},
		Cart:     store,
		Notifier: notifierFor(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusCreated, dto.CheckoutResponse{
		State:       string(res.State),
		Order:       dto.FromOrder(res.Order),
		Transaction: dto.FromTransaction(res.Transaction),
		Redirect:    res.Redirect,
	})
}

// State godoc
// @Summary      Estado del checkout de la sesión
// @Tags         checkout
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.CheckoutStateResponse}
// @Router       /api/checkout/estado [get]
func (h *CheckoutHandler) State(c *fiber.Ctx) error {
	return respond(c, fiber.StatusOK, dto.CheckoutStateResponse{State: string(h.svc.State(GetSessionID(c)))})
}
