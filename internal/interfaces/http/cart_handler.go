package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/cart"
	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/application/session"
	"github.com/jhoicas/autoparts-storefront/internal/domain/repository"
)

// CartHandler expone el carrito de la sesión.
type CartHandler struct {
	state  repository.StateStore
	gw     cart.Gateway
	locker *session.Locker
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(state repository.StateStore, gw cart.Gateway, locker *session.Locker) *CartHandler {
	return &CartHandler{state: state, gw: gw, locker: locker}
}

// open bloquea la sesión y abre su carrito. El llamador debe invocar unlock.
func (h *CartHandler) open(c *fiber.Ctx) (store *cart.Store, unlock func(), err error) {
	s := GetSession(c)
	unlock = h.locker.Lock(s.ID)
	store, err = cart.Open(c.UserContext(), h.state, h.gw, cart.Owner{
		SessionID: s.ID,
		UserID:    s.UserID(),
		Token:     s.Token,
	}, notifierFor(c))
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return store, unlock, nil
}

func cartResponse(store *cart.Store) dto.CartResponse {
	return dto.FromCartItems(store.RemoteID(), store.Items(), store.Total(), store.Count())
}

// Get godoc
// @Summary      Ver carrito
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.CartResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/carrito [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	store, unlock, err := h.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()
	return respond(c, fiber.StatusOK, cartResponse(store))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Crea el carrito remoto si no existe. Si el producto ya está, suma la cantidad.
// @Description  Un fallo del backend no revierte el cambio local: llega como toast de error.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AddCartItemRequest  true  "producto_id, cantidad, valor_unitario"
// @Success      200   {object}  dto.Envelope{data=dto.CartResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carrito/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	store, unlock, err := h.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()
	if err := store.AddToCart(c.UserContext(), in.ToItem()); err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, cartResponse(store))
}

// UpdateQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidades menores a 1 se ignoran sin error.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path  string                     true  "ID del producto"
// @Param        body       body  dto.UpdateQuantityRequest  true  "cantidad"
// @Success      200        {object}  dto.Envelope{data=dto.CartResponse}
// @Router       /api/carrito/items/{productId} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	var in dto.UpdateQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	store, unlock, err := h.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()
	if err := store.UpdateQuantity(c.UserContext(), c.Params("productId"), in.Quantity); err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, cartResponse(store))
}

// RemoveItem godoc
// @Summary      Quitar producto del carrito
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path  string  true  "ID del producto"
// @Success      200        {object}  dto.Envelope{data=dto.CartResponse}
// @Router       /api/carrito/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	store, unlock, err := h.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()
	if err := store.RemoveFromCart(c.UserContext(), c.Params("productId")); err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, cartResponse(store))
}

// Clear godoc
// @Summary      Vaciar carrito
// @Description  El carrito local queda vacío aunque falle el backend.
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.CartResponse}
// @Router       /api/carrito [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	store, unlock, err := h.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()
	if err := store.ClearCart(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, cartResponse(store))
}

// Refresh godoc
// @Summary      Refrescar carrito desde el backend
// @Description  Reemplaza las líneas locales por las del carrito remoto.
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.CartResponse}
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/carrito/refrescar [post]
func (h *CartHandler) Refresh(c *fiber.Ctx) error {
	store, unlock, err := h.open(c)
	if err != nil {
		return writeError(c, err)
	}
	defer unlock()
	if err := store.Refresh(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, cartResponse(store))
}
