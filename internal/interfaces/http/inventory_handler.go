package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/admin"
	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
)

// InventoryHandler panel de inventario (admin y bodeguero).
type InventoryHandler struct {
	svc *admin.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *admin.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) loaded(c *fiber.Ctx) (*admin.InventoryPanel, error) {
	p := h.svc.Inventory(GetSession(c).Token)
	if err := p.Load(c.UserContext()); err != nil {
		return nil, err
	}
	return p, nil
}

func inventoryResponse(c *fiber.Ctx, p *admin.InventoryPanel) (dto.InventoryResponse, error) {
	low, err := p.LowStock(c.UserContext())
	if err != nil {
		return dto.InventoryResponse{}, err
	}
	lookups := p.Lookups()
	if lookups == nil {
		lookups = map[string]map[string]string{}
	}
	return dto.InventoryResponse{
		Items:    dto.FromInventoryRows(p.Items()),
		LowStock: dto.FromInventoryRows(low),
		Lookups:  lookups,
	}, nil
}

// List godoc
// @Summary      Inventario por sucursal
// @Description  Filas de stock con nombres de producto y sucursal, más las filas bajo el stock mínimo.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{data=dto.InventoryResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/inventario [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	p, err := h.loaded(c)
	if err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo cargar el inventario"))
		return writeError(c, err)
	}
	out, err := inventoryResponse(c, p)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// AddStock godoc
// @Summary      Ingresar stock
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.StockMovementRequest  true  "producto_id, sucursal_id, cantidad"
// @Success      200   {object}  dto.Envelope{data=dto.InventoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/ingresar [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p := h.svc.Inventory(GetSession(c).Token)
	if err := p.AddStock(c.UserContext(), in.ProductID, in.BranchID, in.Quantity); err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo ingresar el stock"))
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Stock ingresado")
	out, err := inventoryResponse(c, p)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// RemoveStock godoc
// @Summary      Rebajar stock
// @Description  No permite dejar stock negativo.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.StockMovementRequest  true  "producto_id, sucursal_id, cantidad"
// @Success      200   {object}  dto.Envelope{data=dto.InventoryResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/rebajar [post]
func (h *InventoryHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.loaded(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := p.RemoveStock(c.UserContext(), in.ProductID, in.BranchID, in.Quantity); err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo rebajar el stock"))
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Stock rebajado")
	out, err := inventoryResponse(c, p)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// DeleteRow godoc
// @Summary      Eliminar fila de inventario
// @Description  Requiere ?confirmar=true.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path   string  true   "ID del producto"
// @Param        branchId   path   string  true   "ID de la sucursal"
// @Param        confirmar  query  bool    false  "confirmación explícita"
// @Success      200        {object}  dto.Envelope{data=dto.DeleteResponse}
// @Failure      428        {object}  dto.ErrorResponse
// @Router       /api/admin/inventario/{productId}/{branchId} [delete]
func (h *InventoryHandler) DeleteRow(c *fiber.Ctx) error {
	productID, branchID := c.Params("productId"), c.Params("branchId")
	p := h.svc.Inventory(GetSession(c).Token)
	if err := p.DeleteRow(c.UserContext(), productID, branchID, c.QueryBool("confirmar")); err != nil {
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Fila de inventario eliminada")
	return respond(c, fiber.StatusOK, dto.DeleteResponse{ID: productID + ":" + branchID, Deleted: true})
}
