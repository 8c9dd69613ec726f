package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autoparts-storefront/internal/application/admin"
	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/application/notify"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

var errBody = fmt.Errorf("cuerpo inválido: %w", domain.ErrInvalidInput)

// panelEndpoint operaciones HTTP de un panel ya ligado al token del administrador.
type panelEndpoint interface {
	list(ctx context.Context) (dto.PanelResponse, error)
	create(c *fiber.Ctx) (any, error)
	update(c *fiber.Ctx, id string) (any, error)
	remove(ctx context.Context, id string, confirmed bool) error
}

// panelAdapter traduce entre el panel genérico y los DTO de su colección.
// decode nil marca el panel como de sólo lectura y borrado.
type panelAdapter[T any, B any] struct {
	panel  *admin.Panel[T]
	decode func(B) T
	encode func(T) any
}

func adapt[T any, B any](p *admin.Panel[T], decode func(B) T, encode func(T) any) panelEndpoint {
	return &panelAdapter[T, B]{panel: p, decode: decode, encode: encode}
}

func (a *panelAdapter[T, B]) list(ctx context.Context) (dto.PanelResponse, error) {
	if err := a.panel.Load(ctx); err != nil {
		return dto.PanelResponse{}, err
	}
	items := make([]any, 0, len(a.panel.Items()))
	for _, it := range a.panel.Items() {
		items = append(items, a.encode(it))
	}
	lookups := a.panel.Lookups()
	if lookups == nil {
		lookups = map[string]map[string]string{}
	}
	return dto.PanelResponse{Panel: a.panel.Name(), Items: items, Lookups: lookups}, nil
}

func (a *panelAdapter[T, B]) create(c *fiber.Ctx) (any, error) {
	if a.decode == nil {
		return nil, domain.ErrUnsupported
	}
	var in B
	if err := c.BodyParser(&in); err != nil {
		return nil, errBody
	}
	created, err := a.panel.Create(c.UserContext(), a.decode(in))
	if err != nil {
		return nil, err
	}
	return a.encode(created), nil
}

// update sigue el flujo del panel: cargar, marcar la fila, reemplazar el borrador y guardar.
func (a *panelAdapter[T, B]) update(c *fiber.Ctx, id string) (any, error) {
	if a.decode == nil {
		return nil, domain.ErrUnsupported
	}
	var in B
	if err := c.BodyParser(&in); err != nil {
		return nil, errBody
	}
	ctx := c.UserContext()
	if err := a.panel.Load(ctx); err != nil {
		return nil, err
	}
	if err := a.panel.StartEdit(id); err != nil {
		return nil, err
	}
	a.panel.SetDraft(a.decode(in))
	if err := a.panel.Save(ctx); err != nil {
		a.panel.CancelEdit()
		return nil, err
	}
	if it, ok := a.panel.Find(id); ok {
		return a.encode(it), nil
	}
	return nil, nil
}

func (a *panelAdapter[T, B]) remove(ctx context.Context, id string, confirmed bool) error {
	return a.panel.Delete(ctx, id, confirmed)
}

// AdminHandler paneles CRUD del back-office.
type AdminHandler struct {
	panels map[string]func(token string) panelEndpoint
}

// NewAdminHandler registra los paneles genéricos. El inventario tiene su propio handler.
func NewAdminHandler(svc *admin.Service) *AdminHandler {
	return &AdminHandler{panels: map[string]func(string) panelEndpoint{
		admin.PanelUsers: func(tok string) panelEndpoint {
			return adapt(svc.Users(tok), func(b dto.UserRequest) *entity.User { return b.ToEntity() },
				func(u *entity.User) any { return dto.FromUser(u) })
		},
		admin.PanelProducts: func(tok string) panelEndpoint {
			return adapt(svc.Products(tok), func(b dto.ProductRequest) *entity.Product { return b.ToEntity() },
				func(p *entity.Product) any { return dto.FromProduct(p) })
		},
		admin.PanelCategories: func(tok string) panelEndpoint {
			return adapt(svc.Categories(tok), func(b dto.CategoryRequest) *entity.Category { return &entity.Category{Name: b.Name} },
				func(c *entity.Category) any { return dto.FromCategory(c) })
		},
		admin.PanelSubcategories: func(tok string) panelEndpoint {
			return adapt(svc.Subcategories(tok), func(b dto.SubcategoryRequest) *entity.Subcategory {
				return &entity.Subcategory{Name: b.Name, CategoryID: b.CategoryID}
			}, func(s *entity.Subcategory) any { return dto.FromSubcategory(s) })
		},
		admin.PanelBranches: func(tok string) panelEndpoint {
			return adapt(svc.Branches(tok), func(b dto.BranchRequest) *entity.Branch { return b.ToEntity() },
				func(b *entity.Branch) any { return dto.FromBranch(b) })
		},
		admin.PanelOrders: func(tok string) panelEndpoint {
			return adapt[*entity.Order, struct{}](svc.Orders(tok), nil,
				func(o *entity.Order) any { return dto.FromOrder(o) })
		},
		admin.PanelPayments: func(tok string) panelEndpoint {
			return adapt(svc.Payments(tok), func(b dto.PaymentRequest) *entity.Payment { return b.ToEntity() },
				func(p *entity.Payment) any { return dto.FromPayment(p) })
		},
		admin.PanelAudit: func(tok string) panelEndpoint {
			return adapt[*entity.AuditEntry, struct{}](svc.Audit(tok), nil,
				func(a *entity.AuditEntry) any { return dto.FromAudit(a) })
		},
	}}
}

func (h *AdminHandler) endpoint(c *fiber.Ctx) (panelEndpoint, bool) {
	factory, ok := h.panels[c.Params("panel")]
	if !ok {
		return nil, false
	}
	return factory(GetSession(c).Token), true
}

func panelNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PANEL_NOT_FOUND", Message: "panel desconocido: " + c.Params("panel")})
}

// List godoc
// @Summary      Listar panel
// @Description  Trae la colección y las colecciones que referencia (id → nombre) en paralelo.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        panel  path  string  true  "usuarios|productos|categorias|subcategorias|sucursales|pedidos|pagos|bitacora"
// @Success      200    {object}  dto.Envelope{data=dto.PanelResponse}
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/admin/{panel} [get]
func (h *AdminHandler) List(c *fiber.Ctx) error {
	ep, ok := h.endpoint(c)
	if !ok {
		return panelNotFound(c)
	}
	out, err := ep.list(c.UserContext())
	if err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudieron cargar los datos"))
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear registro
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        panel  path  string  true  "productos|categorias|subcategorias|sucursales"
// @Success      201    {object}  dto.Envelope
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      405    {object}  dto.ErrorResponse
// @Router       /api/admin/{panel} [post]
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	ep, ok := h.endpoint(c)
	if !ok {
		return panelNotFound(c)
	}
	out, err := ep.create(c)
	if err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo crear el registro"))
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Registro creado")
	return respond(c, fiber.StatusCreated, out)
}

// Update godoc
// @Summary      Guardar registro
// @Description  Última escritura gana; sólo se validan campos obligatorios.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        panel  path  string  true  "usuarios|productos|categorias|subcategorias|sucursales|pagos"
// @Param        id     path  string  true  "ID del registro"
// @Success      200    {object}  dto.Envelope
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/admin/{panel}/{id} [put]
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	ep, ok := h.endpoint(c)
	if !ok {
		return panelNotFound(c)
	}
	out, err := ep.update(c, c.Params("id"))
	if err != nil {
		notify.Error(notifierFor(c), notify.Message(err, "No se pudo guardar el registro"))
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Registro actualizado")
	return respond(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar registro
// @Description  Requiere confirmación explícita con ?confirmar=true; sin ella responde 428.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        panel      path   string  true   "panel"
// @Param        id         path   string  true   "ID del registro"
// @Param        confirmar  query  bool    false  "confirmación explícita"
// @Success      200        {object}  dto.Envelope{data=dto.DeleteResponse}
// @Failure      428        {object}  dto.ErrorResponse
// @Router       /api/admin/{panel}/{id} [delete]
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	ep, ok := h.endpoint(c)
	if !ok {
		return panelNotFound(c)
	}
	id := c.Params("id")
	if err := ep.remove(c.UserContext(), id, c.QueryBool("confirmar")); err != nil {
		if !errors.Is(err, domain.ErrConfirmationRequired) {
			notify.Error(notifierFor(c), notify.Message(err, "No se pudo eliminar el registro"))
		}
		return writeError(c, err)
	}
	notify.Success(notifierFor(c), "Registro eliminado")
	return respond(c, fiber.StatusOK, dto.DeleteResponse{ID: id, Deleted: true})
}
