package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/application/catalog"
	"github.com/jhoicas/autoparts-storefront/internal/application/dto"
	"github.com/jhoicas/autoparts-storefront/internal/domain"
)

// CatalogHandler navegación pública del catálogo.
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler construye el handler del catálogo.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func parsePrice(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, &domain.ValidationError{Fields: []string{field}}
	}
	return &d, nil
}

// Browse godoc
// @Summary      Catálogo de repuestos
// @Description  Trae productos, categorías y sucursales en paralelo y filtra localmente.
// @Description  La búsqueda ignora mayúsculas y tildes.
// @Tags         catalogo
// @Produce      json
// @Param        q            query  string  false  "texto libre (nombre, marca, códigos, descripción)"
// @Param        categoria    query  string  false  "ID de categoría"
// @Param        marca        query  string  false  "marca"
// @Param        precio_min   query  string  false  "precio mínimo"
// @Param        precio_max   query  string  false  "precio máximo"
// @Param        orden        query  string  false  "nombre|precio_asc|precio_desc|marca"
// @Param        disponibles  query  bool    false  "sólo productos con stock"
// @Success      200  {object}  dto.Envelope{data=dto.CatalogResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalogo [get]
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	var q dto.CatalogQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	minPrice, err := parsePrice(q.MinPrice, "precio_min")
	if err != nil {
		return writeError(c, err)
	}
	maxPrice, err := parsePrice(q.MaxPrice, "precio_max")
	if err != nil {
		return writeError(c, err)
	}
	switch q.Sort {
	case "", catalog.SortName, catalog.SortPriceAsc, catalog.SortPriceDesc, catalog.SortBrand:
	default:
		return writeError(c, &domain.ValidationError{Fields: []string{"orden"}})
	}

	page, err := h.svc.Browse(c.UserContext(), q.OnlyAvailable, catalog.Filter{
		Query:      q.Query,
		CategoryID: q.CategoryID,
		Brand:      q.Brand,
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Sort:       q.Sort,
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, dto.FromCatalogPage(page.Products, page.Categories, page.Branches, page.Brands, page.Total))
}

// GetProduct godoc
// @Summary      Detalle de producto
// @Tags         catalogo
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.Envelope{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogo/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	p, err := h.svc.Product(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, dto.FromProduct(p))
}
