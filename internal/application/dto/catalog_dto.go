package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// CatalogQuery parámetros de GET /api/catalogo.
type CatalogQuery struct {
	Query         string `query:"q"`
	CategoryID    string `query:"categoria"`
	Brand         string `query:"marca"`
	MinPrice      string `query:"precio_min"`
	MaxPrice      string `query:"precio_max"`
	Sort          string `query:"orden"` // nombre|precio_asc|precio_desc|marca
	OnlyAvailable bool   `query:"disponibles"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	ManufacturerCode string          `json:"codigo_fabricante"`
	Brand            string          `json:"marca"`
	InternalCode     string          `json:"codigo_interno"`
	Name             string          `json:"nombre"`
	Description      string          `json:"descripcion"`
	Price            decimal.Decimal `json:"precio"`
	MinStock         int             `json:"stock_minimo"`
	CategoryID       string          `json:"categoria_id"`
	Image            string          `json:"imagen"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// SubcategoryResponse salida de una subcategoría.
type SubcategoryResponse struct {
	ID         string `json:"id"`
	Name       string `json:"nombre"`
	CategoryID string `json:"categoria_id"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID      string `json:"id"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Comuna  string `json:"comuna"`
	Region  string `json:"region"`
}

// CatalogResponse una página del catálogo ya filtrada y ordenada.
type CatalogResponse struct {
	Products   []ProductResponse  `json:"productos"`
	Categories []CategoryResponse `json:"categorias"`
	Branches   []BranchResponse   `json:"sucursales"`
	Brands     []string           `json:"marcas"`
	Count      int                `json:"cantidad"`
	Total      int                `json:"total"`
}

// FromProduct mapea un producto.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		ManufacturerCode: p.ManufacturerCode,
		Brand:            p.Brand,
		InternalCode:     p.InternalCode,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		MinStock:         p.MinStock,
		CategoryID:       p.CategoryID,
		Image:            p.Image,
	}
}

// FromProducts mapea una lista de productos; nunca devuelve nil.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromCategory mapea una categoría.
func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

// FromSubcategory mapea una subcategoría.
func FromSubcategory(s *entity.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{ID: s.ID, Name: s.Name, CategoryID: s.CategoryID}
}

// FromBranch mapea una sucursal.
func FromBranch(b *entity.Branch) BranchResponse {
	return BranchResponse{ID: b.ID, Name: b.Name, Address: b.Address, Comuna: b.Comuna, Region: b.Region}
}

// FromCatalogPage arma la respuesta del catálogo.
func FromCatalogPage(products []*entity.Product, categories []*entity.Category, branches []*entity.Branch, brands []string, total int) CatalogResponse {
	out := CatalogResponse{
		Products:   FromProducts(products),
		Categories: make([]CategoryResponse, 0, len(categories)),
		Branches:   make([]BranchResponse, 0, len(branches)),
		Brands:     brands,
		Count:      len(products),
		Total:      total,
	}
	if out.Brands == nil {
		out.Brands = []string{}
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, FromCategory(c))
	}
	for _, b := range branches {
		out.Branches = append(out.Branches, FromBranch(b))
	}
	return out
}
