package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/autoparts-storefront/internal/application/catalog"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

var _ catalog.Gateway = (*Client)(nil)

// ListProducts GET /productos o /productos/disponibles.
func (c *Client) ListProducts(ctx context.Context, onlyAvailable bool) ([]*entity.Product, error) {
	path := "/productos"
	if onlyAvailable {
		path = "/productos/disponibles"
	}
	var out []productWire
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out, "productos"); err != nil {
		return nil, err
	}
	list := make([]*entity.Product, 0, len(out))
	for _, w := range out {
		list = append(list, w.entity())
	}
	return list, nil
}

// GetProduct GET /productos/{id}. Un 404 se devuelve como (nil, nil).
func (c *Client) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var out productWire
	if err := c.do(ctx, http.MethodGet, "/productos/"+seg(id), "", nil, &out, "productos"); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.entity(), nil
}

// CreateProduct POST /productos.
func (c *Client) CreateProduct(ctx context.Context, token string, p *entity.Product) (*entity.Product, error) {
	var out productWire
	if err := c.do(ctx, http.MethodPost, "/productos", token, newProductBody(p), &out, "productos"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// UpdateProduct PUT /productos/{id}.
func (c *Client) UpdateProduct(ctx context.Context, token string, p *entity.Product) (*entity.Product, error) {
	var out productWire
	if err := c.do(ctx, http.MethodPut, "/productos/"+seg(p.ID), token, newProductBody(p), &out, "productos"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// DeleteProduct DELETE /productos/{id}.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/productos/"+seg(id), token, nil, nil, "productos")
}

// ListCategories GET /categorias.
func (c *Client) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var out []categoryWire
	if err := c.do(ctx, http.MethodGet, "/categorias", "", nil, &out, "categorias"); err != nil {
		return nil, err
	}
	list := make([]*entity.Category, 0, len(out))
	for _, w := range out {
		list = append(list, &entity.Category{ID: string(w.ID), Name: w.Name})
	}
	return list, nil
}

// CreateCategory POST /categorias.
func (c *Client) CreateCategory(ctx context.Context, token string, cat *entity.Category) (*entity.Category, error) {
	var out categoryWire
	if err := c.do(ctx, http.MethodPost, "/categorias", token, map[string]string{"nombre": cat.Name}, &out, "categorias"); err != nil {
		return nil, err
	}
	return &entity.Category{ID: string(out.ID), Name: out.Name}, nil
}

// UpdateCategory PUT /categorias/{id}.
func (c *Client) UpdateCategory(ctx context.Context, token string, cat *entity.Category) (*entity.Category, error) {
	var out categoryWire
	if err := c.do(ctx, http.MethodPut, "/categorias/"+seg(cat.ID), token, map[string]string{"nombre": cat.Name}, &out, "categorias"); err != nil {
		return nil, err
	}
	return &entity.Category{ID: string(out.ID), Name: out.Name}, nil
}

// DeleteCategory DELETE /categorias/{id}.
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/categorias/"+seg(id), token, nil, nil, "categorias")
}

// ListSubcategories GET /subcategorias.
func (c *Client) ListSubcategories(ctx context.Context) ([]*entity.Subcategory, error) {
	var out []subcategoryWire
	if err := c.do(ctx, http.MethodGet, "/subcategorias", "", nil, &out, "subcategorias"); err != nil {
		return nil, err
	}
	list := make([]*entity.Subcategory, 0, len(out))
	for _, w := range out {
		list = append(list, &entity.Subcategory{ID: string(w.ID), Name: w.Name, CategoryID: string(w.CategoryID)})
	}
	return list, nil
}

func subcategoryBody(s *entity.Subcategory) map[string]string {
	return map[string]string{"nombre": s.Name, "categoria_id": s.CategoryID}
}

// CreateSubcategory POST /subcategorias.
func (c *Client) CreateSubcategory(ctx context.Context, token string, s *entity.Subcategory) (*entity.Subcategory, error) {
	var out subcategoryWire
	if err := c.do(ctx, http.MethodPost, "/subcategorias", token, subcategoryBody(s), &out, "subcategorias"); err != nil {
		return nil, err
	}
	return &entity.Subcategory{ID: string(out.ID), Name: out.Name, CategoryID: string(out.CategoryID)}, nil
}

// UpdateSubcategory PUT /subcategorias/{id}.
func (c *Client) UpdateSubcategory(ctx context.Context, token string, s *entity.Subcategory) (*entity.Subcategory, error) {
	var out subcategoryWire
	if err := c.do(ctx, http.MethodPut, "/subcategorias/"+seg(s.ID), token, subcategoryBody(s), &out, "subcategorias"); err != nil {
		return nil, err
	}
	return &entity.Subcategory{ID: string(out.ID), Name: out.Name, CategoryID: string(out.CategoryID)}, nil
}

// DeleteSubcategory DELETE /subcategorias/{id}.
func (c *Client) DeleteSubcategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/subcategorias/"+seg(id), token, nil, nil, "subcategorias")
}

// ListBranches GET /sucursales.
func (c *Client) ListBranches(ctx context.Context) ([]*entity.Branch, error) {
	var out []branchWire
	if err := c.do(ctx, http.MethodGet, "/sucursales", "", nil, &out, "sucursales"); err != nil {
		return nil, err
	}
	list := make([]*entity.Branch, 0, len(out))
	for _, w := range out {
		list = append(list, w.entity())
	}
	return list, nil
}

func branchBody(b *entity.Branch) map[string]string {
	return map[string]string{"nombre": b.Name, "direccion": b.Address, "comuna": b.Comuna, "region": b.Region}
}

// CreateBranch POST /sucursales.
func (c *Client) CreateBranch(ctx context.Context, token string, b *entity.Branch) (*entity.Branch, error) {
	var out branchWire
	if err := c.do(ctx, http.MethodPost, "/sucursales", token, branchBody(b), &out, "sucursales"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// UpdateBranch PUT /sucursales/{id}.
func (c *Client) UpdateBranch(ctx context.Context, token string, b *entity.Branch) (*entity.Branch, error) {
	var out branchWire
	if err := c.do(ctx, http.MethodPut, "/sucursales/"+seg(b.ID), token, branchBody(b), &out, "sucursales"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// DeleteBranch DELETE /sucursales/{id}.
func (c *Client) DeleteBranch(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/sucursales/"+seg(id), token, nil, nil, "sucursales")
}
