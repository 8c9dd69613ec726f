package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// ListInventory GET /inventario.
func (c *Client) ListInventory(ctx context.Context, token string) ([]*entity.InventoryRow, error) {
	var out []inventoryWire
	if err := c.do(ctx, http.MethodGet, "/inventario", token, nil, &out, "inventario"); err != nil {
		return nil, err
	}
	list := make([]*entity.InventoryRow, 0, len(out))
	for _, w := range out {
		list = append(list, &entity.InventoryRow{ProductID: string(w.ProductID), BranchID: string(w.BranchID), Stock: w.Stock})
	}
	return list, nil
}

// AddStock POST /inventario/ingresar.
func (c *Client) AddStock(ctx context.Context, token, productID, branchID string, qty int) error {
	body := stockBody{ProductID: productID, BranchID: branchID, Quantity: qty}
	return c.do(ctx, http.MethodPost, "/inventario/ingresar", token, body, nil, "inventario")
}

// RemoveStock POST /inventario/rebajar.
func (c *Client) RemoveStock(ctx context.Context, token, productID, branchID string, qty int) error {
	body := stockBody{ProductID: productID, BranchID: branchID, Quantity: qty}
	return c.do(ctx, http.MethodPost, "/inventario/rebajar", token, body, nil, "inventario")
}

// DeleteInventory DELETE /inventario/{productoId}/{sucursalId}.
func (c *Client) DeleteInventory(ctx context.Context, token, productID, branchID string) error {
	return c.do(ctx, http.MethodDelete, "/inventario/"+seg(productID)+"/"+seg(branchID), token, nil, nil, "inventario")
}
