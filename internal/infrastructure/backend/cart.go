package backend

import (
	"context"
	"net/http"

	"github.com/jhoicas/autoparts-storefront/internal/application/cart"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

var _ cart.Gateway = (*Client)(nil)

// CreateCart POST /carrito. Devuelve el ID remoto.
func (c *Client) CreateCart(ctx context.Context, token, userID string) (string, error) {
	var out cartWire
	body := map[string]string{"usuario_id": userID}
	if err := c.do(ctx, http.MethodPost, "/carrito", token, body, &out, "carrito"); err != nil {
		return "", err
	}
	return string(out.ID), nil
}

// GetCart GET /carrito/{id}.
func (c *Client) GetCart(ctx context.Context, token, cartID string) (*entity.Cart, error) {
	var out cartWire
	if err := c.do(ctx, http.MethodGet, "/carrito/"+seg(cartID), token, nil, &out, "carrito"); err != nil {
		return nil, err
	}
	return out.entity(), nil
}

// AddItem POST /carrito/{id}/item.
func (c *Client) AddItem(ctx context.Context, token, cartID string, item entity.CartItem) error {
	body := cartItemWire{
		ProductID: ID(item.ProductID),
		BranchID:  ID(item.BranchID),
		Quantity:  item.Quantity,
		UnitValue: item.UnitValue,
		Total:     item.Total,
	}
	return c.do(ctx, http.MethodPost, "/carrito/"+seg(cartID)+"/item", token, body, nil, "carrito")
}

// UpdateItem PUT /carrito/{id}/item/{productId}.
func (c *Client) UpdateItem(ctx context.Context, token, cartID, productID string, quantity int) error {
	body := map[string]int{"cantidad": quantity}
	return c.do(ctx, http.MethodPut, "/carrito/"+seg(cartID)+"/item/"+seg(productID), token, body, nil, "carrito")
}

// RemoveItem DELETE /carrito/{id}/item/{productId}.
func (c *Client) RemoveItem(ctx context.Context, token, cartID, productID string) error {
	return c.do(ctx, http.MethodDelete, "/carrito/"+seg(cartID)+"/item/"+seg(productID), token, nil, nil, "carrito")
}

// ClearCart DELETE /carrito/{id}.
func (c *Client) ClearCart(ctx context.Context, token, cartID string) error {
	return c.do(ctx, http.MethodDelete, "/carrito/"+seg(cartID), token, nil, nil, "carrito")
}
