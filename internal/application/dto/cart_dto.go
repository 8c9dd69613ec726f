package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
)

// AddCartItemRequest línea a agregar al carrito.
type AddCartItemRequest struct {
	ProductID string          `json:"producto_id"`
	BranchID  string          `json:"sucursal_id"`
	Name      string          `json:"nombre"`
	Quantity  int             `json:"cantidad"`
	UnitValue decimal.Decimal `json:"valor_unitario"`
}

// ToItem convierte la petición en línea de carrito.
func (r AddCartItemRequest) ToItem() entity.CartItem {
	return entity.CartItem{
		ProductID: r.ProductID,
		BranchID:  r.BranchID,
		Name:      r.Name,
		Quantity:  r.Quantity,
		UnitValue: r.UnitValue,
	}
}

// UpdateQuantityRequest nueva cantidad de una línea.
type UpdateQuantityRequest struct {
	Quantity int `json:"cantidad"`
}

// CartItemResponse salida de una línea.
type CartItemResponse struct {
	ProductID string          `json:"producto_id"`
	BranchID  string          `json:"sucursal_id"`
	Name      string          `json:"nombre"`
	Quantity  int             `json:"cantidad"`
	UnitValue decimal.Decimal `json:"valor_unitario"`
	Total     decimal.Decimal `json:"total"`
}

// CartResponse estado local del carrito.
type CartResponse struct {
	ID    *string            `json:"id"` // nil hasta la primera sincronización
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"cantidad"`
}

// FromCartItems arma la respuesta del carrito.
func FromCartItems(remoteID string, items []entity.CartItem, total decimal.Decimal, count int) CartResponse {
	out := CartResponse{Items: make([]CartItemResponse, 0, len(items)), Total: total, Count: count}
	if remoteID != "" {
		out.ID = &remoteID
	}
	for _, it := range items {
		out.Items = append(out.Items, CartItemResponse{
			ProductID: it.ProductID,
			BranchID:  it.BranchID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitValue: it.UnitValue,
			Total:     it.Total,
		})
	}
	return out
}
