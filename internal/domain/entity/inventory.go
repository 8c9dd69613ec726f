package entity

// InventoryRow es el stock de un producto en una sucursal.
// No tiene ID propio: su identidad es el par (ProductID, BranchID).
type InventoryRow struct {
	ProductID string
	BranchID  string
	Stock     int
}

// Key devuelve la identidad compuesta de la fila.
func (r InventoryRow) Key() string {
	return r.ProductID + ":" + r.BranchID
}

// BelowMinimum indica si el stock está bajo el umbral mínimo del producto.
func (r InventoryRow) BelowMinimum(p *Product) bool {
	if p == nil {
		return false
	}
	return r.Stock < p.MinStock
}
