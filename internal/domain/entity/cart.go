package entity

import "github.com/shopspring/decimal"

// CartItem es una línea del carrito. Total = UnitValue × Quantity, recalculado localmente.
type CartItem struct {
	ProductID string
	BranchID  string
	Name      string
	Quantity  int
	UnitValue decimal.Decimal
	Total     decimal.Decimal
}

// Recalculate fija Total a partir de UnitValue y Quantity.
func (i *CartItem) Recalculate() {
	i.Total = i.UnitValue.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart es la copia local del carrito. ID queda vacío hasta la primera sincronización remota.
type Cart struct {
	ID    string
	Items []CartItem
}

// Add agrega la línea o, si el producto ya está, incrementa su cantidad.
// Devuelve la línea resultante.
func (c *Cart) Add(item CartItem) CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			if !item.UnitValue.IsZero() {
				c.Items[i].UnitValue = item.UnitValue
			}
			c.Items[i].Recalculate()
			return c.Items[i]
		}
	}
	item.Recalculate()
	c.Items = append(c.Items, item)
	return item
}

// Remove quita la línea del producto. Devuelve false si no existía.
func (c *Cart) Remove(productID string) bool {
	kept := c.Items[:0]
	found := false
	for _, it := range c.Items {
		if it.ProductID == productID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	c.Items = kept
	return found
}

// SetQuantity cambia la cantidad de una línea. Cantidades menores a 1 se ignoran.
func (c *Cart) SetQuantity(productID string, qty int) bool {
	if qty < 1 {
		return false
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = qty
			c.Items[i].Recalculate()
			return true
		}
	}
	return false
}

// Find devuelve la línea del producto, si existe.
func (c *Cart) Find(productID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// Clear vacía las líneas; el ID remoto se conserva.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total suma los subtotales de cada línea.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Total)
	}
	return total
}

// Count devuelve la cantidad total de unidades.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
