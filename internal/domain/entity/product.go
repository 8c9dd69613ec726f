package entity

import "github.com/shopspring/decimal"

// Product representa un repuesto del catálogo.
type Product struct {
	ID               string
	ManufacturerCode string // código de fabricante
	Brand            string
	InternalCode     string
	Name             string
	Description      string
	Price            decimal.Decimal
	MinStock         int // umbral de stock mínimo
	CategoryID       string
	Image            string
}
